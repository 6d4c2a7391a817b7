package rules_test

import (
	"encoding/json"
	"testing"

	codex "github.com/codex-14499/codexcheck"
	"github.com/codex-14499/codexcheck/rules"
)

func node(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestMotionSweepFloor(t *testing.T) {
	cases := []struct {
		name   string
		safety string
		fires  bool
	}{
		{"opt-in fast", `{"motionOptIn": true, "minSweepSec": 5}`, true},
		{"opt-in missing", `{"motionOptIn": true}`, true},
		{"opt-in null", `{"motionOptIn": true, "minSweepSec": null}`, true},
		{"opt-in non-numeric", `{"motionOptIn": true, "minSweepSec": "20"}`, true},
		{"opt-in just below", `{"motionOptIn": true, "minSweepSec": 13.99}`, true},
		{"opt-in at floor", `{"motionOptIn": true, "minSweepSec": 14}`, false},
		{"opt-in slow", `{"motionOptIn": true, "minSweepSec": 18}`, false},
		{"opt-out fast", `{"motionOptIn": false, "minSweepSec": 1}`, false},
		{"opt-in truthy number", `{"motionOptIn": 1, "minSweepSec": 1}`, false},
	}
	rule := rules.MotionSweepFloor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := node(t, `{"safety": `+tc.safety+`}`)
			iss := rule(n, codex.At("node[7]"))
			if (len(iss) > 0) != tc.fires {
				t.Fatalf("fires=%v expected, got %v", tc.fires, iss)
			}
			if !tc.fires {
				return
			}
			if len(iss) != 1 {
				t.Fatalf("expected one issue, got %v", iss)
			}
			it := iss[0]
			if it.Path != "node[7].safety.minSweepSec" || it.Code != codex.CodeBusinessRule {
				t.Fatalf("unexpected %+v", it)
			}
			if it.Message != "must be >= 14 seconds when motionOptIn is true" {
				t.Fatalf("unexpected message %q", it.Message)
			}
		})
	}
}

func TestMotionSweepFloor_NoSafetyObject(t *testing.T) {
	for _, s := range []string{`{}`, `{"safety": null}`, `{"safety": "static"}`} {
		if iss := rules.MotionSweepFloor()(node(t, s), codex.At("node[0]")); len(iss) != 0 {
			t.Fatalf("%s: unexpected %v", s, iss)
		}
	}
}

func TestConditionalOperators(t *testing.T) {
	n := node(t, `{"layer": "helix", "numerology": {"paths": 22}}`)
	flag := rules.AtLeast("/missing", 0, codex.CodeBusinessRule, codex.CodeTooSmall)
	cases := []struct {
		cond  rules.Conditional
		fires bool
	}{
		{rules.If("/layer", rules.Eq, "helix"), true},
		{rules.If("/layer", rules.Ne, "helix"), false},
		{rules.If("numerology/paths", rules.Ge, 22), true},
		{rules.If("/numerology/paths", rules.Gt, 22), false},
		{rules.If("/numerology/paths", rules.Le, 22), true},
		{rules.If("/numerology/paths", rules.Lt, 22), false},
		{rules.If("/layer", rules.Lt, 1), false},
		{rules.If("/missing", rules.Eq, nil), false},
	}
	for i, tc := range cases {
		iss := tc.cond.Then(flag)(n, codex.Root())
		if (len(iss) > 0) != tc.fires {
			t.Fatalf("case %d: fires=%v expected, got %v", i, tc.fires, iss)
		}
	}
}

func TestAndCombinator(t *testing.T) {
	n := node(t, `{"a": 1}`)
	fail := rules.AtLeast("/a", 5, codex.CodeTooSmall, codex.CodeTooSmall)
	pass := rules.AtLeast("/a", 0, codex.CodeTooSmall, codex.CodeTooSmall)
	if iss := rules.And(fail, nil, pass, fail)(n, codex.Root()); len(iss) != 2 {
		t.Fatalf("And should concatenate, got %v", iss)
	}
}

func TestUniqueBy(t *testing.T) {
	n := node(t, `{"nodes": [{"slug": "a"}, {"slug": "b"}, {"slug": "a"}, {"id": 3}, "x"]}`)
	iss := rules.UniqueBy("/nodes", "/slug")(n, codex.Root())
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", iss)
	}
	it := iss[0]
	if it.Path != "$.nodes[2].slug" || it.Code != codex.CodeDuplicateValue {
		t.Fatalf("unexpected %+v", it)
	}
	if it.Message != `value "a" already used by element 0` {
		t.Fatalf("unexpected message %q", it.Message)
	}
	if iss := rules.UniqueBy("/missing", "/slug")(n, codex.Root()); len(iss) != 0 {
		t.Fatalf("absent collection is not an error, got %v", iss)
	}
}
