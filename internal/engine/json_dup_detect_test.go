package engine

import (
	"strings"
	"testing"
)

func TestDetectJSONDuplicateKeys_NoDup(t *testing.T) {
	js := `{"a":1,"b":{"a":2},"c":[{"a":1},{"a":2}]}`
	iss, err := DetectJSONDuplicateKeys(strings.NewReader(js), "$", -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectJSONDuplicateKeys_Paths(t *testing.T) {
	js := `{"name":"x","nodes":[{"id":0},{"id":1,"safety":{"ndSafe":true,"ndSafe":false},"id":2}],"name":"y"}`
	iss, err := DetectJSONDuplicateKeys(strings.NewReader(js), "$", -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"$.nodes[1].safety.ndSafe", "$.nodes[1].id", "$.name"}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), iss)
	}
	for i, w := range want {
		if iss[i].Path != w || iss[i].Code != "duplicate_key" {
			t.Fatalf("issue %d: got %+v want path %s", i, iss[i], w)
		}
	}
	if iss[0].Key != "ndSafe" {
		t.Fatalf("expected key ndSafe, got %q", iss[0].Key)
	}
}

func TestDetectJSONDuplicateKeys_Limit(t *testing.T) {
	js := `{"a":1,"a":2,"a":3,"a":4}`
	iss, _ := DetectJSONDuplicateKeys(strings.NewReader(js), "$", 1)
	if len(iss) != 2 || iss[1].Code != "truncated" {
		t.Fatalf("expected one issue plus truncated marker, got %v", iss)
	}
	if iss, _ := DetectJSONDuplicateKeys(strings.NewReader(js), "$", 0); iss != nil {
		t.Fatalf("zero limit disables detection, got %v", iss)
	}
}

func TestDetectJSONDuplicateKeys_ArrayIndexesAfterScalars(t *testing.T) {
	js := `[1, "s", null, {"k":1,"k":2}]`
	iss, err := DetectJSONDuplicateKeys(strings.NewReader(js), "$", -1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "$[3].k" {
		t.Fatalf("unexpected %v", iss)
	}
}
