package rules

import (
	"strconv"
	"strings"

	codex "github.com/codex-14499/codexcheck"
)

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Rule checks one node record. at locates the node in the bundle
// (for example "node[4]").
type Rule func(node map[string]any, at codex.PathRef) codex.Issues

// Conditional gates rules on a value inside the node.
type Conditional struct {
	path string
	op   Op
	want any
}

// If builds a conditional that evaluates a path against a value using an operator.
// The path is slash separated inside the node, like "/safety/motionOptIn".
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rules ...Rule) Rule {
	return func(node map[string]any, at codex.PathRef) codex.Issues {
		if !evalConditional(node, c) {
			return nil
		}
		return And(rules...)(node, at)
	}
}

// AtLeast reports when the value at path is absent, null, not a number, or
// below floor. key selects the i18n message; it receives {minimum} and {got}.
func AtLeast(path string, floor float64, code, key string) Rule {
	p := normalizePath(path)
	return func(node map[string]any, at codex.PathRef) codex.Issues {
		v, ok := valueAt(node, p)
		if ok {
			if f, isNum := codex.Float(v); isNum && f >= floor {
				return nil
			}
		}
		return codex.Issues{refAt(at, p).IssueKey(code, key, "minimum", floor, "got", v)}
	}
}

// UniqueBy ensures elements of the collection at collectionPath carry
// distinct values at keyPath. Each repeat is reported at its own locator with
// the index of the element that used the value first.
func UniqueBy(collectionPath, keyPath string) Rule {
	cp := normalizePath(collectionPath)
	kp := normalizePath(keyPath)
	return func(node map[string]any, at codex.PathRef) codex.Issues {
		val, ok := valueAt(node, cp)
		if !ok {
			return nil
		}
		arr, ok := val.([]any)
		if !ok {
			return nil
		}
		var out codex.Issues
		seen := map[string]int{}
		for i, elem := range arr {
			m, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			kv, ok := valueAt(m, kp)
			if !ok {
				continue
			}
			key := codex.Literal(kv)
			if first, dup := seen[key]; dup {
				out = append(out, refAt(refAt(at, cp).Index(i), kp).Issue(codex.CodeDuplicateValue, "got", key, "first", first))
				continue
			}
			seen[key] = i
		}
		return out
	}
}

// ------- helpers -------

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func segments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// refAt extends at by the segments of a slash path; numeric segments become
// indexes.
func refAt(at codex.PathRef, p string) codex.PathRef {
	for _, seg := range segments(p) {
		if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 {
			at = at.Index(idx)
			continue
		}
		at = at.Field(seg)
	}
	return at
}

func evalConditional(node map[string]any, c Conditional) bool {
	cur, ok := valueAt(node, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// valueAt navigates decoded JSON (maps and slices) by slash path.
func valueAt(v any, p string) (any, bool) {
	cur := v
	for _, seg := range segments(p) {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(t) {
				return nil, false
			}
			cur = t[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return codex.Equal(cur, want)
	case Ne:
		return !codex.Equal(cur, want)
	case Lt, Le, Gt, Ge:
		return compareOrdered(cur, op, want)
	default:
		return false
	}
}

func compareOrdered(cur any, op Op, want any) bool {
	a, ok := codex.Float(cur)
	if !ok {
		return false
	}
	b, ok := codex.Float(want)
	if !ok {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// ---------- Rule combinators ----------

// And executes all rules and concatenates Issues.
func And(rules ...Rule) Rule {
	return func(node map[string]any, at codex.PathRef) codex.Issues {
		var out codex.Issues
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(node, at)...)
		}
		return out
	}
}
