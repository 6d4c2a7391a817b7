package codex

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// JSON kind names, as used by the "type" keyword.
const (
	KindObject  = "object"
	KindArray   = "array"
	KindString  = "string"
	KindInteger = "integer"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindNull    = "null"
)

// number is satisfied by json.Number from both encoding/json and go-json.
type number interface {
	Float64() (float64, error)
	String() string
}

// KindOf reports the most specific JSON kind of v. Integers report
// KindInteger; unrecognised Go values report their Go type name.
func KindOf(v any) string {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case number:
		if isIntegerLiteral(t.String()) {
			return KindInteger
		}
		return KindNumber
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return KindInteger
		}
		return KindNumber
	case float32:
		return KindOf(float64(t))
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	}
	return reflect.TypeOf(v).String()
}

// TypeMatches reports whether v satisfies at least one of the kind names.
// Booleans never satisfy integer or number; integers satisfy number.
func TypeMatches(v any, kinds []string) bool {
	k := KindOf(v)
	for _, want := range kinds {
		if want == k {
			return true
		}
		if want == KindNumber && k == KindInteger {
			return true
		}
	}
	return false
}

// Float returns v as float64 when v is a non-boolean number.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case bool, nil, string:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case number:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// Equal compares two JSON-like values for enum membership. Numbers compare by
// value regardless of representation; booleans never equal numbers.
func Equal(a, b any) bool {
	fa, aNum := Float(a)
	fb, bNum := Float(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	switch at := a.(type) {
	case map[string]any:
		bt, ok := b.(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Literal renders v the way it appears in issue messages.
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return strconv.Quote(t)
	case number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case map[string]any:
		return "object"
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Literal(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return reflect.TypeOf(v).String()
	}
	return string(b)
}

func isIntegerLiteral(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eE")
}
