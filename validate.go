package codex

import (
	"strconv"

	"github.com/codex-14499/codexcheck/i18n"
	js "github.com/codex-14499/codexcheck/jsonschema"
)

// Option configures Validate.
type Option func(*validator)

// WithKeyOrder supplies the key order of the document value was decoded
// from. base is the JSON Pointer of value inside that document ("" when value
// is the whole document). Without it additional properties are reported by
// name.
func WithKeyOrder(order js.KeyOrder, base string) Option {
	return func(v *validator) {
		v.order = order
		v.base = base
	}
}

type validator struct {
	order js.KeyOrder
	base  string
}

// Validate checks value against s and returns every issue found, in encounter
// order. path locates value in the enclosing document; an empty path means
// RootPath. A nil schema accepts everything.
//
// Ordering at each object level: required properties (declaration order),
// nested properties (schema declaration order), then additional properties
// (document order). Array elements are visited in index order.
func Validate(value any, s *js.Schema, path string, opts ...Option) Issues {
	var v validator
	for _, opt := range opts {
		opt(&v)
	}
	return v.validateAt(value, s, At(path), v.base, nil)
}

// validateAt checks value, located by at in issues and by ptr in the
// document's KeyOrder.
func (v *validator) validateAt(value any, s *js.Schema, at PathRef, ptr string, iss Issues) Issues {
	if s == nil {
		return iss
	}

	if len(s.Type) > 0 && !TypeMatches(value, s.Type) {
		// A value of the wrong shape gets no further checks.
		return append(iss, at.Issue(CodeInvalidType, "expected", []string(s.Type), "got", KindOf(value)))
	}

	if s.HasEnum() && !inEnum(value, s.Enum) {
		iss = append(iss, at.Issue(CodeInvalidEnum, "enum", s.Enum, "got", quoted{value}))
	}

	if re := s.Regexp(); re != nil {
		if str, ok := value.(string); ok && !re.MatchString(str) {
			iss = append(iss, at.Issue(CodePattern, "got", str, "pattern", s.Pattern))
		}
	}

	if f, ok := Float(value); ok {
		if s.Minimum != nil && f < *s.Minimum {
			iss = append(iss, at.Issue(CodeTooSmall, "got", value, "minimum", *s.Minimum))
		}
		if s.ExclusiveMinimum != nil && f <= *s.ExclusiveMinimum {
			iss = append(iss, at.IssueKey(CodeTooSmall, i18n.KeyExclusiveMinimum, "got", value, "exclusiveMinimum", *s.ExclusiveMinimum))
		}
	}

	switch t := value.(type) {
	case map[string]any:
		iss = v.validateObject(t, s, at, ptr, iss)
	case []any:
		iss = v.validateArray(t, s, at, ptr, iss)
	}
	return iss
}

func (v *validator) validateObject(obj map[string]any, s *js.Schema, at PathRef, ptr string, iss Issues) Issues {
	for _, name := range s.Required {
		if _, ok := obj[name]; !ok {
			iss = append(iss, at.Field(name).Issue(CodeRequired))
		}
	}
	for _, name := range s.PropertyNames() {
		if val, ok := obj[name]; ok {
			iss = v.validateAt(val, s.Properties[name], at.Field(name), js.Pointer(ptr, name), iss)
		}
	}
	if s.NoAdditional {
		for _, key := range js.Ordered(v.order, ptr, obj) {
			if _, ok := s.Properties[key]; !ok {
				iss = append(iss, at.Field(key).Issue(CodeUnknownKey))
			}
		}
	}
	return iss
}

func (v *validator) validateArray(arr []any, s *js.Schema, at PathRef, ptr string, iss Issues) Issues {
	if s.MinItems != nil && len(arr) < *s.MinItems {
		iss = append(iss, at.Issue(CodeTooShort, "minItems", *s.MinItems, "got", len(arr)))
	}
	if s.Items != nil {
		for i, item := range arr {
			iss = v.validateAt(item, s.Items, at.Index(i), js.Pointer(ptr, strconv.Itoa(i)), iss)
		}
	}
	return iss
}

func inEnum(v any, enum []any) bool {
	for _, e := range enum {
		if Equal(v, e) {
			return true
		}
	}
	return false
}
