package jsonschema

import (
	"fmt"
	"math"
	"regexp"
)

var knownTypes = map[string]bool{
	"object": true, "array": true, "string": true, "integer": true,
	"number": true, "boolean": true, "null": true,
}

// CompileOption configures Compile.
type CompileOption func(*compiler)

// WithKeyOrder supplies the key order of the schema document so properties
// keep their declaration order. Without it they are ordered by name.
func WithKeyOrder(order KeyOrder) CompileOption {
	return func(c *compiler) { c.order = order }
}

type compiler struct {
	order KeyOrder
}

// Compile builds a Schema from a decoded JSON or YAML document. Numbers may be
// json.Number, float64 or any Go integer. Errors name the keyword location as
// a JSON Pointer.
func Compile(doc map[string]any, opts ...CompileOption) (*Schema, error) {
	var c compiler
	for _, opt := range opts {
		opt(&c)
	}
	return c.compileAt(doc, "")
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level schemas.
func MustCompile(doc map[string]any, opts ...CompileOption) *Schema {
	s, err := Compile(doc, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// compileAt compiles the schema object found at JSON Pointer ptr.
func (c *compiler) compileAt(doc map[string]any, ptr string) (*Schema, error) {
	s := &Schema{}
	at := "#" + ptr

	if raw, ok := doc["type"]; ok {
		ts, err := compileType(raw)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %s/type: %w", at, err)
		}
		s.Type = ts
	}

	if raw, ok := doc["enum"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/enum: expected array", at)
		}
		s.Enum = append([]any{}, list...)
	}

	if raw, ok := doc["pattern"]; ok {
		p, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/pattern: expected string", at)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %s/pattern: %w", at, err)
		}
		s.Pattern, s.re = p, re
	}

	for _, kw := range []struct {
		name string
		dst  **float64
	}{{"minimum", &s.Minimum}, {"exclusiveMinimum", &s.ExclusiveMinimum}} {
		raw, ok := doc[kw.name]
		if !ok {
			continue
		}
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/%s: expected number", at, kw.name)
		}
		*kw.dst = &f
	}

	if raw, ok := doc["required"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/required: expected array", at)
		}
		for i, e := range list {
			name, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("jsonschema: %s/required/%d: expected string", at, i)
			}
			s.Required = append(s.Required, name)
		}
	}

	if raw, ok := doc["properties"]; ok {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("jsonschema: %s/properties: expected object", at)
		}
		propsPtr := Pointer(ptr, "properties")
		s.Properties = make(map[string]*Schema, len(props))
		s.PropertyOrder = Ordered(c.order, propsPtr, props)
		for _, name := range s.PropertyOrder {
			childPtr := Pointer(propsPtr, name)
			sub, ok := props[name].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("jsonschema: #%s: expected object", childPtr)
			}
			child, err := c.compileAt(sub, childPtr)
			if err != nil {
				return nil, err
			}
			s.Properties[name] = child
		}
	}

	if ap, ok := doc["additionalProperties"].(bool); ok && !ap {
		s.NoAdditional = true
	}

	if raw, ok := doc["minItems"]; ok {
		f, ok := toFloat(raw)
		if !ok || f < 0 || f != math.Trunc(f) {
			return nil, fmt.Errorf("jsonschema: %s/minItems: expected non-negative integer", at)
		}
		n := int(f)
		s.MinItems = &n
	}

	// Only an object-valued items keyword is a schema; tuple forms are ignored.
	if sub, ok := doc["items"].(map[string]any); ok {
		child, err := c.compileAt(sub, Pointer(ptr, "items"))
		if err != nil {
			return nil, err
		}
		s.Items = child
	}

	return s, nil
}

func compileType(raw any) (TypeSet, error) {
	switch t := raw.(type) {
	case string:
		if t == "" {
			return nil, nil
		}
		if !knownTypes[t] {
			return nil, fmt.Errorf("unknown type %q", t)
		}
		return TypeSet{t}, nil
	case []any:
		ts := make(TypeSet, 0, len(t))
		for _, e := range t {
			name, ok := e.(string)
			if !ok || !knownTypes[name] {
				return nil, fmt.Errorf("unknown type %v", e)
			}
			ts = append(ts, name)
		}
		if len(ts) == 0 {
			return nil, nil
		}
		return ts, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected string or array, got %T", raw)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}
