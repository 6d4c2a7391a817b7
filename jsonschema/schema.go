package jsonschema

import "regexp"

// Schema is the compiled form of the node-schema dialect. It covers the
// keywords the codex schemas use; unknown keywords are ignored at Compile.
// Only lower numeric bounds exist in this dialect.
//
// A Schema is immutable after Compile and safe for concurrent use.
type Schema struct {
	// Core
	Type TypeSet
	Enum []any // nil when not declared

	// String
	Pattern string
	re      *regexp.Regexp

	// Number
	Minimum          *float64
	ExclusiveMinimum *float64

	// Object
	Properties map[string]*Schema
	// PropertyOrder lists the Properties names in declaration order when the
	// loader supplied a KeyOrder, otherwise by name.
	PropertyOrder []string
	Required   []string
	// NoAdditional is set only by a literal "additionalProperties": false.
	NoAdditional bool

	// Array
	Items    *Schema
	MinItems *int
}

// TypeSet lists the acceptable JSON kinds. An empty set declares no type.
type TypeSet []string

// HasEnum reports whether the schema declares an enum (possibly empty).
func (s *Schema) HasEnum() bool { return s.Enum != nil }

// PropertyNames returns the property names in PropertyOrder, falling back to
// lexical order for a Schema built by hand.
func (s *Schema) PropertyNames() []string {
	if len(s.PropertyOrder) == len(s.Properties) {
		return s.PropertyOrder
	}
	return Ordered(nil, "", s.Properties)
}

// Regexp returns the compiled pattern, or nil when none is declared.
func (s *Schema) Regexp() *regexp.Regexp { return s.re }
