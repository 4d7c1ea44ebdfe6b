package schema

import (
	"github.com/go-openapi/spec"
	"github.com/griffnb/core-raml/internal/raml"
)

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
)

// extension keys
const (
	extNullable     = "x-nullable"
	extEnumVarNames = "x-enum-varnames"
)

// IsSimplePrimitiveType determines whether the type name is a simple primitive type.
func IsSimplePrimitiveType(typeName string) bool {
	switch typeName {
	case STRING, NUMBER, INTEGER, BOOLEAN:
		return true
	}
	return false
}

// PrimitiveSchema builds a primitive schema.
func PrimitiveSchema(refType string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{refType}}}
}

// RAMLPrimitiveSchema maps a RAML built-in type onto its swagger schema.
func RAMLPrimitiveSchema(p raml.Primitive) *spec.Schema {
	switch p {
	case raml.String, raml.Integer, raml.Number, raml.Boolean:
		return PrimitiveSchema(string(p))
	case raml.DateTime:
		return PrimitiveSchema(STRING).Typed(STRING, "date-time")
	case raml.File:
		return PrimitiveSchema(STRING).Typed(STRING, "binary")
	case raml.Nil:
		s := &spec.Schema{}
		s.AddExtension(extNullable, true)
		return s
	}
	// any
	return &spec.Schema{}
}

// MergeSchema copies the documentation fields of src onto dst.
func MergeSchema(dst *spec.Schema, src *spec.Schema) *spec.Schema {
	if len(src.Description) > 0 {
		dst.Description = src.Description
	}
	if src.Example != nil {
		dst.Example = src.Example
	}
	if len(src.Enum) > 0 {
		dst.Enum = src.Enum
	}
	for k, v := range src.Extensions {
		dst.AddExtension(k, v)
	}
	return dst
}
