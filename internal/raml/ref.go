package raml

import (
	"strings"
)

// TypeRef is a resolved property type.
type TypeRef interface {
	// RefName is the type expression written into the document.
	RefName() string
}

// Primitive is a RAML built-in type.
type Primitive string

// RAML built-in types.
const (
	String   Primitive = "string"
	Integer  Primitive = "integer"
	Number   Primitive = "number"
	Boolean  Primitive = "boolean"
	DateTime Primitive = "datetime"
	Any      Primitive = "any"
	File     Primitive = "file"
	Nil      Primitive = "nil"
)

func (p Primitive) RefName() string {
	return string(p)
}

// Array is a list of Items.
type Array struct {
	Items TypeRef
}

func (a Array) RefName() string {
	items := a.Items.RefName()
	if strings.ContainsAny(items, " |") {
		items = "(" + items + ")"
	}
	return items + "[]"
}

// Nullable is a value that may also be nil.
type Nullable struct {
	Of TypeRef
}

func (n Nullable) RefName() string {
	return n.Of.RefName() + " | nil"
}

// Map is an object with arbitrary string keys and Values values.
type Map struct {
	Values TypeRef
}

func (m Map) RefName() string {
	return "object"
}

// Named refers to a type by name without interning it.
type Named string

func (n Named) RefName() string {
	return string(n)
}

// Unwrap strips Nullable wrappers.
func Unwrap(ref TypeRef) TypeRef {
	for {
		n, ok := ref.(Nullable)
		if !ok {
			return ref
		}
		ref = n.Of
	}
}
