// Package raml holds the type graph produced by a build pass: interned object
// types, their properties and the references between them.
package raml

import (
	"errors"

	"github.com/griffnb/core-raml/internal/domain"
)

// ErrSuperTypesSet is returned when supertypes are assigned a second time.
var ErrSuperTypesSet = errors.New("supertypes already set")

// Type is one interned object type of the output graph.
type Type struct {
	Name string

	// Annotations are the type-level annotations of the source type.
	Annotations domain.AnnotationSource
	Doc         string

	// Base is the primitive a scalar type derives from; empty for object types.
	Base Primitive
	// Enum restricts a scalar type to the listed values.
	Enum []interface{}
	// EnumNames are the constant names declaring Enum, index for index.
	EnumNames []string

	superTypes    []*Type
	superTypesSet bool
	properties    []*Property
}

// NewType creates an empty type.
func NewType(name string) *Type {
	return &Type{
		Name:        name,
		Annotations: domain.Annotations(nil),
		superTypes:  []*Type{},
		properties:  []*Property{},
	}
}

// RefName implements TypeRef.
func (t *Type) RefName() string {
	return t.Name
}

// IsObject reports whether the type is an object type rather than a constrained scalar.
func (t *Type) IsObject() bool {
	return t.Base == ""
}

// SetSuperTypes assigns the supertypes. It may only be called once.
func (t *Type) SetSuperTypes(superTypes []*Type) error {
	if t.superTypesSet {
		return ErrSuperTypesSet
	}
	t.superTypesSet = true
	t.superTypes = append([]*Type{}, superTypes...)
	return nil
}

// SuperTypes returns the supertypes in declaration order, never nil.
func (t *Type) SuperTypes() []*Type {
	if t.superTypes == nil {
		return []*Type{}
	}
	return t.superTypes
}

// AddProperty appends a property.
func (t *Type) AddProperty(p *Property) {
	t.properties = append(t.properties, p)
}

// Properties returns the properties in discovery order, never nil.
func (t *Type) Properties() []*Property {
	if t.properties == nil {
		return []*Property{}
	}
	return t.properties
}

// Property finds a property by name.
func (t *Type) Property(name string) (*Property, bool) {
	for _, p := range t.properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Description returns the @Description annotation or, failing that, the doc comment.
func (t *Type) Description() string {
	if t.Annotations != nil {
		if a, ok := t.Annotations.Annotation(domain.AnnotationDescription); ok && a.Value != "" {
			return a.Value
		}
	}
	return t.Doc
}
