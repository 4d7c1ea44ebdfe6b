// Package domain contains the type descriptors shared across the generator.
// Descriptors are produced by the describe package from Go sources (or by
// hand in tests) and are never mutated once built; the builders only ever
// walk descriptors, never go/types values.
package domain

import (
	"strings"
)

// Kind classifies a descriptor.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindPrimitive is a basic type, a named basic type or an extended primitive such as time.Time.
	KindPrimitive
	// KindAny is the empty interface or an anonymous composite.
	KindAny
	// KindInterface is a named interface (a structural type).
	KindInterface
	// KindStruct is a named struct.
	KindStruct
	KindSlice
	KindMap
	KindPointer
	// KindTypeParam is an unresolved type parameter.
	KindTypeParam
	// KindUnsupported covers chan, func, complex and unsafe types.
	KindUnsupported
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindPrimitive:   "primitive",
	KindAny:         "any",
	KindInterface:   "interface",
	KindStruct:      "struct",
	KindSlice:       "slice",
	KindMap:         "map",
	KindPointer:     "pointer",
	KindTypeParam:   "typeparam",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Type describes one Go type.
type Type struct {
	Kind Kind

	// Name is the declared name; empty for unnamed composites.
	Name    string
	PkgPath string

	// Basic is the primitive name ("int64", "string", "time.Time") for KindPrimitive.
	Basic string

	// Elem is the element of a slice, pointer or map value.
	Elem *Type
	// Key is the map key.
	Key *Type

	// TypeArgs are the arguments of an instantiated generic type, TypeParams
	// the parameter names of its declaration, in the same order.
	TypeArgs   []*Type
	TypeParams []string

	// Embeds are the declared supertypes: embedded interfaces, or embedded
	// named structs, in declaration order.
	Embeds []*Type
	// Methods are the declared methods, in declaration order.
	Methods []*Method
	// Fields are the struct fields, in declaration order.
	Fields []*Field
	// Enum lists the constants declared with a named primitive type, in source order.
	Enum []EnumValue
	// Recursive marks a named slice or map that contains itself, such as
	// type Tree []Tree. Its Kind is KindUnsupported.
	Recursive bool

	Annotations Annotations
	Doc         string
}

// EnumValue is one constant of a named primitive type.
type EnumValue struct {
	Name  string
	Value interface{}
}

// Method describes a declared method.
type Method struct {
	Name        string
	NumParams   int
	Results     []*Type
	Annotations Annotations
	Doc         string
}

// Annotation looks up an annotation declared on the method.
func (m *Method) Annotation(kind string) (Annotation, bool) {
	return m.Annotations.Annotation(kind)
}

// Field describes a struct field.
type Field struct {
	Name        string
	Type        *Type
	Embedded    bool
	Exported    bool
	Tag         string
	Annotations Annotations
	Doc         string
}

// Annotation looks up an annotation declared on the field.
func (f *Field) Annotation(kind string) (Annotation, bool) {
	return f.Annotations.Annotation(kind)
}

// Annotation looks up a type-level annotation.
func (t *Type) Annotation(kind string) (Annotation, bool) {
	if t == nil {
		return Annotation{}, false
	}
	return t.Annotations.Annotation(kind)
}

// IsEnum reports whether the type is a named primitive with declared constants.
func (t *Type) IsEnum() bool {
	return t != nil && t.Kind == KindPrimitive && t.Name != "" && len(t.Enum) > 0
}

// IsStructural reports whether the type can be interned as a RAML object type.
func (t *Type) IsStructural() bool {
	return t != nil && (t.Kind == KindInterface || t.Kind == KindStruct) && t.Name != ""
}

// Identity returns the canonical key of the type. Two descriptors of the same
// Go type always share an identity.
func (t *Type) Identity() string {
	if t == nil {
		return ""
	}

	switch t.Kind {
	case KindSlice:
		return "[]" + t.Elem.Identity()
	case KindPointer:
		return "*" + t.Elem.Identity()
	case KindMap:
		return "map[" + t.Key.Identity() + "]" + t.Elem.Identity()
	case KindTypeParam:
		return "$" + t.Name
	case KindAny:
		if t.Name == "" {
			return ANY
		}
	}

	var b strings.Builder
	if t.PkgPath != "" {
		b.WriteString(t.PkgPath)
		b.WriteByte('.')
	}
	if t.Name != "" {
		b.WriteString(t.Name)
	} else {
		b.WriteString(t.Basic)
	}
	if len(t.TypeArgs) > 0 {
		b.WriteByte('[')
		for i, arg := range t.TypeArgs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(arg.Identity())
		}
		b.WriteByte(']')
	}
	return b.String()
}

// SimpleName returns the unqualified name used for RAML type names.
// Instantiated generics append their arguments: Page[User] -> Page_User.
func (t *Type) SimpleName() string {
	if t == nil {
		return ""
	}

	switch t.Kind {
	case KindSlice:
		return t.Elem.SimpleName() + "List"
	case KindPointer:
		return t.Elem.SimpleName()
	case KindMap:
		return t.Elem.SimpleName() + "Map"
	}

	name := t.Name
	if name == "" {
		name = t.Basic
	}
	if name == "" && t.Kind == KindAny {
		name = ANY
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	for _, arg := range t.TypeArgs {
		name += "_" + arg.SimpleName()
	}
	return name
}
