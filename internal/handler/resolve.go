package handler

import (
	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
)

var goPrimitives = map[string]raml.Primitive{
	"int":     raml.Integer,
	"int8":    raml.Integer,
	"int16":   raml.Integer,
	"int32":   raml.Integer,
	"int64":   raml.Integer,
	"uint":    raml.Integer,
	"uint8":   raml.Integer,
	"uint16":  raml.Integer,
	"uint32":  raml.Integer,
	"uint64":  raml.Integer,
	"uintptr": raml.Integer,
	"byte":    raml.Integer,
	"rune":    raml.Integer,
	"float32": raml.Number,
	"float64": raml.Number,
	"bool":    raml.Boolean,
	"string":  raml.String,

	"time.Time":                             raml.DateTime,
	"time.Duration":                         raml.Integer,
	"uuid.UUID":                             raml.String,
	"github.com/google/uuid.UUID":           raml.String,
	"decimal.Decimal":                       raml.Number,
	"github.com/shopspring/decimal.Decimal": raml.Number,
	"encoding/json.RawMessage":              raml.Any,
	"encoding/json.Number":                  raml.Number,
}

// PrimitiveOf maps a primitive descriptor to its RAML type.
func PrimitiveOf(t *domain.Type) (raml.Primitive, bool) {
	if t == nil || t.Kind != domain.KindPrimitive {
		return "", false
	}
	if p, ok := goPrimitives[t.Basic]; ok {
		return p, true
	}
	p, ok := goPrimitives[domain.QualifiedName(t.PkgPath, t.Name)]
	return p, ok
}

// ResolveType maps the type of entity to a TypeRef. Named structural types and
// enums are interned in reg under simpleName, with scanner populating newly
// registered ones.
func ResolveType(reg *registry.Service, scanner registry.TypeScanner, simpleName string, entity domain.Entity) (raml.TypeRef, error) {
	t := entity.Type()
	if t == nil {
		return nil, &domain.UnresolvableTypeError{Type: simpleName, Reason: "missing type"}
	}

	switch t.Kind {
	case domain.KindPrimitive:
		if t.IsEnum() {
			return register(reg, scanner, simpleName, entity)
		}
		if p, ok := PrimitiveOf(t); ok {
			return p, nil
		}
		return nil, &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "no RAML primitive for " + t.Basic}

	case domain.KindAny:
		return raml.Any, nil

	case domain.KindInterface, domain.KindStruct:
		if !t.IsStructural() {
			return raml.Any, nil
		}
		return register(reg, scanner, simpleName, entity)

	case domain.KindPointer:
		elem, err := resolveElem(reg, scanner, entity, t.Elem)
		if err != nil {
			return nil, err
		}
		if _, ok := elem.(raml.Nullable); ok {
			return elem, nil
		}
		return raml.Nullable{Of: elem}, nil

	case domain.KindSlice:
		if p, ok := PrimitiveOf(t.Elem); ok && (t.Elem.Basic == "byte" || t.Elem.Basic == "uint8") && p == raml.Integer {
			return raml.String, nil
		}
		items, err := resolveElem(reg, scanner, entity, t.Elem)
		if err != nil {
			return nil, err
		}
		return raml.Array{Items: items}, nil

	case domain.KindMap:
		if !isStringKey(t.Key) {
			return nil, &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "map key must be a string"}
		}
		values, err := resolveElem(reg, scanner, entity, t.Elem)
		if err != nil {
			return nil, err
		}
		return raml.Map{Values: values}, nil

	case domain.KindTypeParam:
		return nil, &domain.UnresolvableTypeError{Type: t.Name, Reason: "unbound type parameter"}

	default:
		if t.Recursive {
			return nil, &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "recursive composite type"}
		}
		return nil, &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "unsupported kind " + t.Kind.String()}
	}
}

func resolveElem(reg *registry.Service, scanner registry.TypeScanner, parent domain.Entity, elem *domain.Type) (raml.TypeRef, error) {
	dependent := parent.CreateDependent(elem)
	return ResolveType(reg, scanner, TypeName(dependent.Type()), dependent)
}

func register(reg *registry.Service, scanner registry.TypeScanner, simpleName string, entity domain.Entity) (raml.TypeRef, error) {
	rt, err := reg.RegisterType(simpleName, entity, scanner)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func isStringKey(t *domain.Type) bool {
	return PrimitiveString(t)
}

// PrimitiveString reports whether a named primitive is backed by a string.
func PrimitiveString(t *domain.Type) bool {
	p, ok := PrimitiveOf(t)
	return ok && p == raml.String
}
