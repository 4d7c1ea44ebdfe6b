// Package schema converts a built RAML type graph into Swagger 2.0 definitions.
package schema

import (
	"fmt"
	"sort"

	"github.com/go-openapi/spec"
	"github.com/griffnb/core-raml/internal/raml"
)

// BuilderService turns registry types into definitions, one per type name.
type BuilderService struct {
	definitions spec.Definitions
	parsed      map[*raml.Type]string
}

// NewBuilder creates a new BuilderService instance.
func NewBuilder() *BuilderService {
	return &BuilderService{
		definitions: make(spec.Definitions),
		parsed:      make(map[*raml.Type]string),
	}
}

// BuildSchema adds the definition of t and returns its name.
func (b *BuilderService) BuildSchema(t *raml.Type) (string, error) {
	if name, ok := b.parsed[t]; ok {
		return name, nil
	}
	if _, exists := b.definitions[t.Name]; exists {
		return "", fmt.Errorf("schema: duplicate definition %s", t.Name)
	}

	var schema spec.Schema
	if t.IsObject() {
		schema = objectSchema(t)
	} else {
		schema = *RAMLPrimitiveSchema(t.Base)
		schema.Enum = append([]interface{}{}, t.Enum...)
		if len(t.EnumNames) == len(t.Enum) && len(t.EnumNames) > 0 {
			schema.AddExtension(extEnumVarNames, append([]string{}, t.EnumNames...))
		}
	}
	schema.Title = t.Name
	schema.Description = t.Description()

	b.definitions[t.Name] = schema
	b.parsed[t] = t.Name
	return t.Name, nil
}

// BuildAll adds a definition for every type in order.
func (b *BuilderService) BuildAll(types []*raml.Type) error {
	for _, t := range types {
		if _, err := b.BuildSchema(t); err != nil {
			return err
		}
	}
	return nil
}

// Definitions returns the built definitions.
func (b *BuilderService) Definitions() spec.Definitions {
	return b.definitions
}

// objectSchema writes supertypes as allOf references followed by the
// type's own properties.
func objectSchema(t *raml.Type) spec.Schema {
	own := spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{OBJECT}}}
	for _, p := range t.Properties() {
		own.SetProperty(p.Name, *PropertySchema(p))
		if p.Required() {
			own.AddRequired(p.Name)
		}
	}

	supers := t.SuperTypes()
	if len(supers) == 0 {
		return own
	}

	var schema spec.Schema
	for _, s := range supers {
		schema.AllOf = append(schema.AllOf, *RefSchema(s.Name))
	}
	if len(own.Properties) > 0 {
		schema.AllOf = append(schema.AllOf, own)
	}
	return schema
}

// PropertySchema builds the schema of a property including its documentation.
func PropertySchema(p *raml.Property) *spec.Schema {
	schema := RefTypeSchema(p.Type)

	doc := &spec.Schema{}
	doc.Description = p.Description()
	if example, ok := p.Example(); ok {
		doc.Example = example
	}
	if doc.Description == "" && doc.Example == nil {
		return schema
	}
	// siblings of $ref are ignored
	if IsRefSchema(schema) {
		schema = &spec.Schema{SchemaProps: spec.SchemaProps{AllOf: []spec.Schema{*schema}}}
	}
	return MergeSchema(schema, doc)
}

// RefTypeSchema builds the schema for a property type.
func RefTypeSchema(ref raml.TypeRef) *spec.Schema {
	switch r := ref.(type) {
	case raml.Primitive:
		return RAMLPrimitiveSchema(r)
	case *raml.Type:
		return RefSchema(r.Name)
	case raml.Named:
		return RefSchema(string(r))
	case raml.Array:
		return spec.ArrayProperty(RefTypeSchema(r.Items))
	case raml.Map:
		return spec.MapProperty(RefTypeSchema(r.Values))
	case raml.Nullable:
		schema := RefTypeSchema(r.Of)
		if IsRefSchema(schema) {
			schema = &spec.Schema{SchemaProps: spec.SchemaProps{AllOf: []spec.Schema{*schema}}}
		}
		schema.AddExtension(extNullable, true)
		return schema
	}
	return &spec.Schema{}
}

func sortedKeys(definitions spec.Definitions) []string {
	keys := make([]string, 0, len(definitions))
	for k := range definitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
