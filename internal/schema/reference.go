package schema

import (
	"strings"

	"github.com/go-openapi/spec"
)

const definitionsPrefix = "#/definitions/"

// RefSchema builds a reference schema.
func RefSchema(refType string) *spec.Schema {
	return spec.RefSchema(definitionsPrefix + refType)
}

// IsRefSchema determines whether a schema is a reference schema.
func IsRefSchema(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	return schema.Ref.Ref.GetURL() != nil
}

// RefName extracts the definition name from a "#/definitions/Name" reference.
func RefName(schema *spec.Schema) string {
	if !IsRefSchema(schema) {
		return ""
	}
	name, ok := strings.CutPrefix(schema.Ref.String(), definitionsPrefix)
	if !ok {
		return ""
	}
	return name
}

// UnresolvedReferences lists the references in definitions that name no definition.
func UnresolvedReferences(definitions spec.Definitions) []string {
	var missing []string
	seen := map[string]bool{}
	var visit func(s *spec.Schema)
	visit = func(s *spec.Schema) {
		if s == nil {
			return
		}
		if name := RefName(s); name != "" {
			if _, ok := definitions[name]; !ok && !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
		for i := range s.AllOf {
			visit(&s.AllOf[i])
		}
		for _, p := range s.Properties {
			visit(&p)
		}
		if s.Items != nil {
			visit(s.Items.Schema)
		}
		if s.AdditionalProperties != nil {
			visit(s.AdditionalProperties.Schema)
		}
	}
	for _, name := range sortedKeys(definitions) {
		s := definitions[name]
		visit(&s)
	}
	return missing
}
