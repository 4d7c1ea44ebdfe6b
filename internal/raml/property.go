package raml

import (
	"github.com/griffnb/core-raml/internal/domain"
)

// Property is one field of a Type.
type Property struct {
	Name string
	Type TypeRef

	// Annotations answers queries against the accessor or field the property came from.
	Annotations domain.AnnotationSource
	Doc         string

	// Optional marks a property that is absent unless set, such as an omitempty field.
	Optional bool
}

// NewProperty creates a property bound to its source annotations.
func NewProperty(annotations domain.AnnotationSource, name string, typ TypeRef) *Property {
	if annotations == nil {
		annotations = domain.Annotations(nil)
	}
	return &Property{
		Name:        name,
		Type:        typ,
		Annotations: annotations,
	}
}

// Required reports whether the property must be present.
// "@Required false" or Optional make it optional.
func (p *Property) Required() bool {
	if a, ok := p.Annotations.Annotation(domain.AnnotationRequired); ok {
		return a.Bool(true)
	}
	return !p.Optional
}

// Description returns the @Description annotation or the doc comment.
func (p *Property) Description() string {
	if a, ok := p.Annotations.Annotation(domain.AnnotationDescription); ok && a.Value != "" {
		return a.Value
	}
	return p.Doc
}

// Example returns the @Example annotation value.
func (p *Property) Example() (string, bool) {
	a, ok := p.Annotations.Annotation(domain.AnnotationExample)
	if !ok {
		return "", false
	}
	return a.Value, true
}
