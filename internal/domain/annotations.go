package domain

import (
	"go/ast"
	"regexp"
	"strconv"
	"strings"
)

// Annotation kinds understood by the generator.
const (
	// AnnotationBuildType selects the builder strategy for a root type.
	AnnotationBuildType = "BuildType"
	// AnnotationName overrides the RAML name of a type.
	AnnotationName = "name"
	// AnnotationResource marks a root type and sets its resource path.
	AnnotationResource = "Resource"
	// AnnotationMethod sets the HTTP method of a root type's resource.
	AnnotationMethod = "Method"
	// AnnotationMediaType overrides the media type of a root type's body.
	AnnotationMediaType = "MediaType"
	// AnnotationRequired marks a property optional with "@Required false".
	AnnotationRequired = "Required"
	// AnnotationDescription describes a property or type.
	AnnotationDescription = "Description"
	// AnnotationExample gives an example property value.
	AnnotationExample = "Example"
)

// Annotation is one "@Kind value" line from a doc comment.
type Annotation struct {
	Kind  string
	Value string
}

// Bool parses the value as a boolean. A bare annotation counts as true.
func (a Annotation) Bool(def bool) bool {
	if a.Value == "" {
		return true
	}
	b, err := strconv.ParseBool(a.Value)
	if err != nil {
		return def
	}
	return b
}

// AnnotationSource answers annotation queries without exposing where the
// annotations came from.
type AnnotationSource interface {
	Annotation(kind string) (Annotation, bool)
}

// Annotations is an ordered list of annotations.
type Annotations []Annotation

// Annotation returns the first annotation of the given kind. Kinds match case-insensitively.
func (a Annotations) Annotation(kind string) (Annotation, bool) {
	for _, annotation := range a {
		if strings.EqualFold(annotation.Kind, kind) {
			return annotation, true
		}
	}
	return Annotation{}, false
}

var annotationRegex = regexp.MustCompile(`^@(\w+)(?:\s+(.*))?$`)

// ParseCommentGroup splits a doc comment into annotations and the remaining prose.
func ParseCommentGroup(groups ...*ast.CommentGroup) (Annotations, string) {
	var (
		annotations Annotations
		doc         []string
	)

	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			for _, line := range strings.Split(comment.Text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimPrefix(line, "//")
				line = strings.TrimPrefix(line, "/*")
				line = strings.TrimSuffix(line, "*/")
				line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
				if line == "" {
					continue
				}

				texts := annotationRegex.FindStringSubmatch(line)
				if len(texts) > 0 {
					annotations = append(annotations, Annotation{
						Kind:  texts[1],
						Value: strings.TrimSpace(texts[2]),
					})
					continue
				}
				doc = append(doc, line)
			}
		}
	}

	return annotations, strings.Join(doc, " ")
}
