// Package handler turns root descriptors into interned RAML types. A Selector
// picks the TypeHandler for an operation and media type; the handler writes
// the body's type declaration and builds the type graph into the registry.
package handler

import (
	"strings"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
)

// Media types with a dedicated selector entry.
const (
	MediaJSON = "application/json"
	MediaXML  = "application/xml"
	MediaAny  = "*/*"
)

// SimpleBuildType is the @BuildType marker value that selects the bean-like builder.
const SimpleBuildType = "ramlforjaxrs-simple"

// LineWriter is the output consumer a handler declares the body type on.
type LineWriter interface {
	AppendLine(key, value string) error
}

// Shape tells request bodies from response bodies.
type Shape uint8

const (
	ShapeResponse Shape = iota
	ShapeRequest
)

func (s Shape) String() string {
	if s == ShapeRequest {
		return "request"
	}
	return "response"
}

// ShapeOf returns the body shape of an HTTP method.
func ShapeOf(method string) Shape {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH":
		return ShapeRequest
	default:
		return ShapeResponse
	}
}

// Operation is the resource method a body type is written for.
type Operation struct {
	Method string
	Path   string
	Shape  Shape
}

// NewOperation creates an operation, deriving its shape from the method.
func NewOperation(method, path string) Operation {
	method = strings.ToUpper(method)
	return Operation{Method: method, Path: path, Shape: ShapeOf(method)}
}

// TypeHandler is one type-building strategy.
type TypeHandler interface {
	// HandlesType reports whether the strategy applies to t.
	HandlesType(op Operation, mediaType string, t *domain.Type) bool
	// WriteType declares the body type on w, then builds it into reg.
	WriteType(reg *registry.Service, w LineWriter, mediaType string, op Operation, entity domain.Entity) (*raml.Type, error)
}

// Debugger provides debug logging interface.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// Option configures a handler.
type Option func(*config)

type config struct {
	naming string
	debug  Debugger
	warn   func(format string, v ...interface{})
}

func newConfig(options []Option) config {
	c := config{
		naming: CamelCase,
		debug:  noOpDebugger{},
		warn:   func(string, ...interface{}) {},
	}
	for _, opt := range options {
		opt(&c)
	}
	return c
}

// WithNamingStrategy sets how struct fields without a json tag are named.
func WithNamingStrategy(strategy string) Option {
	return func(c *config) {
		if strategy != "" {
			c.naming = strategy
		}
	}
}

// WithDebugger sets the debugger for logging.
func WithDebugger(debug Debugger) Option {
	return func(c *config) {
		if debug != nil {
			c.debug = debug
		}
	}
}

// WithWarnings sets the sink for skipped-property warnings.
func WithWarnings(warn func(format string, v ...interface{})) Option {
	return func(c *config) {
		if warn != nil {
			c.warn = warn
		}
	}
}

// TypeName returns the RAML name of a descriptor, honoring "@name".
func TypeName(t *domain.Type) string {
	if a, ok := t.Annotation(domain.AnnotationName); ok && a.Value != "" {
		return a.Value
	}
	return t.SimpleName()
}
