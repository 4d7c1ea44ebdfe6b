package schema

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/griffnb/core-raml/internal/emitter"
)

// Swagger builds a Swagger 2.0 document equivalent to doc.
func Swagger(doc *emitter.Document) (*spec.Swagger, error) {
	b := NewBuilder()
	if err := b.BuildAll(doc.Types); err != nil {
		return nil, err
	}
	if missing := UnresolvedReferences(b.Definitions()); len(missing) > 0 {
		return nil, fmt.Errorf("schema: unresolved references %s", strings.Join(missing, ", "))
	}

	sw := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{InfoProps: spec.InfoProps{
				Title:   doc.Title,
				Version: doc.Version,
			}},
			Definitions: b.Definitions(),
			Paths:       &spec.Paths{Paths: map[string]spec.PathItem{}},
		},
	}
	if doc.MediaType != "" {
		sw.Consumes = []string{doc.MediaType}
		sw.Produces = []string{doc.MediaType}
	}
	if doc.BaseURI != "" {
		u, err := url.Parse(doc.BaseURI)
		if err != nil {
			return nil, fmt.Errorf("schema: base uri: %w", err)
		}
		sw.Host = u.Host
		sw.BasePath = u.Path
		if u.Scheme != "" {
			sw.Schemes = []string{u.Scheme}
		}
	}

	for _, r := range doc.Resources {
		item := sw.Paths.Paths[r.Path]
		for _, m := range r.Methods {
			if err := setOperation(&item, m, operation(doc, r, m)); err != nil {
				return nil, err
			}
		}
		sw.Paths.Paths[r.Path] = item
	}
	return sw, nil
}

func operation(doc *emitter.Document, r *emitter.Resource, m *emitter.Method) *spec.Operation {
	op := new(spec.Operation)
	op.Description = m.Description
	if op.Description == "" {
		op.Description = r.Description
	}
	if m.MediaType != "" && m.MediaType != doc.MediaType {
		if m.Request {
			op.Consumes = []string{m.MediaType}
		} else {
			op.Produces = []string{m.MediaType}
		}
	}

	body := bodySchema(m)
	ok := spec.NewResponse().WithDescription("OK")
	if m.Request {
		if body != nil {
			op.AddParam(spec.BodyParam("body", body).AsRequired())
		}
		return op.RespondsWith(200, ok)
	}
	if body != nil {
		ok = ok.WithSchema(body)
	}
	return op.RespondsWith(200, ok)
}

// bodySchema references the type a handler declared for the method body.
func bodySchema(m *emitter.Method) *spec.Schema {
	for _, l := range m.Body.Lines {
		if l.Key == "type" && l.Value != "" {
			return RefSchema(l.Value)
		}
	}
	return nil
}

func setOperation(item *spec.PathItem, m *emitter.Method, op *spec.Operation) error {
	switch strings.ToUpper(m.Name) {
	case "GET":
		item.Get = op
	case "PUT":
		item.Put = op
	case "POST":
		item.Post = op
	case "DELETE":
		item.Delete = op
	case "OPTIONS":
		item.Options = op
	case "HEAD":
		item.Head = op
	case "PATCH":
		item.Patch = op
	default:
		return fmt.Errorf("schema: unsupported method %s", m.Name)
	}
	return nil
}
