package emitter

import (
	"io"
	"sort"
	"strings"

	"github.com/griffnb/core-raml/internal/raml"
	"gopkg.in/yaml.v3"
)

// Header is the first line of every RAML 1.0 document.
const Header = "#%RAML 1.0"

// DefaultMediaType is used for bodies when neither the method nor the document sets one.
const DefaultMediaType = "application/json"

// Document is a RAML API description.
type Document struct {
	Title     string
	Version   string
	BaseURI   string
	MediaType string

	// Types are emitted in order.
	Types     []*raml.Type
	Resources []*Resource
}

// Resource is one path of the API.
type Resource struct {
	Path        string
	Description string
	Methods     []*Method
}

// Method is one HTTP method of a resource.
type Method struct {
	// Name is the HTTP method, e.g. "get".
	Name        string
	Description string
	MediaType   string
	// Request puts the body on the request instead of the 200 response.
	Request bool
	// Body holds the lines the type handler declared for the body.
	Body Buffer
}

// Resource returns the resource for path, adding it when missing.
func (d *Document) Resource(path string) *Resource {
	for _, r := range d.Resources {
		if r.Path == path {
			return r
		}
	}
	r := &Resource{Path: path}
	d.Resources = append(d.Resources, r)
	return r
}

// RemoveMethod drops m from the resource at path, and the resource once it is empty.
func (d *Document) RemoveMethod(path string, m *Method) {
	for i, r := range d.Resources {
		if r.Path != path {
			continue
		}
		for j, existing := range r.Methods {
			if existing == m {
				r.Methods = append(r.Methods[:j], r.Methods[j+1:]...)
				break
			}
		}
		if len(r.Methods) == 0 {
			d.Resources = append(d.Resources[:i], d.Resources[i+1:]...)
		}
		return
	}
}

// Method returns the method of r named name, in any case.
func (r *Resource) Method(name string) (*Method, bool) {
	for _, m := range r.Methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return nil, false
}

// Write renders the document. The first error from out is returned as is.
func (d *Document) Write(out io.Writer) error {
	w := &stickyWriter{w: out}
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(indentWidth)
	err := enc.Encode(d.node())
	if err == nil {
		err = enc.Close()
	}
	if w.err != nil {
		return w.err
	}
	return err
}

func (d *Document) node() *yaml.Node {
	root := mapping()
	add(root, "title", Scalar(d.Title))
	if d.Version != "" {
		add(root, "version", Scalar(d.Version))
	}
	if d.BaseURI != "" {
		add(root, "baseUri", Scalar(d.BaseURI))
	}
	if d.MediaType != "" {
		add(root, "mediaType", Scalar(d.MediaType))
	}

	if len(d.Types) > 0 {
		types := mapping()
		for _, t := range d.Types {
			add(types, t.Name, typeNode(t))
		}
		add(root, "types", types)
	}

	resources := append([]*Resource{}, d.Resources...)
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Path < resources[j].Path
	})
	for _, r := range resources {
		add(root, r.Path, d.resourceNode(r))
	}
	return root
}

func typeNode(t *raml.Type) *yaml.Node {
	n := mapping()

	if !t.IsObject() {
		add(n, "type", Scalar(t.Base.RefName()))
		if desc := t.Description(); desc != "" {
			add(n, "description", Scalar(desc))
		}
		values := make([]*yaml.Node, 0, len(t.Enum))
		for _, v := range t.Enum {
			values = append(values, valueNode(v))
		}
		add(n, "enum", flowSequence(values...))
		return n
	}

	add(n, "type", superTypeNode(t.SuperTypes()))
	if desc := t.Description(); desc != "" {
		add(n, "description", Scalar(desc))
	}
	if len(t.Properties()) == 0 {
		return n
	}

	props := mapping()
	for _, p := range t.Properties() {
		add(props, p.Name, propertyNode(p))
	}
	add(n, "properties", props)
	return n
}

func superTypeNode(supers []*raml.Type) *yaml.Node {
	switch len(supers) {
	case 0:
		return Scalar("object")
	case 1:
		return Scalar(supers[0].Name)
	}
	names := make([]*yaml.Node, 0, len(supers))
	for _, s := range supers {
		names = append(names, Scalar(s.Name))
	}
	return flowSequence(names...)
}

func propertyNode(p *raml.Property) *yaml.Node {
	example, hasExample := p.Example()
	_, isMap := raml.Unwrap(p.Type).(raml.Map)
	if p.Required() && p.Description() == "" && !hasExample && !isMap {
		return Scalar(p.Type.RefName())
	}

	n := mapping()
	if isMap {
		n.Content = append(n.Content, mapFields(p.Type)...)
	} else {
		add(n, "type", Scalar(p.Type.RefName()))
	}
	if !p.Required() {
		add(n, "required", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
	}
	if desc := p.Description(); desc != "" {
		add(n, "description", Scalar(desc))
	}
	if hasExample {
		add(n, "example", Scalar(example))
	}
	return n
}

// mapFields declares a map type: an object whose "//" pattern property
// holds the values.
func mapFields(ref raml.TypeRef) []*yaml.Node {
	m := raml.Unwrap(ref).(raml.Map)
	typ := "object"
	if _, nullable := ref.(raml.Nullable); nullable {
		typ = "object | nil"
	}
	props := mapping()
	add(props, "//", inlineNode(m.Values))
	return []*yaml.Node{Scalar("type"), Scalar(typ), Scalar("properties"), props}
}

// inlineNode declares ref where a type is expected. Maps have no type
// expression and are declared in place.
func inlineNode(ref raml.TypeRef) *yaml.Node {
	if _, ok := raml.Unwrap(ref).(raml.Map); ok {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: mapFields(ref)}
	}
	return Scalar(ref.RefName())
}

func (d *Document) resourceNode(r *Resource) *yaml.Node {
	n := mapping()
	if r.Description != "" {
		add(n, "description", Scalar(r.Description))
	}

	for _, m := range r.Methods {
		mn := mapping()
		if m.Description != "" {
			add(mn, "description", Scalar(m.Description))
		}

		mediaType := m.MediaType
		if mediaType == "" {
			mediaType = d.MediaType
		}
		if mediaType == "" {
			mediaType = DefaultMediaType
		}
		body := mapping()
		add(body, mediaType, m.Body.Node())

		if m.Request {
			add(mn, "body", body)
		} else {
			ok := mapping()
			add(ok, "body", body)
			responses := mapping()
			responses.Content = append(responses.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "200"}, ok)
			add(mn, "responses", responses)
		}
		add(n, strings.ToLower(m.Name), mn)
	}
	return n
}
