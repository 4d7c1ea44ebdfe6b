// Package orchestrator coordinates the loader, describer and type handlers
// to build a RAML document from annotated Go types.
package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/griffnb/core-raml/internal/console"
	"github.com/griffnb/core-raml/internal/describe"
	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/emitter"
	"github.com/griffnb/core-raml/internal/handler"
	"github.com/griffnb/core-raml/internal/loader"
	"github.com/griffnb/core-raml/internal/registry"
	"github.com/stoewer/go-strcase"
)

// Defaults applied by New.
const (
	DefaultTitle     = "API"
	DefaultMediaType = handler.MediaJSON
	DefaultMethod    = "GET"
)

// ErrDuplicateMethod is returned for a root whose method is already declared
// on its resource.
var ErrDuplicateMethod = errors.New("method already declared")

// Service builds one document. All roots share a single registry, so a type
// reached from several roots is declared once.
type Service struct {
	loader   *loader.Service
	registry *registry.Service
	selector *handler.Selector
	config   *Config
}

// Config holds orchestrator configuration options.
type Config struct {
	ParseVendor     bool
	ParseInternal   bool
	ParseDependency bool
	ParseDepth      int
	// Shallow loads only the search dirs, not the packages below them.
	Shallow       bool
	Excludes      []string
	PackagePrefix []string

	// Types names extra root types ("Name", "pkg.Name" or "import/path.Name").
	Types []string

	Title              string
	Version            string
	BaseURI            string
	MediaType          string
	PropNamingStrategy string

	// Strict fails the parse on the first root that cannot be built instead
	// of skipping it with a warning.
	Strict bool
	Debug  Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// New creates a new orchestrator service with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}
	if config.Title == "" {
		config.Title = DefaultTitle
	}
	if config.MediaType == "" {
		config.MediaType = DefaultMediaType
	}
	if config.PropNamingStrategy == "" {
		config.PropNamingStrategy = handler.CamelCase
	}
	if config.Debug == nil {
		config.Debug = noOpDebugger{}
	}

	loaderService := loader.NewService(
		loader.WithParseVendor(config.ParseVendor),
		loader.WithParseInternal(config.ParseInternal),
		loader.WithParseDependency(config.ParseDependency),
		loader.WithParseDepth(config.ParseDepth),
		loader.WithRecursive(!config.Shallow),
		loader.WithExcludes(config.Excludes),
		loader.WithPackagePrefix(config.PackagePrefix),
		loader.WithDebugger(config.Debug),
	)

	registryService := registry.NewService()
	registryService.SetDebugger(config.Debug)

	selector := handler.DefaultSelector(
		handler.WithNamingStrategy(config.PropNamingStrategy),
		handler.WithDebugger(config.Debug),
		handler.WithWarnings(console.Logger.Warn),
	)

	return &Service{
		loader:   loaderService,
		registry: registryService,
		selector: selector,
		config:   config,
	}
}

// Parse loads searchDirs and builds a document with one resource method per root type.
func (s *Service) Parse(searchDirs []string) (*emitter.Document, error) {
	s.config.Debug.Printf("Orchestrator: Step 1 - Loading %d search dirs", len(searchDirs))
	result, err := s.loader.Load(searchDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	s.config.Debug.Printf("Orchestrator: Loaded %d packages, %d dependencies", len(result.Packages), len(result.Dependencies))

	s.config.Debug.Printf("Orchestrator: Step 2 - Finding root types")
	describer := describe.New(result.All(), s.config.Debug)
	roots, err := describer.Roots(s.config.Types)
	if err != nil {
		return nil, err
	}
	s.config.Debug.Printf("Orchestrator: Found %d roots", len(roots))

	doc := &emitter.Document{
		Title:     s.config.Title,
		Version:   s.config.Version,
		BaseURI:   s.config.BaseURI,
		MediaType: s.config.MediaType,
	}

	s.config.Debug.Printf("Orchestrator: Step 3 - Building types")
	for _, root := range roots {
		if err := s.writeRoot(doc, root); err != nil {
			if s.config.Strict {
				return nil, err
			}
			console.Logger.Warn("skipping %s: %v", root.Identity(), err)
		}
	}

	doc.Types = s.registry.Types()
	s.config.Debug.Printf("Orchestrator: Parse complete, %d types", len(doc.Types))
	return doc, nil
}

// writeRoot adds the resource method for root and builds its type. A root
// that fails to build leaves neither a method nor types behind.
func (s *Service) writeRoot(doc *emitter.Document, root *domain.Type) error {
	method := annotationValue(root, domain.AnnotationMethod, DefaultMethod)
	path := annotationValue(root, domain.AnnotationResource, ResourcePath(handler.TypeName(root)))
	op := handler.NewOperation(method, path)

	m := &emitter.Method{
		Name:    strings.ToLower(op.Method),
		Request: op.Shape == handler.ShapeRequest,
	}
	mediaType := s.config.MediaType
	if custom := annotationValue(root, domain.AnnotationMediaType, ""); custom != "" {
		mediaType = custom
		m.MediaType = custom
	}

	h, err := s.selector.PickTypeWriter(op, mediaType, root)
	if err != nil {
		return err
	}

	resource := doc.Resource(path)
	if _, dup := resource.Method(m.Name); dup {
		return fmt.Errorf("%s %s: %w", op.Method, path, ErrDuplicateMethod)
	}
	resource.Methods = append(resource.Methods, m)
	rt, err := h.WriteType(s.registry, &m.Body, mediaType, op, domain.NewEntity(root))
	if err != nil {
		doc.RemoveMethod(path, m)
		return fmt.Errorf("%s %s: %w", op.Method, path, err)
	}
	m.Description = rt.Description()

	s.config.Debug.Printf("Orchestrator: %s %s -> %s", op.Method, path, rt.Name)
	return nil
}

// ResourcePath is the path used for a root type without "@Resource".
func ResourcePath(typeName string) string {
	return "/" + strcase.KebabCase(typeName)
}

func annotationValue(t *domain.Type, kind, def string) string {
	if a, ok := t.Annotation(kind); ok {
		if v := strings.TrimSpace(a.Value); v != "" {
			return v
		}
	}
	return def
}

// Registry returns the registry service for external access.
func (s *Service) Registry() *registry.Service {
	return s.registry
}
