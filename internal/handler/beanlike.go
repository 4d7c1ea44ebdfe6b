package handler

import (
	"fmt"
	"strings"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
)

// BeanLikeTypes builds types whose accessor methods define their properties.
type BeanLikeTypes struct {
	cfg config
}

// NewBeanLikeTypes creates the bean-like strategy.
func NewBeanLikeTypes(options ...Option) *BeanLikeTypes {
	return &BeanLikeTypes{cfg: newConfig(options)}
}

// HandlesType accepts types marked "@BuildType ramlforjaxrs-simple".
func (h *BeanLikeTypes) HandlesType(_ Operation, _ string, t *domain.Type) bool {
	a, ok := t.Annotation(domain.AnnotationBuildType)
	return ok && strings.EqualFold(strings.TrimSpace(a.Value), SimpleBuildType)
}

// WriteType declares the type on w, then builds it.
func (h *BeanLikeTypes) WriteType(reg *registry.Service, w LineWriter, _ string, _ Operation, entity domain.Entity) (*raml.Type, error) {
	return writeType(reg, w, entity, h.cfg)
}

// Build interns root, its supertypes and every type its properties reach.
// listener, when set, is told about each new type once it is populated.
// A failed build leaves the registry as it was.
func (h *BeanLikeTypes) Build(reg *registry.Service, root domain.Entity, listener registry.TypeScanner) (*raml.Type, error) {
	return buildRoot(reg, root, h.cfg, listener)
}

func writeType(reg *registry.Service, w LineWriter, entity domain.Entity, cfg config) (*raml.Type, error) {
	cp := reg.Checkpoint()
	name := reg.ReserveName(TypeName(entity.Type()), entity)
	if err := w.AppendLine("type", name); err != nil {
		return nil, rollback(reg, cp, err)
	}
	rt, err := buildRoot(reg, entity, cfg, nil)
	if err != nil {
		return nil, rollback(reg, cp, err)
	}
	return rt, nil
}

// isAccessor reports whether m has the getter shape: the prefix, no
// parameters and a single result.
func isAccessor(m *domain.Method) bool {
	return strings.HasPrefix(m.Name, GetterPrefix) && m.NumParams == 0 && len(m.Results) == 1
}

func (ts *typeScanner) addAccessorProperties(reg *registry.Service, entity domain.Entity, rt *raml.Type) error {
	for _, m := range entity.Type().Methods {
		if !isAccessor(m) {
			continue
		}

		name := PropertyName(m.Name)
		if name == "" {
			err := fmt.Errorf("%s.%s: %w", rt.Name, m.Name, domain.ErrMalformedAccessor)
			ts.cfg.warn("skipping property: %v", err)
			continue
		}

		dependent := entity.CreateDependent(m.Results[0])
		ref, err := ResolveType(reg, ts, TypeName(dependent.Type()), dependent)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", rt.Name, m.Name, err)
		}

		p := raml.NewProperty(m, name, ref)
		p.Doc = m.Doc
		rt.AddProperty(p)
	}
	return nil
}
