package handler

import (
	"fmt"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
)

// typeScanner builds one root's closure. It is the registry scanner for every
// type registered during the pass, so types reached through properties are
// populated the same way as the root and its supertypes.
type typeScanner struct {
	cfg      config
	listener registry.TypeScanner

	// walking holds the identities on the current supertype chain.
	walking map[string]bool
	path    []string
	// pending keeps supertypes collected before a type registered itself.
	pending map[string][]*raml.Type
}

func newTypeScanner(cfg config, listener registry.TypeScanner) *typeScanner {
	return &typeScanner{
		cfg:      cfg,
		listener: listener,
		walking:  make(map[string]bool),
		pending:  make(map[string][]*raml.Type),
	}
}

// buildRoot builds entity and its closure. On failure every type registered
// by the pass is discarded.
func buildRoot(reg *registry.Service, entity domain.Entity, cfg config, listener registry.TypeScanner) (*raml.Type, error) {
	cp := reg.Checkpoint()
	rt, err := newTypeScanner(cfg, listener).build(reg, entity)
	if err != nil {
		return nil, rollback(reg, cp, err)
	}
	return rt, nil
}

// rollback returns the registry to cp and passes err through.
func rollback(reg *registry.Service, cp registry.Checkpoint, err error) error {
	if rbErr := reg.Rollback(cp); rbErr != nil {
		return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
	}
	return err
}

// build registers entity after walking its supertypes.
func (ts *typeScanner) build(reg *registry.Service, entity domain.Entity) (*raml.Type, error) {
	t := entity.Type()
	if !t.IsStructural() {
		return nil, &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "not a named interface or struct"}
	}

	identity := entity.Identity()
	if ts.walking[identity] {
		path := append(append([]string{}, ts.path...), identity)
		return nil, &domain.CyclicSuperTypeError{Path: path}
	}
	if rt, ok := reg.Lookup(entity); ok {
		return rt, nil
	}

	supers, err := ts.walkSuperTypes(reg, entity)
	if err != nil {
		return nil, err
	}
	ts.pending[identity] = supers
	defer delete(ts.pending, identity)

	return reg.RegisterType(TypeName(t), entity, ts)
}

func (ts *typeScanner) walkSuperTypes(reg *registry.Service, entity domain.Entity) ([]*raml.Type, error) {
	identity := entity.Identity()
	ts.walking[identity] = true
	ts.path = append(ts.path, identity)
	defer func() {
		delete(ts.walking, identity)
		ts.path = ts.path[:len(ts.path)-1]
	}()

	embeds := entity.Type().Embeds
	supers := make([]*raml.Type, 0, len(embeds))
	for _, embed := range embeds {
		st, err := ts.build(reg, entity.CreateDependent(embed))
		if err != nil {
			return nil, err
		}
		supers = append(supers, st)
	}
	return supers, nil
}

// ScanType populates a newly registered type.
func (ts *typeScanner) ScanType(reg *registry.Service, entity domain.Entity, rt *raml.Type) error {
	// Property types start their own supertype chains.
	walking, path := ts.walking, ts.path
	ts.walking, ts.path = make(map[string]bool), nil
	defer func() {
		ts.walking, ts.path = walking, path
	}()

	t := entity.Type()
	identity := entity.Identity()
	ts.cfg.debug.Printf("handler: scanning %s", identity)

	if t.IsEnum() {
		if err := populateEnum(t, rt); err != nil {
			return err
		}
		return ts.notify(reg, entity, rt)
	}

	supers, ok := ts.pending[identity]
	if ok {
		delete(ts.pending, identity)
	} else {
		var err error
		if supers, err = ts.walkSuperTypes(reg, entity); err != nil {
			return err
		}
	}
	if err := rt.SetSuperTypes(supers); err != nil {
		return fmt.Errorf("%s: %w", rt.Name, err)
	}

	var err error
	if usesAccessors(t) {
		err = ts.addAccessorProperties(reg, entity, rt)
	} else {
		err = ts.addFieldProperties(reg, entity, rt)
	}
	if err != nil {
		return err
	}

	return ts.notify(reg, entity, rt)
}

func (ts *typeScanner) notify(reg *registry.Service, entity domain.Entity, rt *raml.Type) error {
	if ts.listener == nil {
		return nil
	}
	return ts.listener.ScanType(reg, entity, rt)
}

// usesAccessors picks the property strategy: interfaces and structs with
// getters are described by their accessors, other structs by their fields.
func usesAccessors(t *domain.Type) bool {
	if t.Kind == domain.KindInterface {
		return true
	}
	for _, m := range t.Methods {
		if isAccessor(m) {
			return true
		}
	}
	return false
}

func populateEnum(t *domain.Type, rt *raml.Type) error {
	base, ok := PrimitiveOf(&domain.Type{Kind: domain.KindPrimitive, Basic: t.Basic})
	if !ok {
		return &domain.UnresolvableTypeError{Type: t.Identity(), Reason: "enum of " + t.Basic}
	}
	rt.Base = base
	for _, v := range t.Enum {
		rt.Enum = append(rt.Enum, v.Value)
		rt.EnumNames = append(rt.EnumNames, v.Name)
	}
	return rt.SetSuperTypes(nil)
}

func (ts *typeScanner) addFieldProperties(reg *registry.Service, entity domain.Entity, rt *raml.Type) error {
	for _, f := range entity.Type().Fields {
		if f.Embedded || !f.Exported {
			continue
		}

		tag := parseJSONTag(f.Tag)
		if tag.skip {
			continue
		}
		name := tag.name
		if name == "" {
			name = ApplyNamingStrategy(f.Name, ts.cfg.naming)
		}

		dependent := entity.CreateDependent(f.Type)
		ref, err := ResolveType(reg, ts, TypeName(dependent.Type()), dependent)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", rt.Name, f.Name, err)
		}

		p := raml.NewProperty(fieldAnnotations(f), name, ref)
		p.Doc = f.Doc
		p.Optional = tag.omitEmpty
		rt.AddProperty(p)
	}
	return nil
}

// fieldAnnotations merges doc-comment annotations with the example tag.
func fieldAnnotations(f *domain.Field) domain.AnnotationSource {
	example, ok := lookupTag(f.Tag, "example")
	if !ok {
		return f
	}
	if _, has := f.Annotation(domain.AnnotationExample); has {
		return f
	}
	merged := append(domain.Annotations{}, f.Annotations...)
	return append(merged, domain.Annotation{Kind: domain.AnnotationExample, Value: example})
}
