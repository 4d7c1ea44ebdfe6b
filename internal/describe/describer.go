// Package describe turns go/types types into the descriptors the builders
// walk. Descriptors are memoized by type identity, so a type reached twice
// yields the same *domain.Type.
package describe

import (
	"fmt"
	"go/constant"
	"go/types"
	"sort"
	"strings"

	"github.com/griffnb/core-raml/internal/domain"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// Debugger provides debug logging interface.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// Describer builds descriptors for the types of a set of packages.
type Describer struct {
	pkgs  []*packages.Package
	docs  docIndex
	memo  typeutil.Map
	debug Debugger
}

// New indexes the doc comments of pkgs.
func New(pkgs []*packages.Package, debug Debugger) *Describer {
	if debug == nil {
		debug = noOpDebugger{}
	}

	d := &Describer{
		pkgs:  pkgs,
		docs:  make(docIndex),
		debug: debug,
	}
	for _, pkg := range pkgs {
		d.docs.collect(pkg)
	}
	return d
}

// Describe returns the descriptor of t.
func (d *Describer) Describe(t types.Type) *domain.Type {
	if cached, ok := d.memo.At(t).(*domain.Type); ok {
		return cached
	}

	switch tt := t.(type) {
	case *types.Alias:
		dt := d.Describe(types.Unalias(tt))
		d.memo.Set(t, dt)
		return dt
	case *types.Named:
		return d.describeNamed(tt)
	}

	dt := d.describeUnnamed(t)
	d.memo.Set(t, dt)
	return dt
}

func (d *Describer) describeUnnamed(t types.Type) *domain.Type {
	switch tt := t.(type) {
	case *types.Basic:
		switch {
		case tt.Info()&types.IsComplex != 0, tt.Kind() == types.UnsafePointer, tt.Kind() == types.UntypedNil:
			return &domain.Type{Kind: domain.KindUnsupported, Name: tt.Name()}
		}
		return &domain.Type{Kind: domain.KindPrimitive, Name: tt.Name(), Basic: tt.Name()}
	case *types.Pointer:
		return &domain.Type{Kind: domain.KindPointer, Elem: d.Describe(tt.Elem())}
	case *types.Slice:
		return &domain.Type{Kind: domain.KindSlice, Elem: d.Describe(tt.Elem())}
	case *types.Array:
		return &domain.Type{Kind: domain.KindSlice, Elem: d.Describe(tt.Elem())}
	case *types.Map:
		return &domain.Type{Kind: domain.KindMap, Key: d.Describe(tt.Key()), Elem: d.Describe(tt.Elem())}
	case *types.TypeParam:
		return &domain.Type{Kind: domain.KindTypeParam, Name: tt.Obj().Name()}
	case *types.Interface, *types.Struct:
		return &domain.Type{Kind: domain.KindAny}
	default:
		return &domain.Type{Kind: domain.KindUnsupported, Name: t.String()}
	}
}

func (d *Describer) describeNamed(n *types.Named) *domain.Type {
	obj := n.Obj()
	if obj.Pkg() == nil {
		// error, comparable
		dt := &domain.Type{Kind: domain.KindUnsupported, Name: obj.Name()}
		if obj.Name() == "comparable" {
			dt.Kind = domain.KindAny
		}
		d.memo.Set(n, dt)
		return dt
	}

	pkgPath := obj.Pkg().Path()
	annotations, doc := d.docs.lookup(obj.Pos())
	dt := &domain.Type{
		Name:        obj.Name(),
		PkgPath:     pkgPath,
		Annotations: annotations,
		Doc:         doc,
	}
	d.memo.Set(n, dt)

	if qualified := domain.QualifiedName(pkgPath, obj.Name()); domain.IsExtendedPrimitiveType(qualified) {
		dt.Kind = domain.KindPrimitive
		dt.Basic = qualified
		return dt
	}

	origin := n.Origin()
	if args := n.TypeArgs(); args.Len() > 0 {
		params := origin.TypeParams()
		for i := 0; i < args.Len(); i++ {
			dt.TypeArgs = append(dt.TypeArgs, d.Describe(args.At(i)))
			dt.TypeParams = append(dt.TypeParams, params.At(i).Obj().Name())
		}
	} else if params := origin.TypeParams(); params.Len() > 0 {
		for i := 0; i < params.Len(); i++ {
			dt.TypeParams = append(dt.TypeParams, params.At(i).Obj().Name())
		}
	}

	switch u := origin.Underlying().(type) {
	case *types.Basic:
		basic := d.describeUnnamed(u)
		dt.Kind = basic.Kind
		dt.Basic = u.Name()
		dt.Enum = enumValues(n)
	case *types.Interface:
		dt.Kind = domain.KindInterface
		d.describeInterface(dt, u)
	case *types.Struct:
		dt.Kind = domain.KindStruct
		d.describeStruct(dt, u)
		d.describeMethods(dt, origin)
	default:
		// Named slices, maps and funcs describe as their underlying type. dt is
		// still KindInvalid here, so a composite that reaches back to it
		// contains itself.
		ut := d.Describe(n.Underlying())
		if reaches(ut, dt, make(map[*domain.Type]bool)) {
			d.debug.Printf("describe: %s contains itself", dt.Identity())
			dt.Kind = domain.KindUnsupported
			dt.Recursive = true
			break
		}
		*dt = *ut
	}

	return dt
}

// reaches reports whether target is t or an element of t's composite chain.
// Named structural types end the walk.
func reaches(t, target *domain.Type, seen map[*domain.Type]bool) bool {
	if t == target {
		return true
	}
	if t == nil || seen[t] {
		return false
	}
	seen[t] = true

	switch t.Kind {
	case domain.KindSlice, domain.KindPointer:
		return reaches(t.Elem, target, seen)
	case domain.KindMap:
		return reaches(t.Key, target, seen) || reaches(t.Elem, target, seen)
	}
	return false
}

func (d *Describer) describeInterface(dt *domain.Type, iface *types.Interface) {
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if embed := d.Describe(iface.EmbeddedType(i)); embed.IsStructural() {
			dt.Embeds = append(dt.Embeds, embed)
		}
	}

	methods := make([]*types.Func, 0, iface.NumExplicitMethods())
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		methods = append(methods, iface.ExplicitMethod(i))
	}
	dt.Methods = d.methodDescriptors(methods)
}

func (d *Describer) describeStruct(dt *domain.Type, st *types.Struct) {
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		annotations, doc := d.docs.lookup(v.Pos())
		field := &domain.Field{
			Name:        v.Name(),
			Type:        d.Describe(v.Type()),
			Embedded:    v.Embedded(),
			Exported:    v.Exported(),
			Tag:         st.Tag(i),
			Annotations: annotations,
			Doc:         doc,
		}
		dt.Fields = append(dt.Fields, field)

		if field.Embedded {
			embed := field.Type
			if embed.Kind == domain.KindPointer {
				embed = embed.Elem
			}
			if embed.IsStructural() {
				dt.Embeds = append(dt.Embeds, embed)
			}
		}
	}
}

func (d *Describer) describeMethods(dt *domain.Type, origin *types.Named) {
	methods := make([]*types.Func, 0, origin.NumMethods())
	for i := 0; i < origin.NumMethods(); i++ {
		m := origin.Method(i)
		if !m.Exported() {
			continue
		}
		d.bindReceiverTypeParams(origin, m)
		methods = append(methods, m)
	}
	dt.Methods = d.methodDescriptors(methods)
}

// bindReceiverTypeParams describes a generic receiver's type parameters under
// the declaration's names, since a receiver may rename them.
func (d *Describer) bindReceiverTypeParams(origin *types.Named, m *types.Func) {
	sig, ok := m.Type().(*types.Signature)
	if !ok {
		return
	}
	recv, decl := sig.RecvTypeParams(), origin.TypeParams()
	for i := 0; i < recv.Len() && i < decl.Len(); i++ {
		d.memo.Set(recv.At(i), &domain.Type{Kind: domain.KindTypeParam, Name: decl.At(i).Obj().Name()})
	}
}

func (d *Describer) methodDescriptors(funcs []*types.Func) []*domain.Method {
	sort.SliceStable(funcs, func(i, j int) bool {
		return funcs[i].Pos() < funcs[j].Pos()
	})

	methods := make([]*domain.Method, 0, len(funcs))
	for _, fn := range funcs {
		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}
		annotations, doc := d.docs.lookup(fn.Pos())
		m := &domain.Method{
			Name:        fn.Name(),
			NumParams:   sig.Params().Len(),
			Annotations: annotations,
			Doc:         doc,
		}
		for i := 0; i < sig.Results().Len(); i++ {
			m.Results = append(m.Results, d.Describe(sig.Results().At(i).Type()))
		}
		methods = append(methods, m)
	}
	return methods
}

// enumValues collects the package-level constants declared with type n.
func enumValues(n *types.Named) []domain.EnumValue {
	scope := n.Obj().Pkg().Scope()

	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), n) {
			continue
		}
		consts = append(consts, c)
	}
	sort.SliceStable(consts, func(i, j int) bool {
		return consts[i].Pos() < consts[j].Pos()
	})

	values := make([]domain.EnumValue, 0, len(consts))
	for _, c := range consts {
		values = append(values, domain.EnumValue{Name: c.Name(), Value: constantValue(c.Val())})
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func constantValue(v constant.Value) interface{} {
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v)
	case constant.Int:
		if i, ok := constant.Int64Val(v); ok {
			return i
		}
	case constant.Float:
		if f, ok := constant.Float64Val(v); ok {
			return f
		}
	case constant.Bool:
		return constant.BoolVal(v)
	}
	return v.ExactString()
}

// Roots returns the declared, non-generic named types that carry a
// @BuildType or @Resource annotation, plus the types named in explicit
// ("Name", "pkg.Name" or "import/path.Name"), in package and declaration order.
func (d *Describer) Roots(explicit []string) ([]*domain.Type, error) {
	wanted := make(map[string]bool, len(explicit))
	for _, name := range explicit {
		wanted[strings.TrimSpace(name)] = false
	}

	var roots []*domain.Type
	for _, pkg := range d.pkgs {
		if pkg.Types == nil {
			continue
		}
		for _, tn := range declaredTypes(pkg.Types.Scope()) {
			named, ok := tn.Type().(*types.Named)
			if !ok || named.TypeParams().Len() > 0 {
				continue
			}

			dt := d.Describe(named)
			matched := false
			for _, key := range []string{tn.Name(), pkg.Types.Name() + "." + tn.Name(), pkg.PkgPath + "." + tn.Name()} {
				if _, ok := wanted[key]; ok {
					wanted[key] = true
					matched = true
				}
			}
			_, marked := dt.Annotation(domain.AnnotationBuildType)
			_, resource := dt.Annotation(domain.AnnotationResource)
			if matched || marked || resource {
				d.debug.Printf("describe: root %s", dt.Identity())
				roots = append(roots, dt)
			}
		}
	}

	var missing []string
	for name, found := range wanted {
		if !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return roots, fmt.Errorf("describe: types not found: %s", strings.Join(missing, ", "))
	}
	return roots, nil
}

func declaredTypes(scope *types.Scope) []*types.TypeName {
	var names []*types.TypeName
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		names = append(names, tn)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return names[i].Pos() < names[j].Pos()
	})
	return names
}
