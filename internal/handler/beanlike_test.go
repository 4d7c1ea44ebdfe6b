package handler

import (
	"testing"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyNames(rt *raml.Type) []string {
	names := []string{}
	for _, p := range rt.Properties() {
		names = append(names, p.Name)
	}
	return names
}

func TestBeanLikeTypes_Build(t *testing.T) {
	t.Run("person extends named", func(t *testing.T) {
		// Arrange
		_, person := personFixture()
		reg := registry.NewService()
		h := NewBeanLikeTypes()

		// Act
		rt, err := h.Build(reg, domain.NewEntity(person), nil)

		// Assert
		require.NoError(t, err)
		require.Equal(t, 2, reg.Len())

		types := reg.Types()
		named := types[0]
		assert.Equal(t, "Named", named.Name)
		assert.Empty(t, named.SuperTypes())
		require.Len(t, named.Properties(), 1)
		assert.Equal(t, "name", named.Properties()[0].Name)
		assert.Equal(t, raml.String, named.Properties()[0].Type)

		assert.Same(t, rt, types[1])
		assert.Equal(t, "Person", rt.Name)
		require.Len(t, rt.SuperTypes(), 1)
		assert.Same(t, named, rt.SuperTypes()[0])
		require.Len(t, rt.Properties(), 1, "setters are not properties")
		assert.Equal(t, "age", rt.Properties()[0].Name)
		assert.Equal(t, raml.Integer, rt.Properties()[0].Type)
	})

	t.Run("diamond ancestor is interned once", func(t *testing.T) {
		// Arrange
		a := iface("A", nil, getter("GetA", stringType))
		b := iface("B", []*domain.Type{a}, getter("GetB", stringType))
		c := iface("C", []*domain.Type{a}, getter("GetC", stringType))
		d := iface("D", []*domain.Type{b, c}, getter("GetD", stringType))
		reg := registry.NewService()

		// Act
		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(d), nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, reg.Len())
		require.Len(t, rt.SuperTypes(), 2)
		viaB := rt.SuperTypes()[0].SuperTypes()[0]
		viaC := rt.SuperTypes()[1].SuperTypes()[0]
		assert.Same(t, viaB, viaC)
		assert.Equal(t, []string{"a"}, propertyNames(viaB), "properties are never appended twice")
	})

	t.Run("empty supertypes and properties", func(t *testing.T) {
		reg := registry.NewService()
		leaf := iface("Leaf", nil, &domain.Method{Name: "Close", Results: []*domain.Type{{Kind: domain.KindInterface, Name: "error"}}})

		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(leaf), nil)

		require.NoError(t, err)
		assert.NotNil(t, rt.SuperTypes())
		assert.Empty(t, rt.SuperTypes())
		assert.NotNil(t, rt.Properties())
		assert.Empty(t, rt.Properties())
	})

	t.Run("property order is stable across registries", func(t *testing.T) {
		build := func() []string {
			_, person := personFixture()
			person.Methods = append(person.Methods,
				getter("GetZip", stringType),
				getter("GetActive", boolType),
				getter("GetBorn", timeType),
			)
			rt, err := NewBeanLikeTypes().Build(registry.NewService(), domain.NewEntity(person), nil)
			require.NoError(t, err)
			return propertyNames(rt)
		}

		first := build()
		second := build()

		assert.Equal(t, []string{"age", "zip", "active", "born"}, first)
		assert.Equal(t, first, second)
	})

	t.Run("bare getter prefix is skipped with a warning", func(t *testing.T) {
		// Arrange
		warnings := &recordingLog{}
		odd := iface("Odd", nil, getter("Get", stringType), getter("GetId", intType))
		reg := registry.NewService()

		// Act
		rt, err := NewBeanLikeTypes(WithWarnings(warnings.Printf)).Build(reg, domain.NewEntity(odd), nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, propertyNames(rt))
		require.Len(t, warnings.lines, 1)
		assert.Contains(t, warnings.lines[0], "Odd.Get")
		assert.Contains(t, warnings.lines[0], domain.ErrMalformedAccessor.Error())
	})

	t.Run("unresolvable return type aborts and rolls back", func(t *testing.T) {
		// Arrange
		reg := registry.NewService()
		existing := iface("Existing", nil)
		_, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(existing), nil)
		require.NoError(t, err)

		named, _ := personFixture()
		broken := iface("Broken", []*domain.Type{named},
			getter("GetName", stringType),
			getter("GetCallback", &domain.Type{Kind: domain.KindUnsupported, Name: "func()"}),
		)

		// Act
		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(broken), nil)

		// Assert
		assert.Nil(t, rt)
		require.ErrorIs(t, err, domain.ErrUnresolvableType)
		var unresolvable *domain.UnresolvableTypeError
		require.ErrorAs(t, err, &unresolvable)
		assert.Contains(t, err.Error(), "Broken.GetCallback")
		assert.Equal(t, 1, reg.Len(), "only the earlier root survives")
		_, ok := reg.Lookup(domain.NewEntity(named))
		assert.False(t, ok)
	})

	t.Run("recursive map property is unresolvable", func(t *testing.T) {
		meta := &domain.Type{Kind: domain.KindUnsupported, Name: "Meta", PkgPath: testPkg, Recursive: true}
		doc := iface("Doc", nil, getter("GetMeta", meta))
		reg := registry.NewService()

		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(doc), nil)

		assert.Nil(t, rt)
		require.ErrorIs(t, err, domain.ErrUnresolvableType)
		assert.Contains(t, err.Error(), "Doc.GetMeta")
		assert.Contains(t, err.Error(), "recursive composite type")
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("cyclic supertypes are reported", func(t *testing.T) {
		// Arrange
		a := iface("A", nil)
		b := iface("B", []*domain.Type{a})
		a.Embeds = []*domain.Type{b}
		reg := registry.NewService()

		// Act
		_, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(a), nil)

		// Assert
		require.ErrorIs(t, err, domain.ErrCyclicSuperType)
		var cyclic *domain.CyclicSuperTypeError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, []string{testPkg + ".A", testPkg + ".B", testPkg + ".A"}, cyclic.Path)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("supertype referenced from a descendant property is not a cycle", func(t *testing.T) {
		// Arrange: A embeds B, B embeds C, C has a property of type A.
		c := iface("C", nil)
		b := iface("B", []*domain.Type{c})
		a := iface("A", []*domain.Type{b}, getter("GetLabel", stringType))
		c.Methods = []*domain.Method{getter("GetOwner", a)}
		reg := registry.NewService()

		// Act
		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(a), nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, reg.Len())
		owner, ok := reg.Types()[0].Property("owner")
		require.True(t, ok)
		assert.Same(t, rt, owner.Type)
		assert.Equal(t, []string{"label"}, propertyNames(rt))
	})

	t.Run("self reference through a property", func(t *testing.T) {
		node := iface("Node", nil)
		node.Methods = []*domain.Method{getter("GetNext", pointerTo(node)), getter("GetValue", intType)}
		reg := registry.NewService()

		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(node), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, reg.Len())
		next, ok := rt.Property("next")
		require.True(t, ok)
		assert.Equal(t, raml.Nullable{Of: rt}, next.Type)
	})

	t.Run("generic return types resolve against the instantiation", func(t *testing.T) {
		// Arrange: Page[T] { GetItems() []T; GetTotal() int } instantiated with User.
		user := &domain.Type{
			Kind: domain.KindStruct, Name: "User", PkgPath: testPkg,
			Fields: []*domain.Field{{Name: "Email", Type: stringType, Exported: true, Tag: `json:"email"`}},
		}
		typeParam := &domain.Type{Kind: domain.KindTypeParam, Name: "T"}
		page := &domain.Type{
			Kind: domain.KindInterface, Name: "Page", PkgPath: testPkg,
			TypeParams: []string{"T"},
			TypeArgs:   []*domain.Type{user},
			Methods: []*domain.Method{
				getter("GetItems", sliceOf(typeParam)),
				getter("GetTotal", intType),
			},
		}
		reg := registry.NewService()

		// Act
		rt, err := NewBeanLikeTypes().Build(reg, domain.NewEntity(page), nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Page_User", rt.Name)
		items, ok := rt.Property("items")
		require.True(t, ok)
		array, ok := items.Type.(raml.Array)
		require.True(t, ok)
		userType, ok := array.Items.(*raml.Type)
		require.True(t, ok)
		assert.Equal(t, "User", userType.Name)
		assert.Equal(t, []string{"email"}, propertyNames(userType))
	})

	t.Run("unbound type parameter is unresolvable", func(t *testing.T) {
		generic := iface("Box", nil, getter("GetValue", &domain.Type{Kind: domain.KindTypeParam, Name: "T"}))
		generic.TypeParams = []string{"T"}

		_, err := NewBeanLikeTypes().Build(registry.NewService(), domain.NewEntity(generic), nil)

		assert.ErrorIs(t, err, domain.ErrUnresolvableType)
	})

	t.Run("enum property becomes a constrained scalar", func(t *testing.T) {
		status := &domain.Type{
			Kind: domain.KindPrimitive, Name: "Status", PkgPath: testPkg, Basic: "string",
			Enum: []domain.EnumValue{{Name: "StatusActive", Value: "active"}, {Name: "StatusBanned", Value: "banned"}},
		}
		account := iface("Account", nil, getter("GetStatus", status))

		rt, err := NewBeanLikeTypes().Build(registry.NewService(), domain.NewEntity(account), nil)

		require.NoError(t, err)
		p, ok := rt.Property("status")
		require.True(t, ok)
		enum, ok := p.Type.(*raml.Type)
		require.True(t, ok)
		assert.Equal(t, "Status", enum.Name)
		assert.Equal(t, raml.String, enum.Base)
		assert.Equal(t, []interface{}{"active", "banned"}, enum.Enum)
		assert.Equal(t, []string{"StatusActive", "StatusBanned"}, enum.EnumNames)
	})

	t.Run("property keeps its accessor annotations", func(t *testing.T) {
		person := iface("Person", nil, getter("GetNickname", stringType,
			domain.Annotation{Kind: domain.AnnotationRequired, Value: "false"},
			domain.Annotation{Kind: domain.AnnotationExample, Value: "Bob"},
		))

		rt, err := NewBeanLikeTypes().Build(registry.NewService(), domain.NewEntity(person), nil)

		require.NoError(t, err)
		p := rt.Properties()[0]
		assert.False(t, p.Required())
		example, ok := p.Example()
		require.True(t, ok)
		assert.Equal(t, "Bob", example)
	})

	t.Run("listener sees every new type once, populated", func(t *testing.T) {
		// Arrange
		_, person := personFixture()
		reg := registry.NewService()
		var seen []string
		listener := registry.ScannerFunc(func(_ *registry.Service, _ domain.Entity, rt *raml.Type) error {
			seen = append(seen, rt.Name)
			assert.NotEmpty(t, rt.Properties())
			return nil
		})
		h := NewBeanLikeTypes()

		// Act
		_, err := h.Build(reg, domain.NewEntity(person), listener)
		require.NoError(t, err)
		_, err = h.Build(reg, domain.NewEntity(person), listener)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, []string{"Named", "Person"}, seen)
	})

	t.Run("type registered by an ancestor's property is not left pending", func(t *testing.T) {
		// Arrange: Child embeds Parent, Parent has a property of type Child.
		parent := iface("Parent", nil)
		child := iface("Child", []*domain.Type{parent}, getter("GetAge", intType))
		parent.Methods = []*domain.Method{getter("GetChild", child)}
		reg := registry.NewService()
		ts := newTypeScanner(newConfig(nil), nil)

		// Act
		rt, err := ts.build(reg, domain.NewEntity(child))

		// Assert
		require.NoError(t, err)
		assert.Empty(t, ts.pending)
		assert.Equal(t, 2, reg.Len())
		assert.Equal(t, []string{"age"}, propertyNames(rt))
	})

	t.Run("@name overrides the type name", func(t *testing.T) {
		person := iface("Person", nil)
		person.Annotations = domain.Annotations{{Kind: domain.AnnotationName, Value: "Human"}}

		rt, err := NewBeanLikeTypes().Build(registry.NewService(), domain.NewEntity(person), nil)

		require.NoError(t, err)
		assert.Equal(t, "Human", rt.Name)
	})
}

func TestBeanLikeTypes_HandlesType(t *testing.T) {
	h := NewBeanLikeTypes()
	op := NewOperation("GET", "/people")
	_, person := personFixture()

	assert.True(t, h.HandlesType(op, MediaJSON, person))
	assert.False(t, h.HandlesType(op, MediaJSON, iface("Plain", nil)))

	other := iface("Other", nil)
	other.Annotations = domain.Annotations{{Kind: domain.AnnotationBuildType, Value: "something-else"}}
	assert.False(t, h.HandlesType(op, MediaJSON, other))
}

func TestBeanLikeTypes_WriteType(t *testing.T) {
	t.Run("declares the type before building", func(t *testing.T) {
		// Arrange
		_, person := personFixture()
		reg := registry.NewService()
		w := &recordingWriter{}

		// Act
		rt, err := NewBeanLikeTypes().WriteType(reg, w, MediaJSON, NewOperation("GET", "/people"), domain.NewEntity(person))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"type: Person"}, w.lines)
		assert.Equal(t, "Person", rt.Name)
		assert.Equal(t, 2, reg.Len())
	})

	t.Run("write failure surfaces unchanged", func(t *testing.T) {
		_, person := personFixture()
		reg := registry.NewService()
		w := &recordingWriter{err: errDiskFull}

		rt, err := NewBeanLikeTypes().WriteType(reg, w, MediaJSON, NewOperation("GET", "/people"), domain.NewEntity(person))

		assert.Nil(t, rt)
		assert.Same(t, errDiskFull, err)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("failed root releases its name", func(t *testing.T) {
		// Arrange
		badSuper := iface("BadSuper", nil, getter("GetCallback", &domain.Type{Kind: domain.KindUnsupported, Name: "func()"}))
		broken := marked(iface("Broken", []*domain.Type{badSuper}))
		reg := registry.NewService()
		h := NewBeanLikeTypes()
		op := NewOperation("GET", "/broken")

		// Act
		_, err := h.WriteType(reg, &recordingWriter{}, MediaJSON, op, domain.NewEntity(broken))
		require.ErrorIs(t, err, domain.ErrUnresolvableType)

		other := marked(&domain.Type{Kind: domain.KindInterface, Name: "Broken", PkgPath: "example.com/other"})
		w := &recordingWriter{}
		rt, err := h.WriteType(reg, w, MediaJSON, op, domain.NewEntity(other))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Broken", rt.Name)
		assert.Equal(t, []string{"type: Broken"}, w.lines)
		assert.Equal(t, 1, reg.Len())
	})
}

func TestPropertyName(t *testing.T) {
	tests := []struct {
		accessor string
		want     string
	}{
		{"GetId", "id"},
		{"GetURL", "uRL"},
		{"GetX", "x"},
		{"GetUserId", "userId"},
		{"Get", ""},
		{"GetÉtat", "état"},
	}

	for _, tt := range tests {
		t.Run(tt.accessor, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyName(tt.accessor))
		})
	}
}

func TestIsAccessor(t *testing.T) {
	assert.True(t, isAccessor(getter("GetName", stringType)))
	assert.False(t, isAccessor(setter("SetName", stringType)))
	assert.False(t, isAccessor(&domain.Method{Name: "GetByID", NumParams: 1, Results: []*domain.Type{stringType}}))
	assert.False(t, isAccessor(&domain.Method{Name: "GetPair", Results: []*domain.Type{stringType, intType}}))
	assert.False(t, isAccessor(&domain.Method{Name: "Name", Results: []*domain.Type{stringType}}))
}
