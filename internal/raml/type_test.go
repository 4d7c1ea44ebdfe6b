package raml

import (
	"testing"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewType(t *testing.T) {
	t.Run("starts with empty, non-nil sequences", func(t *testing.T) {
		// Act
		rt := NewType("Named")

		// Assert
		assert.Equal(t, "Named", rt.Name)
		assert.NotNil(t, rt.SuperTypes())
		assert.Empty(t, rt.SuperTypes())
		assert.NotNil(t, rt.Properties())
		assert.Empty(t, rt.Properties())
	})
}

func TestType_SetSuperTypes(t *testing.T) {
	t.Run("sets exactly once", func(t *testing.T) {
		// Arrange
		named := NewType("Named")
		person := NewType("Person")

		// Act
		err := person.SetSuperTypes([]*Type{named})
		second := person.SetSuperTypes(nil)

		// Assert
		require.NoError(t, err)
		assert.ErrorIs(t, second, ErrSuperTypesSet)
		require.Len(t, person.SuperTypes(), 1)
		assert.Same(t, named, person.SuperTypes()[0])
	})

	t.Run("nil supertypes become empty", func(t *testing.T) {
		rt := NewType("Leaf")

		require.NoError(t, rt.SetSuperTypes(nil))

		assert.NotNil(t, rt.SuperTypes())
		assert.Empty(t, rt.SuperTypes())
	})

	t.Run("caller slice is copied", func(t *testing.T) {
		a, b := NewType("A"), NewType("B")
		supers := []*Type{a}
		rt := NewType("C")

		require.NoError(t, rt.SetSuperTypes(supers))
		supers[0] = b

		assert.Same(t, a, rt.SuperTypes()[0])
	})
}

func TestType_AddProperty(t *testing.T) {
	// Arrange
	rt := NewType("Person")

	// Act
	rt.AddProperty(NewProperty(nil, "name", String))
	rt.AddProperty(NewProperty(nil, "age", Integer))

	// Assert
	props := rt.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "age", props[1].Name)

	p, ok := rt.Property("age")
	require.True(t, ok)
	assert.Equal(t, Integer, p.Type)

	_, ok = rt.Property("missing")
	assert.False(t, ok)
}

func TestType_Description(t *testing.T) {
	rt := NewType("Person")
	rt.Doc = "Person is somebody."
	assert.Equal(t, "Person is somebody.", rt.Description())

	rt.Annotations = domain.Annotations{{Kind: domain.AnnotationDescription, Value: "A person"}}
	assert.Equal(t, "A person", rt.Description())
}

func TestProperty_Annotations(t *testing.T) {
	t.Run("required by default", func(t *testing.T) {
		p := NewProperty(nil, "id", String)
		assert.True(t, p.Required())
		_, ok := p.Example()
		assert.False(t, ok)
	})

	t.Run("annotation source drives metadata", func(t *testing.T) {
		// Arrange
		source := &domain.Method{
			Name: "GetNickname",
			Annotations: domain.Annotations{
				{Kind: domain.AnnotationRequired, Value: "false"},
				{Kind: domain.AnnotationDescription, Value: "What friends call them"},
				{Kind: domain.AnnotationExample, Value: "Bob"},
			},
		}

		// Act
		p := NewProperty(source, "nickname", String)

		// Assert
		assert.False(t, p.Required())
		assert.Equal(t, "What friends call them", p.Description())
		example, ok := p.Example()
		require.True(t, ok)
		assert.Equal(t, "Bob", example)
	})

	t.Run("optional flag", func(t *testing.T) {
		p := NewProperty(nil, "street", String)
		p.Optional = true
		assert.False(t, p.Required())
	})

	t.Run("explicit required overrides optional", func(t *testing.T) {
		p := NewProperty(domain.Annotations{{Kind: domain.AnnotationRequired}}, "street", String)
		p.Optional = true
		assert.True(t, p.Required())
	})
}

func TestTypeRef_RefName(t *testing.T) {
	person := NewType("Person")

	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"primitive", Integer, "integer"},
		{"interned type", person, "Person"},
		{"array", Array{Items: person}, "Person[]"},
		{"nullable", Nullable{Of: String}, "string | nil"},
		{"array of nullable", Array{Items: Nullable{Of: person}}, "(Person | nil)[]"},
		{"nested array", Array{Items: Array{Items: Number}}, "number[][]"},
		{"map", Map{Values: String}, "object"},
		{"named", Named("Money"), "Money"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.RefName())
		})
	}
}

func TestUnwrap(t *testing.T) {
	assert.Equal(t, String, Unwrap(Nullable{Of: Nullable{Of: String}}))
	assert.Equal(t, Integer, Unwrap(Integer))
}

func TestType_IsObject(t *testing.T) {
	rt := NewType("Status")
	assert.True(t, rt.IsObject())

	rt.Base = String
	rt.Enum = []interface{}{"active", "inactive"}
	assert.False(t, rt.IsObject())
}
