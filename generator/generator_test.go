package generator

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

type orderItem struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity" minimum:"1"`
	Note     *string `json:"note,omitempty"`
}

type order struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Total     float64           `json:"total"`
	Count     uint              `json:"count"`
	Items     []orderItem       `json:"items" minItems:"1"`
	Meta      map[string]string `json:"meta,omitempty"`
	Raw       json.RawMessage   `json:"raw,omitempty"`
	Blob      []byte            `json:"blob,omitempty"`
	Internal  string            `json:"-"`
	hidden    int
}

func TestGenerator_ScalarsAndSpecialTypes(t *testing.T) {
	g := NewGenerator()

	schema, err := g.Generate(order{})
	require.NoError(t, err)

	assert.Equal(t, types.SchemaTypeObject, schema.Type)
	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", schema.Schema)
	assert.Equal(t, "order", schema.Title)

	props := schema.Properties
	require.NotNil(t, props)

	assert.Equal(t, types.SchemaTypeString, props["id"].Type)
	assert.Equal(t, types.FormatUUID, props["id"].Format)

	assert.Equal(t, types.SchemaTypeString, props["createdAt"].Type)
	assert.Equal(t, types.FormatDateTime, props["createdAt"].Format)

	assert.Equal(t, types.SchemaTypeNumber, props["total"].Type)

	require.NotNil(t, props["count"].Minimum)
	assert.Equal(t, 0.0, *props["count"].Minimum)
	assert.Equal(t, types.SchemaTypeInteger, props["count"].Type)

	require.Equal(t, types.SchemaTypeArray, props["items"].Type)
	require.NotNil(t, props["items"].Items)
	assert.Equal(t, types.SchemaTypeObject, props["items"].Items.Type)
	assert.Equal(t, types.SchemaTypeString, props["items"].Items.Properties["sku"].Type)

	require.NotNil(t, props["meta"].AdditionalProperties)
	assert.True(t, *props["meta"].AdditionalProperties)

	assert.Equal(t, types.SchemaTypeObject, props["raw"].Type)
	assert.Equal(t, types.SchemaTypeString, props["blob"].Type, "byte slices serialize as base64 strings")

	assert.NotContains(t, props, "Internal")
	assert.NotContains(t, props, "hidden")
}

func TestGenerator_RequiredRules(t *testing.T) {
	g := NewGenerator()

	schema, err := g.Generate(order{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"id", "createdAt", "total", "count", "items"}, schema.Required)

	items := schema.Properties["items"].Items
	assert.ElementsMatch(t, []string{"sku", "quantity"}, items.Required,
		"pointer fields stay optional")
}

func TestGenerator_UntaggedFieldsUseThePolicy(t *testing.T) {
	type profile struct {
		UserName string
		Age      int
	}

	t.Run("camel by default", func(t *testing.T) {
		schema, err := NewGenerator().Generate(profile{})
		require.NoError(t, err)
		assert.Contains(t, schema.Properties, "userName")
		assert.Contains(t, schema.Properties, "age")
		assert.Empty(t, schema.Required, "untagged fields are not required")
	})

	t.Run("snake when configured", func(t *testing.T) {
		schema, err := NewGenerator(WithPolicy(naming.SnakeCase{})).Generate(profile{})
		require.NoError(t, err)
		assert.Contains(t, schema.Properties, "user_name")
	})
}

func TestGenerator_EmbeddedStructsFlatten(t *testing.T) {
	type baseModel struct {
		ID string `json:"id"`
	}
	type userModel struct {
		baseModel
		Email string `json:"email" validate:"required,email"`
	}

	schema, err := NewGenerator().Generate(userModel{})
	require.NoError(t, err)

	assert.Contains(t, schema.Properties, "id")
	assert.Contains(t, schema.Properties, "email")
	assert.NotContains(t, schema.Properties, "baseModel")
	assert.Equal(t, types.FormatEmail, schema.Properties["email"].Format)
	assert.ElementsMatch(t, []string{"id", "email"}, schema.Required)
}

func TestGenerator_MaxDepthCollapses(t *testing.T) {
	type level3 struct {
		Leaf string `json:"leaf"`
	}
	type level2 struct {
		Next level3 `json:"next"`
	}
	type level1 struct {
		Next level2 `json:"next"`
	}

	schema, err := NewGenerator(WithMaxDepth(2)).Generate(level1{})
	require.NoError(t, err)

	inner := schema.Properties["next"]
	require.NotNil(t, inner)
	collapsed := inner.Properties["next"]
	require.NotNil(t, collapsed)
	assert.Nil(t, collapsed.Properties, "levels past the depth bound collapse to a generic object")
	require.NotNil(t, collapsed.AdditionalProperties)
	assert.True(t, *collapsed.AdditionalProperties)
}

func TestGenerator_CyclesCollapse(t *testing.T) {
	type node struct {
		Value string `json:"value"`
		Next  *node  `json:"next,omitempty"`
	}

	schema, err := NewGenerator().Generate(node{})
	require.NoError(t, err)

	next := schema.Properties["next"]
	require.NotNil(t, next)
	assert.Nil(t, next.Properties)
	require.NotNil(t, next.AdditionalProperties)
	assert.True(t, *next.AdditionalProperties)
}

func TestGenerator_RootValidation(t *testing.T) {
	g := NewGenerator()

	_, err := g.Generate(nil)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaGeneration))

	_, err = g.GenerateType(reflect.TypeOf(42))
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrUnsupportedKind))

	_, err = g.Generate("not a struct")
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrUnsupportedKind))

	schema, err := g.Generate(&order{})
	require.NoError(t, err, "pointers to structs are accepted")
	assert.Equal(t, "order", schema.Title)
}

func TestGenerator_UnsupportedFieldKind(t *testing.T) {
	type bad struct {
		Ch chan int `json:"ch"`
	}

	_, err := NewGenerator().Generate(bad{})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaGeneration))
	assert.True(t, types.IsErrorCode(err, types.ErrUnsupportedKind), "the cause keeps the kind failure")
}

func TestGenerator_CachesPerRootType(t *testing.T) {
	g := NewGenerator()

	first, err := g.Generate(order{})
	require.NoError(t, err)
	second, err := g.Generate(&order{})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGenerator_TitlesToggle(t *testing.T) {
	schema, err := NewGenerator(WithTitles(false)).Generate(order{})
	require.NoError(t, err)
	assert.Empty(t, schema.Title)
}

func TestGenerator_ConstraintTags(t *testing.T) {
	type constrained struct {
		Name  string   `json:"name" minLength:"2" maxLength:"10" pattern:"^[a-z]+$" description:"User handle"`
		Level string   `json:"level" enum:"low,mid,high"`
		Score int      `json:"score" minimum:"0" maximum:"100"`
		Temp  float64  `json:"temp" exclusiveMinimum:"-273.15"`
		Tags  []string `json:"tags" minItems:"1" maxItems:"5" uniqueItems:"true"`
		Mode  string   `json:"mode" validate:"oneof=a b c"`
		Email string   `json:"email" validate:"email"`
		Age   int      `json:"age" validate:"min=18,max=99"`
		Code  string   `json:"code" validate:"min=3,max=6"`
	}

	schema, err := NewGenerator().Generate(constrained{})
	require.NoError(t, err)
	props := schema.Properties

	name := props["name"]
	require.NotNil(t, name.MinLength)
	assert.Equal(t, 2, *name.MinLength)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, 10, *name.MaxLength)
	assert.Equal(t, "^[a-z]+$", name.Pattern)
	assert.Equal(t, "User handle", name.Description)

	assert.Equal(t, []any{"low", "mid", "high"}, props["level"].Enum)

	require.NotNil(t, props["score"].Minimum)
	assert.Equal(t, 0.0, *props["score"].Minimum)
	require.NotNil(t, props["score"].Maximum)
	assert.Equal(t, 100.0, *props["score"].Maximum)

	require.NotNil(t, props["temp"].ExclusiveMinimum)
	assert.Equal(t, -273.15, *props["temp"].ExclusiveMinimum)

	tags := props["tags"]
	require.NotNil(t, tags.MinItems)
	assert.Equal(t, 1, *tags.MinItems)
	require.NotNil(t, tags.MaxItems)
	assert.Equal(t, 5, *tags.MaxItems)
	require.NotNil(t, tags.UniqueItems)
	assert.True(t, *tags.UniqueItems)

	assert.Equal(t, []any{"a", "b", "c"}, props["mode"].Enum)
	assert.Equal(t, types.FormatEmail, props["email"].Format)

	require.NotNil(t, props["age"].Minimum)
	assert.Equal(t, 18.0, *props["age"].Minimum)
	require.NotNil(t, props["age"].Maximum)
	assert.Equal(t, 99.0, *props["age"].Maximum)

	code := props["code"]
	require.NotNil(t, code.MinLength)
	assert.Equal(t, 3, *code.MinLength)
	require.NotNil(t, code.MaxLength)
	assert.Equal(t, 6, *code.MaxLength)
}
