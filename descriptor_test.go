package complety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpectation_SchemaMergesConstraints(t *testing.T) {
	exp := NewExpectation(TypeDescriptor{Kind: KindInteger}, Constraints{"minimum": 0, "maximum": 100})
	assert.Equal(t, "integer", exp.Schema["type"])
	assert.Equal(t, 0, exp.Schema["minimum"])
	assert.Equal(t, 100, exp.Schema["maximum"])
}

func TestNewExpectation_NestedSchema(t *testing.T) {
	exp := NewExpectation(TypeDescriptor{
		Kind: KindObject,
		Fields: map[string]TypeDescriptor{
			"tags": {Kind: KindArray, Elem: &TypeDescriptor{Kind: KindString}},
		},
	}, nil)
	props := exp.Schema["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
}

func TestExpect_Struct(t *testing.T) {
	type Report struct {
		Count int    `json:"count" jsonschema:"minimum=0"`
		Name  string `json:"name"`
	}
	exp, err := Expect[Report](nil)
	require.NoError(t, err)

	assert.Equal(t, "object", exp.Schema["type"])
	assert.NotContains(t, exp.Schema, "$schema")
	assert.NotContains(t, exp.Schema, "$id")

	props, ok := exp.Schema["properties"].(map[string]any)
	require.True(t, ok)
	count, ok := props["count"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", count["type"])
	assert.Equal(t, float64(0), count["minimum"])

	assert.Equal(t, KindObject, exp.Descriptor.Kind)
	assert.Equal(t, KindInteger, exp.Descriptor.Fields["count"].Kind)
	assert.Equal(t, KindString, exp.Descriptor.Fields["name"].Kind)
}

func TestExpect_MergesExtraConstraints(t *testing.T) {
	type Pair struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	exp, err := Expect[Pair](Constraints{"required": []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, exp.Schema["required"])
	assert.Equal(t, Constraints{"required": []string{"a"}}, exp.Constraints)
}

func TestExpect_Slice(t *testing.T) {
	exp, err := Expect[[]string](nil)
	require.NoError(t, err)
	assert.Equal(t, "array", exp.Schema["type"])
	assert.Equal(t, KindArray, exp.Descriptor.Kind)
	require.NotNil(t, exp.Descriptor.Elem)
	assert.Equal(t, KindString, exp.Descriptor.Elem.Kind)
}

func TestDescriptorFromSchema_UnknownTypeIsAny(t *testing.T) {
	d := descriptorFromSchema(map[string]any{})
	assert.Equal(t, KindAny, d.Kind)

	d = descriptorFromSchema(map[string]any{"type": "something"})
	assert.Equal(t, KindAny, d.Kind)
}
