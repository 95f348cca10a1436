package complety

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCaster_CastScalars(t *testing.T) {
	c := SchemaCaster{}

	v, err := c.Cast(TypeDescriptor{Kind: KindString}, "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = c.Cast(TypeDescriptor{Kind: KindBoolean}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	// JSON decoding yields float64 for numbers; integral floats cast to int64.
	v, err = c.Cast(TypeDescriptor{Kind: KindInteger}, float64(7), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = c.Cast(TypeDescriptor{Kind: KindInteger}, json.Number("42"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = c.Cast(TypeDescriptor{Kind: KindNumber}, float64(1.5), nil)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = c.Cast(TypeDescriptor{Kind: KindNumber}, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestSchemaCaster_CastRejections(t *testing.T) {
	c := SchemaCaster{}

	_, err := c.Cast(TypeDescriptor{Kind: KindInteger}, "seven", nil)
	assert.ErrorContains(t, err, "expected integer")

	_, err = c.Cast(TypeDescriptor{Kind: KindInteger}, 7.5, nil)
	assert.ErrorContains(t, err, "fractional")

	_, err = c.Cast(TypeDescriptor{Kind: KindString}, 1, nil)
	assert.ErrorContains(t, err, "expected string")

	_, err = c.Cast(TypeDescriptor{Kind: KindString}, nil, nil)
	assert.ErrorContains(t, err, "required")
}

func TestSchemaCaster_CastAny(t *testing.T) {
	c := SchemaCaster{}
	v, err := c.Cast(TypeDescriptor{Kind: KindAny}, map[string]any{"free": "form"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"free": "form"}, v)
}

func TestSchemaCaster_CastArray(t *testing.T) {
	c := SchemaCaster{}
	elem := TypeDescriptor{Kind: KindInteger}
	d := TypeDescriptor{Kind: KindArray, Elem: &elem}

	v, err := c.Cast(d, []any{float64(1), float64(2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, v)

	_, err = c.Cast(d, []any{float64(1), "two"}, nil)
	assert.ErrorContains(t, err, "result[1]")
}

func TestSchemaCaster_CastObject(t *testing.T) {
	c := SchemaCaster{}
	d := TypeDescriptor{Kind: KindObject, Fields: map[string]TypeDescriptor{
		"count": {Kind: KindInteger},
	}}

	v, err := c.Cast(d, map[string]any{"count": float64(2), "extra": "kept"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": int64(2), "extra": "kept"}, v)

	_, err = c.Cast(d, map[string]any{"count": "two"}, nil)
	assert.ErrorContains(t, err, "result.count")
}

func TestSchemaCaster_ApplyConstraints(t *testing.T) {
	c := SchemaCaster{}
	d := TypeDescriptor{Kind: KindInteger}
	cons := Constraints{"minimum": 0}

	v, err := c.ApplyConstraints(d, int64(7), cons)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = c.ApplyConstraints(d, int64(-5), cons)
	require.Error(t, err)
}

func TestSchemaCaster_ApplyConstraints_Enum(t *testing.T) {
	c := SchemaCaster{}
	d := TypeDescriptor{Kind: KindString}
	cons := Constraints{"enum": []string{"low", "high"}}

	_, err := c.ApplyConstraints(d, "low", cons)
	require.NoError(t, err)

	_, err = c.ApplyConstraints(d, "medium", cons)
	require.Error(t, err)
}

func TestSchemaCaster_ApplyConstraints_RequiredFields(t *testing.T) {
	c := SchemaCaster{}
	d := TypeDescriptor{Kind: KindObject, Fields: map[string]TypeDescriptor{
		"name": {Kind: KindString},
	}}
	cons := Constraints{"required": []string{"name"}}

	_, err := c.ApplyConstraints(d, map[string]any{"name": "ok"}, cons)
	require.NoError(t, err)

	_, err = c.ApplyConstraints(d, map[string]any{}, cons)
	require.Error(t, err)
}
