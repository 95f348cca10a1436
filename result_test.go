package complety

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Success(t *testing.T) {
	v, err := Normalize(Completed{Value: 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Normalize(&Completed{Value: "ok"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestNormalize_RunErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := Normalize(nil, boom)
	assert.Same(t, boom, err)

	// A run error wins even over a success-shaped outcome.
	_, err = Normalize(Completed{Value: 1}, boom)
	assert.Same(t, boom, err)
}

func TestNormalize_FaultedEnvelope(t *testing.T) {
	boom := errors.New("boom")
	_, err := Normalize(Faulted{Err: boom}, nil)
	assert.Same(t, boom, err)

	_, err = Normalize(&Faulted{Err: boom}, nil)
	assert.Same(t, boom, err)
}

func TestNormalize_ErrorOutcome(t *testing.T) {
	boom := errors.New("boom")
	_, err := Normalize(boom, nil)
	assert.Same(t, boom, err)
}

func TestNormalize_UnknownShapes(t *testing.T) {
	for _, outcome := range []any{
		nil,
		42,
		"wat",
		struct{ X int }{X: 1},
		map[string]any{"ok": true},
		[]byte("raw"),
		Faulted{},           // error envelope with no error inside
		(*Completed)(nil),   // typed nil
		(*Faulted)(nil),     // typed nil
	} {
		v, err := Normalize(outcome, nil)
		require.Error(t, err, "outcome %#v", outcome)
		assert.Nil(t, v)
		assert.ErrorIs(t, err, ErrUnexpectedOutcome)

		var uo *UnexpectedOutcomeError
		require.ErrorAs(t, err, &uo)
		assert.Equal(t, outcome, uo.Raw)
	}
}
