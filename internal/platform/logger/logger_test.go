package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "error", Error.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestZapLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := Wrap(zap.New(core)).With(map[string]any{"request_id": "r-1", "": "skipped"})

	l.Warn("store down", map[string]any{"err": errors.New("dial refused"), "attempt": 1})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "store down", entries[0].Message)
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.Equal(t, "dial refused", ctx["err"])
	assert.EqualValues(t, 1, ctx["attempt"])
	_, hasEmpty := ctx[""]
	assert.False(t, hasEmpty)
}

func TestNew_BuildsBothFormats(t *testing.T) {
	l, err := New(Options{Level: Info, Format: FormatJSON, App: "avacc"})
	require.NoError(t, err)
	require.NotNil(t, l)

	l, err = New(Options{Level: Debug, Format: FormatText})
	require.NoError(t, err)
	require.NotNil(t, l)
}
