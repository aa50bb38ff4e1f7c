package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/specview/specview/pkg/errdefs"
)

func TestStringParamCoercesNumbers(t *testing.T) {
	args := map[string]any{
		"status_code": float64(500), // JSON numbers decode as float64
		"plain":       "404",
		"fraction":    2.5,
	}
	assert.Equal(t, "500", stringParam(args, "status_code"))
	assert.Equal(t, "404", stringParam(args, "plain"))
	assert.Equal(t, "2.5", stringParam(args, "fraction"))
	assert.Equal(t, "", stringParam(args, "missing"))
	assert.Equal(t, "", stringParam(map[string]any{"k": nil}, "k"))
}

func TestIntParam(t *testing.T) {
	args := map[string]any{
		"whole":    float64(7),
		"fraction": 1.5,
		"bogus":    "not a number",
	}

	n, err := intParam(args, "whole", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = intParam(args, "missing", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = intParam(args, "fraction", 0)
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeInvalidParameter))

	_, err = intParam(args, "bogus", 0)
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeInvalidParameter))
}

func TestBoolParam(t *testing.T) {
	args := map[string]any{"yes": true, "no": false, "weird": struct{}{}}
	assert.True(t, boolParam(args, "yes"))
	assert.False(t, boolParam(args, "no"))
	assert.False(t, boolParam(args, "missing"))
	assert.False(t, boolParam(args, "weird"))
}

func TestStringSetParam(t *testing.T) {
	args := map[string]any{"fields": []any{"id", "path"}}
	set := stringSetParam(args, "fields")
	assert.True(t, set["id"])
	assert.True(t, set["path"])
	assert.False(t, set["summary"])
	assert.Nil(t, stringSetParam(args, "missing"))
}

func TestValidateArgs(t *testing.T) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaPagedOperationRef))
	require.NoError(t, err)

	assert.NoError(t, validateArgs(compiled, []byte(`{}`)))
	assert.NoError(t, validateArgs(compiled, []byte(`{"operation_id": "x", "chunk_size": 10}`)))

	err = validateArgs(compiled, []byte(`{"chunk_size": 0}`))
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeInvalidParameter))

	err = validateArgs(compiled, []byte(`{"index": -1}`))
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeInvalidParameter))

	err = validateArgs(compiled, []byte(`{"unexpected": true}`))
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeInvalidParameter))
}
