package sample

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specview/specview/pkg/render"
)

func uintPtr(u uint64) *uint64 { return &u }

func floatPtr(f float64) *float64 { return &f }

func TestValueDeterministic(t *testing.T) {
	gen := NewGenerator(7)
	node := &render.Node{
		Kind: render.KindObject,
		Properties: map[string]*render.Node{
			"id":    {Kind: render.KindString, Format: "uuid"},
			"count": {Kind: render.KindInteger, Minimum: floatPtr(1), Maximum: floatPtr(10)},
		},
	}
	first := gen.Value(node)
	second := gen.Value(node)
	assert.Equal(t, first, second)
}

func TestValuePrefersExampleAndEnum(t *testing.T) {
	gen := NewGenerator(1)

	withExample := &render.Node{Kind: render.KindString, Example: "documented"}
	assert.Equal(t, "documented", gen.Value(withExample))

	withEnum := &render.Node{Kind: render.KindString, Enum: []any{"first", "second"}}
	assert.Equal(t, "first", gen.Value(withEnum))
}

func TestValueRespectsConstraints(t *testing.T) {
	gen := NewGenerator(3)

	intNode := &render.Node{Kind: render.KindInteger, Minimum: floatPtr(5), Maximum: floatPtr(9)}
	n, ok := gen.Value(intNode).(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, n, 5)
	assert.LessOrEqual(t, n, 9)

	strNode := &render.Node{Kind: render.KindString, MaxLength: uintPtr(4)}
	v, ok := gen.Value(strNode).(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(v), 4)
}

func TestValueFormats(t *testing.T) {
	gen := NewGenerator(5)

	id, ok := gen.Value(&render.Node{Kind: render.KindString, Format: "uuid"}).(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	email, ok := gen.Value(&render.Node{Kind: render.KindString, Format: "email"}).(string)
	require.True(t, ok)
	assert.Contains(t, email, "@")
}

func TestValueArraysAndDepth(t *testing.T) {
	gen := NewGenerator(2)

	arr := &render.Node{
		Kind:  render.KindArray,
		Items: &render.Node{Kind: render.KindBoolean},
	}
	items, ok := gen.Value(arr).([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	// Self-similar nesting stops at the depth bound instead of recursing
	// forever.
	deep := &render.Node{Kind: render.KindObject}
	deep.Properties = map[string]*render.Node{"child": deep}
	assert.NotNil(t, gen.Value(deep))
}

func TestValueUnknown(t *testing.T) {
	gen := NewGenerator(1)
	assert.Nil(t, gen.Value(nil))
	assert.Nil(t, gen.Value(&render.Node{Kind: render.KindUnknown}))
}
