package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RegistersBuiltins(t *testing.T) {
	e := NewEngine()

	assert.True(t, e.HasEvaluator(KindEqual))
	assert.True(t, e.HasEvaluator(KindNotEqual))
	assert.False(t, e.HasEvaluator(Kind(99)))
}

func TestDefaultEngine_Evaluate_UnknownKind(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Kind(42), "a", "a")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion kind")
}

func TestDefaultEngine_Evaluate_EqualPass(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(KindEqual, []any{1, 2}, []any{1, 2})

	assert.True(t, r.Passed)
	assert.Equal(t, KindEqual, r.Kind)
	assert.Equal(t, []any{1, 2}, r.Actual)
	assert.Empty(t, r.Diff)
}

func TestDefaultEngine_Evaluate_EqualFailCarriesDiff(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(
		KindEqual,
		map[string]any{"x": 1},
		map[string]any{"x": 2},
	)

	require.False(t, r.Passed)
	assert.Equal(t, "values are not equal", r.Message)
	assert.NotEmpty(t, r.Diff)
	assert.Contains(t, r.Diff, "x")
}

func TestDefaultEngine_Evaluate_NotEqual(t *testing.T) {
	e := NewEngine()

	pass := e.Evaluate(KindNotEqual, 123, "abc")
	assert.True(t, pass.Passed)

	fail := e.Evaluate(KindNotEqual, "abc", "abc")
	assert.False(t, fail.Passed)
	assert.Equal(t, "values are equal", fail.Message)
	assert.Empty(t, fail.Diff)
}

func TestEvaluators_AreComplementary(t *testing.T) {
	pairs := [][2]any{
		{1, 1}, {1, 2}, {"a", "a"},
		{[]any{1}, []any{1}}, {[]any{1}, []any{2}},
	}
	for _, p := range pairs {
		assert.NotEqual(t, Equal(p[0], p[1]), NotEqual(p[0], p[1]))
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindEqual, KindNotEqual} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var decoded Kind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, k, decoded)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("assertGreater")))
}

func TestKind_Operator(t *testing.T) {
	assert.Equal(t, "===", KindEqual.Operator())
	assert.Equal(t, "!==", KindNotEqual.Operator())
	assert.Equal(t, "assertEqual", KindEqual.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestDiff_OrderedMap(t *testing.T) {
	a := NewOrderedMap()
	a.Set("k", "v1")
	b := NewOrderedMap()
	b.Set("k", "v2")

	d := Diff(a, b)
	assert.Contains(t, d, "v1")
	assert.Contains(t, d, "v2")
}
