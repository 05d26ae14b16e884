package assertion

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X int
	Y int
}

type labelled struct {
	Name  string
	Point *point
	tag   string
}

func TestEquals_Scalars(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same int", 1, 1, true},
		{"different int", 1, 2, false},
		{"same string", "abc", "abc", true},
		{"different string", "abc", "abd", false},
		{"int vs float", 1, 1.0, false},
		{"int vs string", 1, "1", false},
		{"both nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"true vs true", true, true, true},
		{"true vs false", true, false, false},
		{"nan", math.NaN(), math.NaN(), false},
		{"inf", math.Inf(1), math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals(tt.a, tt.b))
			assert.Equal(t, tt.want, Equals(tt.b, tt.a))
		})
	}
}

func TestEquals_Arrays(t *testing.T) {
	assert.True(t, Equals(
		[]any{1, []any{2, 3}}, []any{1, []any{2, 3}},
	))
	assert.False(t, Equals(
		[]any{1, []any{2, 3}}, []any{1, []any{2, 4}},
	))
	assert.False(t, Equals([]any{1, 2}, []any{1, 2, 3}))
	assert.False(t, Equals([]any{1, 2, 3}, []any{1, 2}))
	assert.True(t, Equals([]int{1, 2}, [2]int{1, 2}))
	assert.True(t, Equals([]any{}, []any{}))
}

func TestEquals_CompositeVersusScalar(t *testing.T) {
	assert.False(t, Equals([]any{1}, 1))
	assert.False(t, Equals(1, []any{1}))
	assert.False(t, Equals(map[string]any{}, nil))
	assert.False(t, Equals([]any{[]any{1}}, []any{1}))
	assert.False(t, Equals(
		map[string]any{"x": map[string]any{"y": 1}},
		map[string]any{"x": 1},
	))
}

func TestEquals_KeyedStructures(t *testing.T) {
	assert.True(t, Equals(
		map[string]any{"x": 1, "y": map[string]any{"z": 2}},
		map[string]any{"x": 1, "y": map[string]any{"z": 2}},
	))
	assert.False(t, Equals(
		map[string]any{"x": 1},
		map[string]any{"x": 1, "y": 2},
	))
	assert.False(t, Equals(
		map[string]any{"x": 1, "y": 2},
		map[string]any{"x": 1},
	))
	assert.False(t, Equals(
		map[string]any{"x": 1},
		map[string]any{"x": 2},
	))
}

func TestEquals_NestedExtraKeysAreDetected(t *testing.T) {
	a := []any{map[string]any{"x": 1}}
	b := []any{map[string]any{"x": 1, "y": 2}}

	assert.False(t, Equals(a, b))
	assert.False(t, Equals(b, a))
}

func TestEquals_OrderedMap(t *testing.T) {
	a := NewOrderedMap()
	a.Set("x", 1)
	a.Set("y", []any{1, 2})

	b := NewOrderedMap()
	b.Set("y", []any{1, 2})
	b.Set("x", 1)

	assert.True(t, Equals(a, b))
	assert.True(t, Equals(a, map[string]any{
		"x": 1, "y": []any{1, 2},
	}))

	b.Set("z", true)
	assert.False(t, Equals(a, b))
	assert.False(t, Equals(b, a))
}

func TestEquals_Structs(t *testing.T) {
	assert.True(t, Equals(point{1, 2}, point{1, 2}))
	assert.False(t, Equals(point{1, 2}, point{1, 3}))
	assert.True(t, Equals(&point{1, 2}, point{1, 2}))
	assert.True(t, Equals(
		point{1, 2}, map[string]any{"X": 1, "Y": 2},
	))
	assert.True(t, Equals(
		labelled{Name: "a", Point: &point{1, 2}, tag: "left"},
		labelled{Name: "a", Point: &point{1, 2}, tag: "right"},
	))
}

func TestEquals_MixedArrayAndKeyed(t *testing.T) {
	assert.True(t, Equals([]any{}, map[string]any{}))
	assert.True(t, Equals([]any{"a"}, map[string]any{"0": "a"}))
	assert.False(t, Equals([]any{"a"}, map[string]any{"1": "a"}))
	assert.False(t, Equals([]any{"a"}, map[string]any{"00": "a"}))
}

func TestEquals_OpaqueStructsCompareByIdentity(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	later := now.Add(time.Second)

	assert.True(t, Equals(now, now))
	assert.False(t, Equals(now, later))
}

func TestEquals_Funcs(t *testing.T) {
	f := func() {}
	assert.True(t, Equals(f, f))
	assert.False(t, Equals(f, nil))
}

func TestEquals_Reflexive(t *testing.T) {
	values := []any{
		0, "", "text", 3.14, true, nil,
		[]any{1, "two", []any{3}},
		map[string]any{"a": []any{1, map[string]any{"b": nil}}},
		point{4, 5},
		map[int]any{1: "a", 2: []any{3}},
		map[any]any{1: "int", "1": "string"},
		opaque{xs: []int{1}},
		opaque{xs: []int{1}, tag: []any{"x"}},
	}

	for _, v := range values {
		assert.True(t, Equals(v, v), "value %#v", v)
	}
}

type opaque struct {
	xs  []int
	tag any
}

func TestEquals_NonStringKeyedMaps(t *testing.T) {
	assert.True(t, Equals(map[int]any{1: "a", 2: "b"}, map[int]any{2: "b", 1: "a"}))
	assert.False(t, Equals(map[int]any{1: "a"}, map[int]any{1: "b"}))
	assert.False(t, Equals(map[int]any{1: "a"}, map[int]any{1: "a", 2: "b"}))
	assert.False(t, Equals(map[int]any{1: 1}, map[int]any{1: 1.0}))

	// Keys of different types are matched by their rendered name.
	assert.True(t, Equals(map[int]any{0: "x"}, map[string]any{"0": "x"}))
	assert.True(t, Equals(map[int]any{0: "x"}, []any{"x"}))
}

func TestEquals_IncomparableOpaqueStructs(t *testing.T) {
	assert.True(t, Equals(opaque{xs: []int{1, 2}}, opaque{xs: []int{1, 2}}))
	assert.False(t, Equals(opaque{xs: []int{1, 2}}, opaque{xs: []int{2, 1}}))
	assert.False(t, Equals(opaque{tag: []any{math.NaN()}}, opaque{tag: []any{math.NaN()}}))
	assert.False(t, Equals(opaque{}, []any{}))
}

func TestEquals_NaNInsideComposite(t *testing.T) {
	assert.False(t, Equals(
		[]any{math.NaN()}, []any{math.NaN()},
	))
	assert.False(t, Equals(
		map[string]any{"n": math.NaN()},
		map[string]any{"n": math.NaN()},
	))
}
