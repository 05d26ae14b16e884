// Package sample holds the suite bundled with the coccyx binary.
// It exercises every kind of value the comparator understands.
package sample

import (
	"math"
	"strings"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/suite"
)

type point struct {
	X, Y int
}

// Register declares the bundled groups on s. With failures set,
// a group of deliberately failing assertions is added.
func Register(s *suite.Suite, failures bool) {
	s.Group("Scalars", func(g *suite.Group) {
		g.Test("numbers compare by identity", func(a *suite.Assert) {
			a.Equal(1+1, 2, "int addition")
			a.Equal(0.5+0.25, 0.75, "float addition")
			a.NotEqual(1, 1.0, "int is not float")
			a.NotEqual(math.NaN(), math.NaN(), "NaN is not NaN")
		})
		g.Test("strings and booleans", func(a *suite.Assert) {
			a.Equal(strings.ToUpper("coccyx"), "COCCYX", "upper case")
			a.Equal(true, !false, "negation")
			a.NotEqual("a", "b", "different strings")
		})
		g.Test("nil", func(a *suite.Assert) {
			a.Equal(nil, nil, "nil equals nil")
			a.NotEqual(nil, 0, "nil is not zero")
		})
	})

	s.Group("Composites", func(g *suite.Group) {
		g.Test("arrays", func(a *suite.Assert) {
			a.Equal([]any{1, "two", 3.0}, []any{1, "two", 3.0}, "same elements")
			a.NotEqual([]any{1, 2}, []any{2, 1}, "order matters")
			a.Equal([]any{[]any{1}, []any{2}}, []any{[]any{1}, []any{2}}, "nested arrays")
		})
		g.Test("keyed structures", func(a *suite.Assert) {
			a.Equal(
				map[string]any{"a": 1, "b": []any{2, 3}},
				map[string]any{"b": []any{2, 3}, "a": 1},
				"key order is irrelevant",
			)
			a.NotEqual(
				map[string]any{"a": 1},
				map[string]any{"a": 1, "b": 2},
				"extra key",
			)
			a.Equal(point{1, 2}, map[string]any{"X": 1, "Y": 2}, "struct as keyed structure")
		})
		g.Test("ordered maps", func(a *suite.Assert) {
			om := assertion.NewOrderedMap()
			om.Set("name", "coccyx")
			om.Set("tags", []any{"test", "runner"})
			a.Equal(om, map[string]any{
				"tags": []any{"test", "runner"},
				"name": "coccyx",
			}, "ordered map equals map")
		})
		g.Test("composite never equals scalar", func(a *suite.Assert) {
			a.NotEqual([]any{}, 0, "empty array is not zero")
			a.NotEqual(map[string]any{}, nil, "empty map is not nil")
		})
	})

	s.Group("Deferred values", func(g *suite.Group) {
		counter := 0
		g.Test("producers run at evaluation time", func(a *suite.Assert) {
			counter = 10
			a.Equal(func() any { return counter }, 20, "sees later mutation")
			counter = 20
		})
		g.Group("Nested", func(g *suite.Group) {
			g.Test("nested group label", func(a *suite.Assert) {
				a.Equal(suite.Deferred(func() any {
					return strings.Repeat("ab", 2)
				}), "abab", "deferred string")
			})
		})
	})

	if !failures {
		return
	}

	s.Group("Failures", func(g *suite.Group) {
		g.Test("mismatches", func(a *suite.Assert) {
			a.Equal(1, 2, "different numbers")
			a.Equal([]any{1, 2, 3}, []any{1, 2, 4}, "different arrays")
			a.NotEqual("same", "same", "identical strings")
		})
	})
}
