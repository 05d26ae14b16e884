// Package suite provides the registration API: groups and tests
// declared by nesting callbacks, each staging assertions into a
// flat pending queue in call order.
package suite

import "digital.vasic.coccyx/pkg/assertion"

// Item is one queued assertion. Items are immutable once pushed
// onto a Queue.
type Item struct {
	// GroupLabel is the label of the innermost enclosing group,
	// or empty for a test declared outside any group.
	GroupLabel string `json:"group"`

	// TestLabel is the label of the enclosing test.
	TestLabel string `json:"test"`

	// Kind selects the predicate to apply.
	Kind assertion.Kind `json:"kind"`

	// Label describes this particular assertion.
	Label string `json:"label"`

	// Value is the actual value, possibly deferred.
	Value Value `json:"-"`

	// Expectation is compared against the resolved Value.
	Expectation any `json:"expected"`
}
