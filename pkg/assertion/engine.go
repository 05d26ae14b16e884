package assertion

import "fmt"

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate applies the predicate selected by kind to the
	// resolved actual value and the expected value.
	Evaluate(kind Kind, actual, expected any) Result
}

// DefaultEngine is the standard Engine implementation. The set
// of evaluators is fixed at construction and never mutated, so
// it is safe for concurrent use.
type DefaultEngine struct {
	evaluators map[Kind]Evaluator
}

// NewEngine creates a DefaultEngine with the equal and not-equal
// evaluators registered.
func NewEngine() *DefaultEngine {
	return &DefaultEngine{
		evaluators: map[Kind]Evaluator{
			KindEqual:    Equal,
			KindNotEqual: NotEqual,
		},
	}
}

// Evaluate runs a single assertion against the provided values.
// Panics raised while inspecting the values propagate to the
// caller.
func (e *DefaultEngine) Evaluate(
	kind Kind,
	actual, expected any,
) Result {
	evaluator, exists := e.evaluators[kind]
	if !exists {
		return Result{
			Kind:     kind,
			Expected: expected,
			Actual:   actual,
			Passed:   false,
			Message: fmt.Sprintf(
				"unknown assertion kind: %d", int(kind),
			),
		}
	}

	passed := evaluator(actual, expected)

	result := Result{
		Kind:     kind,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
	}

	switch {
	case passed:
		result.Message = fmt.Sprintf(
			"%v %s %v", actual, kind.Operator(), expected,
		)
	case kind == KindEqual:
		result.Message = "values are not equal"
		result.Diff = Diff(expected, actual)
	default:
		result.Message = "values are equal"
	}

	return result
}

// HasEvaluator returns true if the given kind has a registered
// evaluator.
func (e *DefaultEngine) HasEvaluator(kind Kind) bool {
	_, exists := e.evaluators[kind]
	return exists
}
