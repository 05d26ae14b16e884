package assertion

// Evaluator is a pure predicate over an already-resolved actual
// value and the expected value.
type Evaluator func(actual, expected any) bool

// Equal passes when actual and expected are structurally equal.
func Equal(actual, expected any) bool {
	return Equals(actual, expected)
}

// NotEqual passes when actual and expected are not structurally
// equal.
func NotEqual(actual, expected any) bool {
	return !Equals(actual, expected)
}
