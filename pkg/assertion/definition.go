// Package assertion provides the comparison core of the runner:
// a deep structural equality comparator and the two assertion
// evaluators (equal, not equal) built on top of it.
package assertion

import "fmt"

// Kind identifies which predicate an assertion applies.
type Kind int

const (
	// KindEqual passes when actual and expected are deeply
	// equal.
	KindEqual Kind = iota + 1
	// KindNotEqual passes when actual and expected differ.
	KindNotEqual
)

// String returns the evaluator name shown in failure reports.
func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "assertEqual"
	case KindNotEqual:
		return "assertNotEqual"
	default:
		return "unknown"
	}
}

// Operator returns the comparison symbol used when rendering a
// failed assertion.
func (k Kind) Operator() string {
	switch k {
	case KindEqual:
		return "==="
	case KindNotEqual:
		return "!=="
	default:
		return "?"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind previously encoded by
// MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "assertEqual":
		*k = KindEqual
	case "assertNotEqual":
		*k = KindNotEqual
	default:
		return fmt.Errorf("unknown assertion kind: %s", text)
	}
	return nil
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Kind is the predicate that was applied.
	Kind Kind `json:"kind"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Actual is the resolved value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Diff is a structural diff of expected versus actual,
	// populated for failed equality assertions only.
	Diff string `json:"diff,omitempty"`
}
