package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"digital.vasic.coccyx/pkg/assertion"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(
		t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func mixedSummary() *Summary {
	return &Summary{
		RunID: "run-1",
		Totals: Totals{
			Groups:           2,
			GroupsFailed:     2,
			Tests:            3,
			TestsPassed:      1,
			TestsFailed:      2,
			Assertions:       4,
			AssertionsPassed: 2,
			AssertionsFailed: 2,
		},
		Failures: []FailureRecord{
			{
				Group:     "G1",
				Test:      "T1",
				Assertion: "two",
				Kind:      assertion.KindEqual,
				Actual:    2,
				Expected:  3,
			},
			{
				Group:     "G2",
				Test:      "T3",
				Assertion: "four",
				Kind:      assertion.KindEqual,
				Actual:    []any{1, 2},
				Expected:  []any{1, 3},
			},
		},
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "tests", pluralize("test", 0))
	assert.Equal(t, "test", pluralize("test", 1))
	assert.Equal(t, "tests", pluralize("test", 2))
}

func TestQueueBuiltText_Golden(t *testing.T) {
	g := newGoldie(t)
	status := QueueStatus{Assertions: 4, Tests: 3, Groups: 2}
	g.Assert(t, "queue_built", []byte(QueueBuiltText(status)+"\n"))
}

func TestCompletedText_Golden(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "completed_mixed", []byte(CompletedText(mixedSummary())+"\n"))
}

func TestSummaryLine_Variants(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		want   string
	}{
		{
			name: "nothing failed",
			totals: Totals{
				AssertionsPassed: 3, TestsPassed: 2, GroupsPassed: 1,
			},
			want: "3 assertions/2 tests/1 group passed, 0 tests failed.",
		},
		{
			name: "nothing passed",
			totals: Totals{
				AssertionsFailed: 1, TestsFailed: 1, GroupsFailed: 1,
			},
			want: "0 tests passed, 1 assertion/1 test/1 group failed.",
		},
		{
			name: "mixed",
			totals: Totals{
				AssertionsPassed: 1,
				AssertionsFailed: 1,
				TestsFailed:      1,
				GroupsFailed:     1,
			},
			want: "1 assertion/0 tests/0 groups passed, " +
				"1 assertion/1 test/1 group failed.",
		},
		{
			name: "empty run",
			want: "0 assertions/0 tests/0 groups passed, 0 tests failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummaryLine(tt.totals))
		})
	}
}

func TestFailureLine_NotEqual(t *testing.T) {
	line := FailureLine(FailureRecord{
		Group:     "G",
		Test:      "T",
		Assertion: "differs",
		Kind:      assertion.KindNotEqual,
		Actual:    "x",
		Expected:  "x",
	})
	assert.Equal(t,
		`Assertion "differs" (assertNotEqual) in test "T", group "G" failed! Expected "x" !== "x".`,
		line,
	)
}

func TestCompletedText_Notes(t *testing.T) {
	s := &Summary{
		Totals:         Totals{AssertionsFailed: 1, TestsFailed: 1, GroupsFailed: 1},
		Skipped:        2,
		ShortCircuited: true,
		Fault:          "boom",
	}
	text := CompletedText(s)
	assert.Contains(t, text, "Run aborted: boom")
	assert.Contains(t, text, "Stopped at the first failure.")
	assert.Contains(t, text, "2 assertions not run.")
}

func TestFormatValue(t *testing.T) {
	om := assertion.NewOrderedMap()
	om.Set("b", 1)
	om.Set("a", 2)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "nil"},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"slice", []any{1, "a"}, `[1,"a"]`},
		{"map", map[string]any{"k": 1}, `{"k":1}`},
		{"ordered map keeps insertion order", om, `{"b":1,"a":2}`},
		{"nil ordered map", (*assertion.OrderedMap)(nil), "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}
