package report

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/runner"
)

func TestBuildSummary(t *testing.T) {
	failed := res("G", "T", "a2", false)
	failed.Actual = 2
	failed.Expectation = 3
	failed.Diff = "diff"

	outcome := &runner.Outcome{
		Results: []runner.Result{
			res("G", "T", "a1", true),
			failed,
		},
		AssertionsPassed: 1,
		AssertionsFailed: 1,
		Skipped:          1,
		ShortCircuited:   true,
		Duration:         time.Second,
	}
	status := QueueStatus{Assertions: 3, Tests: 1, Groups: 1}

	s := BuildSummary("run-x", status, outcome, nil)

	assert.Equal(t, "run-x", s.RunID)
	assert.False(t, s.GeneratedAt.IsZero())
	assert.Equal(t, 1, s.Skipped)
	assert.True(t, s.ShortCircuited)
	assert.Equal(t, time.Second, s.Duration)
	assert.Empty(t, s.Fault)
	assert.False(t, s.Passed())

	require.Len(t, s.Failures, 1)
	f := s.Failures[0]
	assert.Equal(t, "G", f.Group)
	assert.Equal(t, "T", f.Test)
	assert.Equal(t, "a2", f.Assertion)
	assert.Equal(t, assertion.KindEqual, f.Kind)
	assert.Equal(t, 2, f.Actual)
	assert.Equal(t, 3, f.Expected)
	assert.Equal(t, "diff", f.Diff)
}

func TestBuildSummary_Fault(t *testing.T) {
	s := BuildSummary("r", QueueStatus{Assertions: 1}, &runner.Outcome{Skipped: 1},
		errors.New("resolve value: boom"))

	assert.Equal(t, "resolve value: boom", s.Fault)
	assert.False(t, s.Passed())
	assert.NotNil(t, s.Failures)
}

func TestBuildSummary_NilOutcome(t *testing.T) {
	s := BuildSummary("r", QueueStatus{}, nil, nil)
	assert.True(t, s.Passed())
	assert.Empty(t, s.Failures)
}

func TestSummary_MetricsTotals(t *testing.T) {
	s := &Summary{
		Totals: Totals{
			Groups: 1, GroupsFailed: 1,
			Tests: 2, TestsPassed: 1, TestsFailed: 1,
			Assertions: 3, AssertionsPassed: 2, AssertionsFailed: 1,
		},
		Skipped:  0,
		Duration: 2 * time.Second,
	}

	m := s.MetricsTotals()
	assert.Equal(t, 1, m.GroupsFailed)
	assert.Equal(t, 1, m.TestsPassed)
	assert.Equal(t, 3, m.Assertions)
	assert.Equal(t, 2*time.Second, m.Duration)
}

func TestFailureRecord_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		want     string
	}{
		{"encodable", []any{1, "a"}, map[string]any{"k": true},
			`"actual":[1,"a"],"expected":{"k":true}`},
		{"nan", math.NaN(), math.NaN(), `"actual":"NaN","expected":"NaN"`},
		{"infinity inside slice", []float64{math.Inf(-1)}, nil,
			`"actual":"[-Inf]","expected":null`},
		{"func", func() {}, 1, `"expected":1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(FailureRecord{
				Group: "G", Test: "T", Assertion: "a",
				Kind:   assertion.KindEqual,
				Actual: tt.actual, Expected: tt.expected,
			})
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
			assert.Contains(t, string(data), `"kind":"assertEqual"`)
		})
	}
}

func TestGenerateJSON_NaNSummary(t *testing.T) {
	s := &Summary{RunID: "r", Failures: []FailureRecord{
		{Kind: assertion.KindEqual, Actual: math.NaN(), Expected: math.NaN()},
	}}
	data, err := GenerateJSON(s, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"actual":"NaN"`)
}
