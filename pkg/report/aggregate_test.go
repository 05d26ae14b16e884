package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/runner"
	"digital.vasic.coccyx/pkg/suite"
)

func qi(group, test, label string) suite.Item {
	return suite.Item{
		GroupLabel: group,
		TestLabel:  test,
		Kind:       assertion.KindEqual,
		Label:      label,
	}
}

func res(group, test, label string, passed bool) runner.Result {
	return runner.Result{Item: qi(group, test, label), Passed: passed}
}

func TestQueueTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []suite.Item
		want  QueueStatus
	}{
		{
			name: "empty",
			want: QueueStatus{},
		},
		{
			name: "single group two tests",
			items: []suite.Item{
				qi("G", "T1", "a"),
				qi("G", "T1", "b"),
				qi("G", "T2", "c"),
			},
			want: QueueStatus{Assertions: 3, Tests: 2, Groups: 1},
		},
		{
			name: "ungrouped test counts as a group",
			items: []suite.Item{
				qi("", "T", "a"),
			},
			want: QueueStatus{Assertions: 1, Tests: 1, Groups: 1},
		},
		{
			name: "label reappearing is counted again",
			items: []suite.Item{
				qi("G1", "T", "a"),
				qi("G2", "T", "b"),
				qi("G1", "T", "c"),
			},
			want: QueueStatus{Assertions: 3, Tests: 1, Groups: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueueTotals(tt.items))
		})
	}
}

func TestFailedCounts_FirstFailureRule(t *testing.T) {
	results := []runner.Result{
		res("G", "T1", "a", false),
		res("G", "T1", "b", false),
		res("G", "T2", "c", true),
		res("G", "T2", "d", false),
		res("H", "T3", "e", false),
	}

	groups, tests := FailedCounts(results)
	assert.Equal(t, 2, groups)
	assert.Equal(t, 3, tests)
}

func TestFailedCounts_PassesBetweenFailuresDoNotReset(t *testing.T) {
	results := []runner.Result{
		res("G", "T", "a", false),
		res("H", "U", "b", true),
		res("G", "T", "c", false),
	}

	groups, tests := FailedCounts(results)
	assert.Equal(t, 1, groups)
	assert.Equal(t, 1, tests)
}

func TestRollup_OnePassOneFail(t *testing.T) {
	items := []suite.Item{qi("G", "T", "a1"), qi("G", "T", "a2")}
	outcome := &runner.Outcome{
		Results: []runner.Result{
			res("G", "T", "a1", true),
			res("G", "T", "a2", false),
		},
		AssertionsPassed: 1,
		AssertionsFailed: 1,
	}

	totals := Rollup(QueueTotals(items), outcome)

	assert.Equal(t, Totals{
		Groups:           1,
		GroupsPassed:     0,
		GroupsFailed:     1,
		Tests:            1,
		TestsPassed:      0,
		TestsFailed:      1,
		Assertions:       2,
		AssertionsPassed: 1,
		AssertionsFailed: 1,
	}, totals)
}

func TestRollup_AllPassed(t *testing.T) {
	items := []suite.Item{qi("G", "T1", "a"), qi("G", "T2", "b")}
	outcome := &runner.Outcome{
		Results: []runner.Result{
			res("G", "T1", "a", true),
			res("G", "T2", "b", true),
		},
		AssertionsPassed: 2,
	}

	totals := Rollup(QueueTotals(items), outcome)
	assert.Equal(t, 1, totals.GroupsPassed)
	assert.Equal(t, 2, totals.TestsPassed)
	assert.Equal(t, 0, totals.GroupsFailed)
	assert.Equal(t, 0, totals.TestsFailed)
}

func TestRollup_NilOutcome(t *testing.T) {
	status := QueueStatus{Assertions: 2, Tests: 1, Groups: 1}
	totals := Rollup(status, nil)
	assert.Equal(t, 2, totals.Assertions)
	assert.Zero(t, totals.AssertionsPassed)
	assert.Zero(t, totals.GroupsFailed)
}
