package monitor

import (
	"sync"
	"time"

	"digital.vasic.coccyx/pkg/report"
)

// Run phases shown on the dashboard.
const (
	PhaseBuilding  = "building"
	PhaseRunning   = "running"
	PhaseCompleted = "completed"
)

// TestState is the progress of one test on the dashboard.
type TestState struct {
	Group  string `json:"group"`
	Test   string `json:"test"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
	Status string `json:"status"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total     int     `json:"total"`
	Evaluated int     `json:"evaluated"`
	Passed    int     `json:"passed"`
	Failed    int     `json:"failed"`
	Pending   int     `json:"pending"`
	PassRate  float64 `json:"pass_rate"`
	Elapsed   string  `json:"elapsed"`
}

// DashboardSnapshot is a point-in-time copy of the dashboard.
type DashboardSnapshot struct {
	RunID     string                 `json:"run_id"`
	StartTime time.Time              `json:"start_time"`
	Phase     string                 `json:"phase"`
	Queue     report.QueueStatus     `json:"queue"`
	Tests     []TestState            `json:"tests"`
	Summary   DashboardSummary       `json:"summary"`
	Totals    *report.Totals         `json:"totals,omitempty"`
	Failures  []report.FailureRecord `json:"failures,omitempty"`
}

// Dashboard folds run events into a live view of the run.
type Dashboard struct {
	mu    sync.RWMutex
	data  DashboardSnapshot
	index map[[2]string]int
}

// NewDashboard creates an empty dashboard for runID.
func NewDashboard(runID string) *Dashboard {
	return &Dashboard{
		data: DashboardSnapshot{
			RunID:     runID,
			StartTime: time.Now(),
			Phase:     PhaseBuilding,
			Tests:     make([]TestState, 0),
		},
		index: make(map[[2]string]int),
	}
}

// UpdateFromEvent updates dashboard state from a run event.
func (d *Dashboard) UpdateFromEvent(event RunEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch event.Type {
	case EventBuilding:
		d.data.Phase = PhaseBuilding
	case EventQueueBuilt:
		d.data.Phase = PhaseRunning
		if event.Status != nil {
			d.data.Queue = *event.Status
		}
	case EventAssertion:
		if event.Assertion != nil {
			d.applyAssertion(event.Assertion)
		}
	case EventCompleted:
		d.data.Phase = PhaseCompleted
		if event.Summary != nil {
			totals := event.Summary.Totals
			d.data.Totals = &totals
			d.data.Failures = append(
				[]report.FailureRecord(nil), event.Summary.Failures...,
			)
		}
	}
	d.recalcSummary()
}

func (d *Dashboard) applyAssertion(a *AssertionEvent) {
	key := [2]string{a.Group, a.Test}
	i, ok := d.index[key]
	if !ok {
		i = len(d.data.Tests)
		d.index[key] = i
		d.data.Tests = append(d.data.Tests, TestState{
			Group: a.Group,
			Test:  a.Test,
		})
	}

	state := &d.data.Tests[i]
	if a.Passed {
		state.Passed++
	} else {
		state.Failed++
	}
	state.Status = "passed"
	if state.Failed > 0 {
		state.Status = "failed"
	}
}

func (d *Dashboard) recalcSummary() {
	s := DashboardSummary{Total: d.data.Queue.Assertions}
	for _, t := range d.data.Tests {
		s.Passed += t.Passed
		s.Failed += t.Failed
	}
	s.Evaluated = s.Passed + s.Failed
	if s.Total > s.Evaluated {
		s.Pending = s.Total - s.Evaluated
	}
	if s.Evaluated > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Evaluated) * 100
	}
	s.Elapsed = time.Since(d.data.StartTime).Round(time.Millisecond).String()
	d.data.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := d.data
	snap.Tests = append([]TestState(nil), d.data.Tests...)
	if snap.Tests == nil {
		snap.Tests = make([]TestState, 0)
	}
	return snap
}

// BuildDashboard creates a Dashboard by replaying all events
// collected so far.
func BuildDashboard(collector *EventCollector) *Dashboard {
	d := NewDashboard(collector.RunID())
	for _, event := range collector.Events() {
		d.UpdateFromEvent(event)
	}
	return d
}
