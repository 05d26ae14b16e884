package monitor

import (
	"sync"
	"time"

	"digital.vasic.coccyx/pkg/report"
	"digital.vasic.coccyx/pkg/runner"
)

// EventCollector turns presenter and runner callbacks into run
// events and fans them out to handlers.
type EventCollector struct {
	mu       sync.RWMutex
	runID    string
	events   []RunEvent
	handlers []func(RunEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate assertion counts.
type CollectorStats struct {
	Evaluated int       `json:"evaluated"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	StartTime time.Time `json:"start_time"`
}

var (
	_ report.Presenter = (*EventCollector)(nil)
	_ runner.Observer  = (*EventCollector)(nil)
)

// NewEventCollector creates a collector stamping events with
// runID.
func NewEventCollector(runID string) *EventCollector {
	return &EventCollector{
		runID:  runID,
		events: make([]RunEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// RunID returns the identifier stamped on every event.
func (c *EventCollector) RunID() string {
	return c.runID
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(RunEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event RunEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = c.runID
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if event.Type == EventAssertion && event.Assertion != nil {
		c.stats.Evaluated++
		if event.Assertion.Passed {
			c.stats.Passed++
		} else {
			c.stats.Failed++
		}
	}
	handlers := make([]func(RunEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

func (c *EventCollector) Building() error {
	c.Emit(RunEvent{Type: EventBuilding})
	return nil
}

func (c *EventCollector) QueueBuilt(status report.QueueStatus) error {
	c.Emit(RunEvent{Type: EventQueueBuilt, Status: &status})
	return nil
}

func (c *EventCollector) Completed(summary *report.Summary) error {
	c.Emit(RunEvent{Type: EventCompleted, Summary: summary})
	return nil
}

// AssertionEvaluated implements runner.Observer.
func (c *EventCollector) AssertionEvaluated(index int, result runner.Result) {
	c.Emit(RunEvent{
		Type: EventAssertion,
		Assertion: &AssertionEvent{
			Index:   index,
			Group:   result.GroupLabel,
			Test:    result.TestLabel,
			Label:   result.Label,
			Kind:    result.Kind,
			Passed:  result.Passed,
			Message: result.Message,
		},
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []RunEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]RunEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
