// Package monitor streams run progress to browsers over a
// WebSocket and serves a JSON snapshot of the current run.
package monitor

import (
	"time"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/report"
)

// EventType represents the type of run event.
type EventType string

const (
	EventBuilding   EventType = report.EventBuilding
	EventQueueBuilt EventType = report.EventQueueBuilt
	EventAssertion  EventType = report.EventAssertion
	EventCompleted  EventType = report.EventCompleted
)

// AssertionEvent describes one evaluated assertion.
type AssertionEvent struct {
	Index   int            `json:"index"`
	Group   string         `json:"group"`
	Test    string         `json:"test"`
	Label   string         `json:"label"`
	Kind    assertion.Kind `json:"kind"`
	Passed  bool           `json:"passed"`
	Message string         `json:"message,omitempty"`
}

// RunEvent represents a lifecycle event during a run.
type RunEvent struct {
	Type      EventType           `json:"type"`
	RunID     string              `json:"run_id"`
	Timestamp time.Time           `json:"timestamp"`
	Status    *report.QueueStatus `json:"status,omitempty"`
	Assertion *AssertionEvent     `json:"assertion,omitempty"`
	Summary   *report.Summary     `json:"summary,omitempty"`
}
