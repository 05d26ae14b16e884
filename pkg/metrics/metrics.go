// Package metrics records run statistics. The Prometheus
// collector exposes them for scraping or as a textfile.
package metrics

import "time"

// Recorder defines the interface for recording run metrics.
type Recorder interface {
	// RecordAssertion records one evaluated assertion.
	RecordAssertion(kind string, passed bool)
	// SetQueueLength records the observed pending-queue length.
	SetQueueLength(n int)
	// RecordRun records the final totals of a run.
	RecordRun(totals RunTotals)
}

// RunTotals are the three-level tallies of a finished run.
type RunTotals struct {
	Groups           int
	GroupsPassed     int
	GroupsFailed     int
	Tests            int
	TestsPassed      int
	TestsFailed      int
	Assertions       int
	AssertionsPassed int
	AssertionsFailed int
	Skipped          int
	Duration         time.Duration
}

// NoopRecorder is a no-op implementation of Recorder used when
// metrics collection is disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordAssertion(_ string, _ bool) {}
func (NoopRecorder) SetQueueLength(_ int)             {}
func (NoopRecorder) RecordRun(_ RunTotals)            {}
