// Package stabilizer detects the end of registration by polling
// the pending queue: once two consecutive polls observe the same
// length, registration is considered complete.
//
// Polling is a heuristic. A registration delayed by a full poll
// period after the last observed change is missed if it lands
// after two equal polls. Sealing the queue is the explicit
// alternative and ends the wait on the next tick.
package stabilizer

import (
	"context"
	"time"

	"digital.vasic.coccyx/pkg/logging"
	"digital.vasic.coccyx/pkg/metrics"
)

// DefaultInterval is the poll period used when none is given.
const DefaultInterval = time.Second

// Source is the queue being watched.
type Source interface {
	Len() int
	Sealed() bool
}

// Result describes how the queue stabilized.
type Result struct {
	// Length is the queue length when it was declared stable.
	Length int

	// Ticks is the number of polls performed.
	Ticks int

	// Sealed is true when an explicit seal ended the wait.
	Sealed bool
}

// TickerFunc starts a ticker and returns its channel and a stop
// function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Stabilizer polls a Source until its length stops changing.
type Stabilizer struct {
	source   Source
	interval time.Duration
	ticker   TickerFunc
	logger   logging.Logger
	metrics  metrics.Recorder
}

// Option configures a Stabilizer.
type Option func(*Stabilizer)

// WithInterval sets the poll period.
func WithInterval(d time.Duration) Option {
	return func(s *Stabilizer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTicker replaces the time source, mainly for tests. A nil
// TickerFunc keeps the real ticker.
func WithTicker(t TickerFunc) Option {
	return func(s *Stabilizer) {
		if t != nil {
			s.ticker = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Stabilizer) {
		s.logger = l
	}
}

// WithMetrics sets the recorder that receives each observed
// queue length.
func WithMetrics(m metrics.Recorder) Option {
	return func(s *Stabilizer) {
		s.metrics = m
	}
}

// New creates a Stabilizer watching source.
func New(source Source, opts ...Option) *Stabilizer {
	s := &Stabilizer{
		source:   source,
		interval: DefaultInterval,
		ticker:   realTicker,
		logger:   logging.NullLogger{},
		metrics:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until the queue is stable, sealed, or ctx is done.
// The previous length starts at zero, so an empty queue is
// stable on the first tick. Polling stops before Wait returns.
func (s *Stabilizer) Wait(ctx context.Context) (Result, error) {
	ticks, stop := s.ticker(s.interval)
	defer stop()

	var res Result
	last := 0

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-ticks:
		}

		res.Ticks++
		length := s.source.Len()
		s.metrics.SetQueueLength(length)

		if s.source.Sealed() {
			res.Length = length
			res.Sealed = true
			s.logger.Info("queue_sealed",
				logging.IntField("length", length),
				logging.IntField("ticks", res.Ticks),
			)
			return res, nil
		}

		if length == last {
			res.Length = length
			s.logger.Info("queue_stable",
				logging.IntField("length", length),
				logging.IntField("ticks", res.Ticks),
			)
			return res, nil
		}

		s.logger.Debug("queue_growing",
			logging.IntField("previous", last),
			logging.IntField("length", length),
		)
		last = length
	}
}
