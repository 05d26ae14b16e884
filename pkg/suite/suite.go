package suite

import (
	"sync/atomic"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/logging"
)

// Suite is the registration entry point. Groups and tests are
// declared synchronously; each assertion staged through an
// Assert handle is pushed onto the suite's queue stamped with
// the labels of its enclosing scopes.
type Suite struct {
	queue   *Queue
	logger  logging.Logger
	dropped atomic.Int64
}

// Option configures a Suite.
type Option func(*Suite)

// WithLogger sets the logger used to report dropped
// registrations.
func WithLogger(logger logging.Logger) Option {
	return func(s *Suite) {
		s.logger = logger
	}
}

// WithQueue makes the suite push onto an existing queue.
func WithQueue(q *Queue) Option {
	return func(s *Suite) {
		s.queue = q
	}
}

// New creates a Suite with an empty queue.
func New(opts ...Option) *Suite {
	s := &Suite{
		queue:  NewQueue(),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Queue returns the pending queue filled by this suite.
func (s *Suite) Queue() *Queue {
	return s.queue
}

// Dropped returns the number of assertions that were rejected
// because they were staged after the queue was sealed.
func (s *Suite) Dropped() int {
	return int(s.dropped.Load())
}

// Group declares a named group and invokes body with it. Groups
// only provide label context; they queue nothing themselves.
func (s *Suite) Group(label string, body func(g *Group)) {
	body(&Group{suite: s, label: label})
}

// Test declares a test outside of any group. Its assertions
// carry an empty group label.
func (s *Suite) Test(label string, body func(a *Assert)) {
	body(&Assert{suite: s, test: label})
}

// Group is the scope handed to a group body.
type Group struct {
	suite *Suite
	label string
}

// Label returns the group's declared name.
func (g *Group) Label() string {
	return g.label
}

// Group declares a nested group. Assertions inside it carry the
// nested group's label.
func (g *Group) Group(label string, body func(g *Group)) {
	g.suite.Group(label, body)
}

// Test declares a test within this group.
func (g *Group) Test(label string, body func(a *Assert)) {
	body(&Assert{suite: g.suite, group: g.label, test: label})
}

// Assert is the staging handle injected into a test body. Its
// methods queue assertions; nothing is evaluated until the run.
type Assert struct {
	suite *Suite
	group string
	test  string
}

// Equal stages an assertion that value equals expectation.
// value may be a literal, a Value, or a func() any producer.
func (a *Assert) Equal(value, expectation any, label string) {
	a.stage(assertion.KindEqual, value, expectation, label)
}

// NotEqual stages an assertion that value does not equal
// expectation.
func (a *Assert) NotEqual(value, expectation any, label string) {
	a.stage(assertion.KindNotEqual, value, expectation, label)
}

func (a *Assert) stage(
	kind assertion.Kind,
	value, expectation any,
	label string,
) {
	item := Item{
		GroupLabel:  a.group,
		TestLabel:   a.test,
		Kind:        kind,
		Label:       label,
		Value:       ValueOf(value),
		Expectation: expectation,
	}

	if err := a.suite.queue.Push(item); err != nil {
		a.suite.dropped.Add(1)
		a.suite.logger.Warn("assertion_dropped", logging.AssertionFields(
			a.group, a.test, label, logging.ErrorField(err),
		)...)
	}
}
