package stabilizer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.coccyx/pkg/suite"
)

// scriptedSource returns one scripted length per Len call and
// repeats the last one once the script runs out.
type scriptedSource struct {
	mu       sync.Mutex
	lengths  []int
	calls    int
	sealedAt int
}

func (s *scriptedSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.lengths) {
		i = len(s.lengths) - 1
	}
	s.calls++
	return s.lengths[i]
}

func (s *scriptedSource) Sealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sealedAt > 0 && s.calls >= s.sealedAt
}

// manualTicker delivers n ticks immediately.
func manualTicker(n int) TickerFunc {
	return func(time.Duration) (<-chan time.Time, func()) {
		ch := make(chan time.Time, n)
		for i := 0; i < n; i++ {
			ch <- time.Time{}
		}
		return ch, func() {}
	}
}

func TestWait_EqualLengthOnConsecutiveTicks(t *testing.T) {
	src := &scriptedSource{lengths: []int{5, 5}}
	s := New(src, WithTicker(manualTicker(10)))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, res.Length)
	assert.Equal(t, 2, res.Ticks)
	assert.False(t, res.Sealed)
}

func TestWait_ChangingLengthsThenHold(t *testing.T) {
	src := &scriptedSource{lengths: []int{1, 3, 6, 10, 10}}
	s := New(src, WithTicker(manualTicker(20)))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, res.Length)
	assert.Equal(t, 5, res.Ticks)
}

func TestWait_EmptyQueueStableOnFirstTick(t *testing.T) {
	src := &scriptedSource{lengths: []int{0}}
	s := New(src, WithTicker(manualTicker(3)))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Length)
	assert.Equal(t, 1, res.Ticks)
}

func TestWait_SealEndsWaitImmediately(t *testing.T) {
	src := &scriptedSource{lengths: []int{2, 4, 8}, sealedAt: 2}
	s := New(src, WithTicker(manualTicker(10)))

	res, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Sealed)
	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, 4, res.Length)
}

func TestWait_ContextCancelled(t *testing.T) {
	src := &scriptedSource{lengths: []int{1, 2, 3, 4}}
	s := New(src, WithTicker(manualTicker(0)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_StopsTicker(t *testing.T) {
	stopped := false
	ticker := func(time.Duration) (<-chan time.Time, func()) {
		ch := make(chan time.Time, 2)
		ch <- time.Time{}
		ch <- time.Time{}
		return ch, func() { stopped = true }
	}

	src := &scriptedSource{lengths: []int{0}}
	_, err := New(src, WithTicker(ticker)).Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, stopped)
}

func TestWait_RealQueueWithRealTicker(t *testing.T) {
	s := suite.New()
	s.Group("G", func(g *suite.Group) {
		g.Test("T", func(a *suite.Assert) {
			a.Equal(1, 1, "one")
			a.Equal(2, 2, "two")
		})
	})

	st := New(s.Queue(), WithInterval(5*time.Millisecond))
	res, err := st.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Length)
	assert.Equal(t, 2, res.Ticks)
}

func TestWithInterval_IgnoresNonPositive(t *testing.T) {
	s := New(&scriptedSource{lengths: []int{0}}, WithInterval(0))
	assert.Equal(t, DefaultInterval, s.interval)
}
