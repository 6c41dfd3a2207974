package engine

import "sync/atomic"

// Clock is the monotonic logical clock that stamps every processed event.
//
// Events are numbered with a strictly increasing seq from this clock, never
// with wall-clock timestamps. This keeps the journal totally ordered and
// replayable regardless of how the underlying timers interleave.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though under the single-writer loop only one goroutine calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used when resuming a journal session at its last known position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
