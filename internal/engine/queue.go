package engine

import (
	"sync"

	"github.com/tenuto/segno/internal/state"
)

// EventType distinguishes the kinds of work the loop processes.
type EventType int

const (
	// EventStateChange signals that some record's content changed. It
	// carries no payload; the dispatcher re-reads the full directory.
	EventStateChange EventType = iota + 1
	// EventMembership signals clients joining or leaving.
	EventMembership
	// EventTick is the periodic housekeeping tick.
	EventTick
	// EventTask carries a due scheduled continuation back onto the loop.
	EventTask
)

// Event is one unit of work for the engine loop.
type Event struct {
	Type    EventType
	Added   []state.ClientID // membership only
	Removed []state.ClientID // membership only
	Task    *ScheduledTask   // task only
}

// eventQueue is a thread-safe FIFO queue for events.
//
// The queue is unbounded: a burst of directory notifications or expiring
// timers must never block the notifier.
//
// Thread-safety is provided for external enqueuing (directory callbacks,
// wall timers) while the Run loop dequeues. The queue uses a channel for
// signaling to enable context-aware waiting in the Run loop.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{} // buffered size 1, coalesces signals
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an event to the back of the queue.
// Thread-safe. Returns false if the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.events = append(q.events, e)

	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue attempts to dequeue without blocking.
// Returns (Event{}, false) if the queue is empty.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]

	// Nil out the slot so the Event's pointers are collectable before the
	// backing array is reallocated.
	q.events[0] = Event{}

	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}

	return e, true
}

// Wait returns a channel that signals when events may be available.
// Use with select for context-aware waiting.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// IsClosed reports whether Close has been called. The signal channel can
// carry a stale wake-up token after the fast path drained the queue, so
// the loop must not infer closure from an empty read alone.
func (q *eventQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close signals that no more events will be enqueued.
// Wakes any blocked waiters by closing the signal channel.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
