package engine

import (
	"sync"
	"time"
)

// TaskID identifies a scheduled continuation for cancellation.
type TaskID int64

// ScheduledTask is a due continuation travelling back onto the engine loop.
type ScheduledTask struct {
	ID   TaskID
	Name string
	Run  func()
}

// Scheduler is the cancellable delayed-task queue the engine sequences
// with. All the protocol's manufactured ordering flows through it, so
// tests swap in the virtual implementation and advance time explicitly
// instead of sleeping.
type Scheduler interface {
	// Schedule arranges for fn to run after delay. The name labels the
	// task in logs and journals.
	Schedule(delay time.Duration, name string, fn func()) TaskID

	// Cancel drops a pending task. Cancelling an already-fired or unknown
	// task returns false.
	Cancel(id TaskID) bool
}

// WallScheduler runs tasks on real timers. Due tasks are handed to the
// sink, which re-enqueues them as loop events so that continuations always
// execute on the single-writer goroutine.
type WallScheduler struct {
	mu     sync.Mutex
	next   TaskID
	timers map[TaskID]*time.Timer
	sink   func(*ScheduledTask)
}

// NewWallScheduler creates a wall-clock scheduler delivering due tasks to
// sink.
func NewWallScheduler(sink func(*ScheduledTask)) *WallScheduler {
	return &WallScheduler{
		timers: make(map[TaskID]*time.Timer),
		sink:   sink,
	}
}

// Schedule implements Scheduler.
func (s *WallScheduler) Schedule(delay time.Duration, name string, fn func()) TaskID {
	s.mu.Lock()
	s.next++
	id := s.next
	task := &ScheduledTask{ID: id, Name: name, Run: fn}
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.sink(task)
	})
	s.mu.Unlock()
	return id
}

// Cancel implements Scheduler.
func (s *WallScheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return t.Stop()
}

// VirtualScheduler holds tasks on a virtual timeline. Nothing fires until
// Advance moves the clock; due tasks run synchronously on the advancing
// goroutine, in (deadline, schedule order) order.
//
// The advancing goroutine takes the role of the engine loop writer, so
// Advance must only be called while the loop goroutine is not running -
// the harness and the tests drive the engine with Drain instead of Run.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	next  TaskID
	tasks []*virtualTask
}

type virtualTask struct {
	id   TaskID
	due  time.Duration
	name string
	fn   func()
}

// NewVirtualScheduler creates a virtual scheduler at time zero.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

// Schedule implements Scheduler.
func (s *VirtualScheduler) Schedule(delay time.Duration, name string, fn func()) TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.tasks = append(s.tasks, &virtualTask{
		id:   s.next,
		due:  s.now + delay,
		name: name,
		fn:   fn,
	})
	return s.next
}

// Cancel implements Scheduler.
func (s *VirtualScheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the current virtual time.
func (s *VirtualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of tasks not yet due.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves virtual time forward by d and runs every task that becomes
// due, in deadline order (ties break by scheduling order). Tasks scheduled
// by a running task fire within the same Advance when their deadline still
// falls inside the window.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.due > target {
				continue
			}
			if idx == -1 || t.due < s.tasks[idx].due ||
				(t.due == s.tasks[idx].due && t.id < s.tasks[idx].id) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		task := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		s.now = task.due
		s.mu.Unlock()
		task.fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}
