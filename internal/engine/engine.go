package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/tenuto/segno/internal/presence"
	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// Journal receives the ordered record of every processed event and the
// effects it produced. Implemented by journal.Journal; nil disables
// journaling.
type Journal interface {
	Record(seq int64, kind, detail string, effects []string) error
}

// Engine is the single-writer awareness reconciler for one local client.
//
// It owns the session context the reducers run against: the directory
// handle, the three shared stores, the UI surface, the scheduler, and the
// local reaction flags. There are no ambient globals; everything a
// reducer touches hangs off the Engine.
//
// Thread-safety model:
//   - Enqueue(): safe from any goroutine
//   - Run() / Drain(): must be called from exactly one goroutine
//   - accessor methods (CollabEditMode etc.): loop goroutine only
type Engine struct {
	dir     presence.Directory
	stores  presence.Stores
	surface ui.Surface
	sched   Scheduler
	delays  Delays
	clock   *Clock
	queue   *eventQueue
	journal Journal

	observers []func(ui.Effect)
	pending   []string // effect strings of the event being processed

	// Dispatcher memo: last observed sub-state per (client, feature).
	// Reactions fire only on change, never on re-broadcast.
	seen map[state.ClientID]map[state.FeatureKey]any

	// Local reaction flags.
	collabEdit          bool
	chordEditorOpen     bool
	otherRecording      bool
	trackCatchUpPending bool
	chordCatchUpPending bool

	// Roster bookkeeping.
	known   map[string]Participant // every participant ever seen, by name
	offline map[string]bool        // names currently rendered offline
}

// Participant is one roster member as the reconciler tracks it.
type Participant struct {
	Name  string
	ID    string
	Color string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelays replaces the default delay set. The caller is expected to
// have validated it.
func WithDelays(d Delays) Option {
	return func(e *Engine) { e.delays = d }
}

// WithScheduler replaces the default wall-clock scheduler. Tests pass a
// VirtualScheduler here.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithJournal records every processed event and its effects.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithObserver registers a callback invoked for every applied effect, in
// application order. The harness collects its trace through this.
func WithObserver(fn func(ui.Effect)) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// New creates an Engine bound to a directory, the three shared stores,
// and a UI surface. Call Bind to subscribe to directory notifications,
// then Run (or Drain, in tests) to process.
func New(dir presence.Directory, stores presence.Stores, surface ui.Surface, opts ...Option) *Engine {
	e := &Engine{
		dir:     dir,
		stores:  stores,
		surface: surface,
		delays:  DefaultDelays(),
		clock:   NewClock(),
		queue:   newEventQueue(),
		seen:    make(map[state.ClientID]map[state.FeatureKey]any),
		known:   make(map[string]Participant),
		offline: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.sched == nil {
		e.sched = NewWallScheduler(func(t *ScheduledTask) {
			e.Enqueue(Event{Type: EventTask, Task: t})
		})
	}

	local := dir.LocalUser()
	e.known[canonicalName(local.Name)] = Participant{
		Name:  canonicalName(local.Name),
		ID:    local.ID,
		Color: local.Color,
	}

	return e
}

// Bind subscribes the engine to the directory's notifications. Directory
// callbacks only enqueue; processing stays on the loop goroutine.
func (e *Engine) Bind() {
	e.dir.OnChange(func() {
		e.Enqueue(Event{Type: EventStateChange})
	})
	e.dir.OnMembership(func(added, removed []state.ClientID) {
		e.Enqueue(Event{Type: EventMembership, Added: added, Removed: removed})
	})
}

// Enqueue submits an event for processing by the loop.
// Thread-safe. Returns false if the engine has been stopped.
func (e *Engine) Enqueue(ev Event) bool {
	return e.queue.Enqueue(ev)
}

// Delays returns the engine's delay configuration.
func (e *Engine) Delays() Delays { return e.delays }

// Clock returns the engine's logical clock.
func (e *Engine) Clock() *Clock { return e.clock }

// QueueLen returns the number of pending events. Useful for monitoring.
func (e *Engine) QueueLen() int { return e.queue.Len() }

// CollabEditMode reports whether the local client currently follows a
// remote backing-track edit session.
func (e *Engine) CollabEditMode() bool { return e.collabEdit }

// ChordEditorOpen reports whether a remote-driven chord editor is open.
func (e *Engine) ChordEditorOpen() bool { return e.chordEditorOpen }

// OtherRecording reports whether a remote participant is recording. The
// presentation layer gates its own record control on this.
func (e *Engine) OtherRecording() bool { return e.otherRecording }

// Solo reports whether the local client is the only connected participant.
// The presentation layer skips collaborative gating when alone.
func (e *Engine) Solo() bool { return len(e.dir.States()) <= 1 }

// Run starts the single-writer event loop. A housekeeping ticker feeds
// the loop periodic EventTicks so reception acknowledgments converge even
// when no membership event arrives.
// Blocks until the context is cancelled or Stop() is called.
//
// CRITICAL: Must be called from exactly ONE goroutine. On handler failure
// the error is logged with event context and processing continues.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("engine starting", "client", e.dir.ClientID())

	ticker := time.NewTicker(e.delays.HousekeepingTick.Std())
	defer ticker.Stop()

	for {
		event, ok := e.queue.TryDequeue()
		if ok {
			e.processEvent(event)
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("engine stopping: context cancelled")
			e.queue.Close()
			return ctx.Err()

		case <-ticker.C:
			e.Enqueue(Event{Type: EventTick})

		case <-e.queue.Wait():
			if e.queue.IsClosed() && e.queue.Len() == 0 {
				slog.Info("engine stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop gracefully shuts down the engine. Run() returns once the queue
// drains.
func (e *Engine) Stop() {
	e.queue.Close()
}

// Drain processes every queued event synchronously and returns the number
// processed. Tests and the harness call Drain from their own goroutine
// instead of running the loop; the caller takes the single-writer role.
func (e *Engine) Drain() int {
	n := 0
	for {
		event, ok := e.queue.TryDequeue()
		if !ok {
			return n
		}
		e.processEvent(event)
		n++
	}
}

// processEvent routes one event. Loop goroutine only.
func (e *Engine) processEvent(event Event) {
	seq := e.clock.Next()
	e.pending = nil

	kind, detail := describeEvent(event)
	slog.Debug("processing event", "seq", seq, "kind", kind, "detail", detail)

	switch event.Type {
	case EventStateChange:
		e.reconcileStates()
	case EventMembership:
		e.reconcileRoster(event.Added, event.Removed)
	case EventTick:
		e.housekeepReception()
	case EventTask:
		if event.Task == nil {
			slog.Error("task event missing task")
			break
		}
		event.Task.Run()
	default:
		slog.Error("unknown event type", "type", event.Type)
	}

	if e.journal != nil {
		if err := e.journal.Record(seq, kind, detail, e.pending); err != nil {
			// Log and continue: journaling is observability, not protocol.
			slog.Error("journal write failed", "seq", seq, "kind", kind, "error", err)
		}
	}
	e.pending = nil
}

// emit applies effects at the boundary: surface first, then observers and
// the journal buffer. Loop goroutine only (including scheduled tasks).
func (e *Engine) emit(effects ...ui.Effect) {
	for _, eff := range effects {
		ui.Apply(e.surface, eff)
		for _, fn := range e.observers {
			fn(eff)
		}
		e.pending = append(e.pending, eff.String())
	}
}

// clearLater schedules the lease-expiry clearing of one local feature
// field: the owner nulls its own announcement after the delay, giving
// remote observers time to react to the prior value.
func (e *Engine) clearLater(key state.FeatureKey, d Duration, name string) {
	e.sched.Schedule(d.Std(), name, func() {
		if err := e.dir.SetLocalField(key, nil); err != nil {
			slog.Error("clearing local feature field failed",
				"feature", key,
				"task", name,
				"error", err,
			)
		}
	})
}

// resetMarkerSnapshot clears the shared marker snapshot and repopulates it
// from the authoritative marker list, every entry unedited. This is the
// canonical reset point of the snapshot lifecycle; repopulating twice in a
// row yields an identical snapshot.
func (e *Engine) resetMarkerSnapshot() {
	markers := e.stores.Markers
	markers.Clear()
	for i, t := range e.surface.MarkerTimes() {
		markers.Set(strconv.Itoa(i), state.Marker{
			Time:     t,
			Status:   state.MarkerUnedited,
			Metadata: map[string]string{},
		})
	}
}

func describeEvent(event Event) (kind, detail string) {
	switch event.Type {
	case EventStateChange:
		return "state-change", ""
	case EventMembership:
		return "membership", fmt.Sprintf("added=%d removed=%d", len(event.Added), len(event.Removed))
	case EventTick:
		return "tick", ""
	case EventTask:
		if event.Task != nil {
			return "task", event.Task.Name
		}
		return "task", ""
	default:
		return "unknown", ""
	}
}
