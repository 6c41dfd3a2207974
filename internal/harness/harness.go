package harness

import (
	"fmt"

	"github.com/tenuto/segno/internal/engine"
	"github.com/tenuto/segno/internal/presence"
	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/testutil"
	"github.com/tenuto/segno/internal/ui"
)

// Result holds everything a scenario run produced.
type Result struct {
	// Effects is the ordered trace of applied effect strings.
	Effects []string

	// Pass reports whether every assertion held.
	Pass bool

	// Failures lists each failed assertion.
	Failures []error
}

// defaultLocal is the local identity used when a scenario omits one.
var defaultLocal = state.User{ID: "u-alice", Name: "Alice", Color: "#e74c3c"}

// Run executes a scenario deterministically and evaluates its assertions.
//
// The run wires a real engine to an in-memory directory (fixed client
// ids), a virtual scheduler, and a stub surface. Each step executes fully
// - the queue drains - before the next one starts, so the effect trace is
// a pure function of the script.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(scenario)
}

// RunWithOptions executes a scenario with extra engine options layered on
// top of the deterministic defaults. The simulator CLI attaches a journal
// this way.
func RunWithOptions(scenario *Scenario, extra ...engine.Option) (*Result, error) {
	local := defaultLocal
	if scenario.Local != nil {
		local = *scenario.Local
	}

	delays := engine.DefaultDelays()
	if scenario.Delays != nil {
		delays = delays.Override(*scenario.Delays)
	}
	if err := delays.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	// One predetermined id per connect step, plus the local client.
	ids := []state.ClientID{"client-0"}
	for i, step := range scenario.Steps {
		if step.Connect != nil {
			ids = append(ids, state.ClientID(fmt.Sprintf("client-%d", i+1)))
		}
	}

	dir := presence.NewMemoryDirectory(local, presence.NewFixedGenerator(ids...))
	stores := presence.NewMemoryStores()
	stub := ui.NewStub()
	sched := engine.NewVirtualScheduler()
	recorder := &testutil.Recorder{}

	opts := append([]engine.Option{
		engine.WithDelays(delays),
		engine.WithScheduler(sched),
		engine.WithObserver(recorder.Observe),
	}, extra...)
	eng := engine.New(dir, stores, stub, opts...)
	eng.Bind()

	clients := make(map[string]state.ClientID)
	for i, step := range scenario.Steps {
		if err := runStep(&step, dir, stores, sched, eng, clients); err != nil {
			return nil, fmt.Errorf("scenario %s step %d: %w", scenario.Name, i, err)
		}
		eng.Drain()
	}

	result := &Result{Effects: recorder.Lines(), Pass: true}
	for _, assertion := range scenario.Assertions {
		if err := evaluate(result.Effects, assertion); err != nil {
			result.Pass = false
			result.Failures = append(result.Failures, err)
		}
	}
	return result, nil
}

func runStep(
	step *Step,
	dir *presence.MemoryDirectory,
	stores presence.Stores,
	sched *engine.VirtualScheduler,
	eng *engine.Engine,
	clients map[string]state.ClientID,
) error {
	switch {
	case step.Connect != nil:
		if _, ok := clients[step.Connect.Name]; ok {
			return fmt.Errorf("client %q already connected", step.Connect.Name)
		}
		clients[step.Connect.Name] = dir.Connect(*step.Connect)

	case step.Disconnect != nil:
		id, ok := clients[step.Disconnect.Client]
		if !ok {
			return fmt.Errorf("disconnect: unknown client %q", step.Disconnect.Client)
		}
		delete(clients, step.Disconnect.Client)
		dir.Disconnect(id)

	case step.Set != nil:
		id, ok := clients[step.Set.Client]
		if !ok {
			return fmt.Errorf("set: unknown client %q", step.Set.Client)
		}
		value, err := decodeValue(step.Set.Feature, step.Set.Value)
		if err != nil {
			return err
		}
		return dir.SetField(id, state.FeatureKey(step.Set.Feature), value)

	case step.SetLocal != nil:
		value, err := decodeValue(step.SetLocal.Feature, step.SetLocal.Value)
		if err != nil {
			return err
		}
		return dir.SetLocalField(state.FeatureKey(step.SetLocal.Feature), value)

	case step.SetParam != nil:
		stores.EditParams.Set(step.SetParam.Key, normalizeParam(step.SetParam.Value))

	case step.SetReception != nil:
		stores.Reception.Set(step.SetReception.Key, step.SetReception.Value)

	case step.Advance != 0:
		// Continuations may publish state, so the queue drains inside the
		// run loop as well as after the step.
		sched.Advance(step.Advance.Std())

	case step.Tick:
		eng.Enqueue(engine.Event{Type: engine.EventTick})
	}
	return nil
}

// decodeValue turns a scripted value map into the typed sub-state. A nil
// map clears the field, simulating lease expiry.
func decodeValue(feature string, value map[string]any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return state.FeatureFromMap(state.FeatureKey(feature), value)
}

// normalizeParam converts a scripted chord-selection map into the typed
// Selection the engine reads from the shared parameter store. Scalar
// values pass through unchanged.
func normalizeParam(value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	sel := state.Selection{}
	if idx, ok := m["markerIndex"]; ok {
		switch v := idx.(type) {
		case int:
			sel.MarkerIndex = v
		case float64:
			sel.MarkerIndex = int(v)
		}
	}
	if t, ok := m["time"]; ok {
		switch v := t.(type) {
		case int:
			sel.Time = float64(v)
		case float64:
			sel.Time = v
		}
	}
	return sel
}
