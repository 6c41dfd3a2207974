package engine

import (
	"log/slog"
	"reflect"
	"sort"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reconcileStates re-reads the full directory and dispatches every changed
// feature sub-state to its machine.
//
// The broadcast carries no payload, so change detection happens here: the
// engine memoizes the last observed value per (client, feature) and reacts
// only when the value differs. A re-broadcast of an unchanged record
// produces no reactions, and a reaction fires exactly once per transition
// no matter how many notifications deliver it.
//
// Clients are walked in sorted id order and features in declaration order,
// keeping the reaction order deterministic for any given directory state.
func (e *Engine) reconcileStates() {
	states := e.dir.States()
	localID := e.dir.ClientID()

	ids := make([]state.ClientID, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		rec := states[id]
		self := id == localID

		memo := e.seen[id]
		if memo == nil {
			memo = make(map[state.FeatureKey]any)
			e.seen[id] = memo
		}

		for _, key := range state.FeatureKeys {
			cur := rec.Feature(key)
			prev := memo[key]
			if reflect.DeepEqual(prev, cur) {
				continue
			}
			memo[key] = cur
			if cur == nil {
				// Field cleared: the lease expired. No reaction.
				continue
			}

			slog.Debug("feature transition",
				"client", id,
				"feature", key,
				"self", self,
			)
			e.emit(e.reduceFeature(key, self, &rec, cur)...)
		}
	}
}

// reduceFeature routes one changed sub-state to its machine. The self
// flag is the only input that selects between the owner's advancing logic
// and the observer's visible reaction - exactly one of the two runs.
func (e *Engine) reduceFeature(key state.FeatureKey, self bool, rec *state.Record, cur any) []ui.Effect {
	switch key {
	case state.FeatureAnalysis:
		return e.reduceAnalysis(self, rec.User, cur.(*state.AnalysisState))
	case state.FeatureRecording:
		return e.reduceRecording(self, cur.(*state.RecordingState))
	case state.FeatureTrackEdit:
		return e.reduceTrackEdit(self, rec.User, cur.(*state.TrackEditState))
	case state.FeatureChordEdit:
		return e.reduceChordEdit(self, cur.(*state.ChordEditState))
	case state.FeatureCancelSave:
		return e.reduceCancelSave(self, rec.User, cur.(*state.CancelSaveState))
	default:
		// Unknown feature keys are forward-compatible noise.
		slog.Debug("ignoring unknown feature key", "feature", key)
		return nil
	}
}
