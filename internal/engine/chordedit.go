package engine

import (
	"log/slog"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reduceChordEdit drives the chord editor machine:
// started -> inProgress -> completed.
//
// As with the track edit, inProgress is sequencing, not semantics: the
// owner advances to it shortly after announcing started, carrying the
// original selection along as initialSelection so a late joiner has a
// fallback when no shared chord selection exists yet.
func (e *Engine) reduceChordEdit(self bool, st *state.ChordEditState) []ui.Effect {
	switch st.Status {
	case state.ChordEditStarted:
		if self {
			sel := st.Selection
			e.sched.Schedule(e.delays.ChordEditAdvance.Std(), "chord-edit-advance", func() {
				next := &state.ChordEditState{
					Status:           state.ChordEditInProgress,
					InitialSelection: sel,
				}
				if err := e.dir.SetLocalField(state.FeatureChordEdit, next); err != nil {
					slog.Error("advancing chord edit to in-progress failed", "error", err)
				}
			})
			return nil
		}
		e.chordEditorOpen = true
		return []ui.Effect{ui.OpenChordEditor{Selection: derefSelection(st.Selection)}}

	case state.ChordEditInProgress:
		if self || e.chordEditorOpen || e.chordCatchUpPending {
			// Editor itself, present since the start, or already
			// catching up.
			return nil
		}
		// Late joiner: replay the started reaction after the catch-up
		// delay, preferring the shared chord selection over the carried
		// initial one.
		e.chordCatchUpPending = true
		initial := st.InitialSelection
		e.sched.Schedule(e.delays.ChordEditCatchUp.Std(), "chord-edit-catch-up", func() {
			e.chordCatchUpPending = false
			if e.chordEditorOpen {
				return
			}
			sel := derefSelection(initial)
			if v, ok := e.stores.EditParams.Get(state.ParamChordSel); ok {
				if shared, ok := v.(state.Selection); ok {
					sel = shared
				}
			}
			e.chordEditorOpen = true
			e.emit(
				ui.OpenChordEditor{Selection: sel},
				ui.ApplyChordSelection{Selection: sel},
			)
		})
		return nil

	case state.ChordEditCompleted:
		if self {
			// The owner clears the shared chord selection immediately
			// and lease-clears its field shortly after.
			e.stores.EditParams.Delete(state.ParamChordSel)
			e.clearLater(state.FeatureChordEdit, e.delays.ChordEditClear, "chord-edit-clear")
			return nil
		}

		e.chordEditorOpen = false
		effects := []ui.Effect{ui.ClearChordHighlight{}}
		switch st.CompletingAction {
		case state.CompletingApplied:
			effects = append(effects,
				ui.CommitChordEdit{Chord: derefChord(st.ChordSelection)},
				ui.SetControl{Control: ui.ControlAnnotationList, Enabled: false},
				ui.SetControl{Control: ui.ControlDeleteAnnotation, Enabled: false},
			)
		case state.CompletingCanceled:
			// No annotation action on cancel.
		default:
			slog.Debug("ignoring unknown completing action", "action", st.CompletingAction)
		}
		effects = append(effects, ui.CloseChordEditor{})
		return effects

	default:
		slog.Debug("ignoring unknown chord edit status", "status", st.Status)
		return nil
	}
}

func derefSelection(s *state.Selection) state.Selection {
	if s == nil {
		return state.Selection{}
	}
	return *s
}

func derefChord(c *state.Chord) state.Chord {
	if c == nil {
		return state.Chord{}
	}
	return *c
}
