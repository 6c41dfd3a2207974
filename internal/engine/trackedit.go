package engine

import (
	"fmt"
	"log/slog"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reduceTrackEdit drives the collaborative backing-track edit machine:
// editInitiated -> editInProgress -> editCompleted -> (cleared).
//
// The editInProgress status exists purely as sequencing: it stops the
// initiation reaction from firing twice in the same session, and it is
// what a late joiner observes and replays from. The self-side advance
// delay is strictly shorter than the late-joiner catch-up delay
// (Delays.Validate), so a joiner always replays a settled session.
func (e *Engine) reduceTrackEdit(self bool, editor state.User, st *state.TrackEditState) []ui.Effect {
	switch st.Status {
	case state.TrackEditInitiated:
		if self {
			return e.trackEditInitiatedSelf()
		}
		return e.enterCollabEdit(editor, st.EditTime)

	case state.TrackEditInProgress:
		if self || e.collabEdit || e.trackCatchUpPending {
			// Present from the beginning, or already catching up.
			return nil
		}
		// Late joiner: replay the initiation after the catch-up delay so
		// it lands after the editor's own sequence has settled.
		e.trackCatchUpPending = true
		editor := editor
		e.sched.Schedule(e.delays.TrackEditCatchUp.Std(), "track-edit-catch-up", func() {
			e.trackCatchUpPending = false
			if e.collabEdit {
				// Another observation already entered the session.
				return
			}
			effects := e.enterCollabEdit(editor, nil)
			if v, ok := e.stores.EditParams.Get(state.ParamSelectedMarker); ok {
				effects = append(effects, ui.ApplyMarkerSelection{Value: v})
			}
			e.emit(effects...)
		})
		return nil

	case state.TrackEditCompleted:
		// The toggle disables for everyone until the field clears,
		// absorbing rapid toggle races on both sides.
		effects := []ui.Effect{ui.SetControl{Control: ui.ControlEditToggle, Enabled: false}}

		if self {
			e.sched.Schedule(e.delays.TrackEditClear.Std(), "track-edit-clear", func() {
				e.emit(ui.SetControl{Control: ui.ControlEditToggle, Enabled: true})
				if err := e.dir.SetLocalField(state.FeatureTrackEdit, nil); err != nil {
					slog.Error("clearing track edit field failed", "error", err)
				}
			})
			return effects
		}

		e.sched.Schedule(e.delays.TrackEditClear.Std(), "track-edit-reenable", func() {
			e.emit(ui.SetControl{Control: ui.ControlEditToggle, Enabled: true})
		})

		e.collabEdit = false
		if eff, ok := e.seekEffect(st.EditTime); ok {
			effects = append(effects, eff)
		}
		effects = append(effects,
			ui.ExitCollabEdit{Editor: editor},
			ui.Notify{
				Text:     fmt.Sprintf("%s has stopped editing the backing track. You can now edit at will.", editor.Name),
				Severity: ui.SeverityInfo,
			},
		)
		return effects

	default:
		slog.Debug("ignoring unknown track edit status", "status", st.Status)
		return nil
	}
}

// trackEditInitiatedSelf runs the owner side of initiation: seed the
// shared marker snapshot if this session has none yet, freeze the edit
// toggle, and advance to editInProgress once the announcement has had
// time to land everywhere.
func (e *Engine) trackEditInitiatedSelf() []ui.Effect {
	if e.stores.Markers.Len() == 0 {
		e.resetMarkerSnapshot()
	}

	e.sched.Schedule(e.delays.TrackEditAdvance.Std(), "track-edit-advance", func() {
		e.emit(ui.SetControl{Control: ui.ControlEditToggle, Enabled: true})
		next := &state.TrackEditState{Status: state.TrackEditInProgress}
		if err := e.dir.SetLocalField(state.FeatureTrackEdit, next); err != nil {
			slog.Error("advancing track edit to in-progress failed", "error", err)
		}
	})

	return []ui.Effect{ui.SetControl{Control: ui.ControlEditToggle, Enabled: false}}
}

// enterCollabEdit performs the observer-side initiation reaction: follow
// the editor's playback position, switch into collaborative-edit mode,
// and lock the local edit entry.
func (e *Engine) enterCollabEdit(editor state.User, editTime *float64) []ui.Effect {
	e.collabEdit = true

	var effects []ui.Effect
	if eff, ok := e.seekEffect(editTime); ok {
		effects = append(effects, eff)
	}
	effects = append(effects,
		ui.EnterCollabEdit{Editor: editor},
		ui.SetControl{Control: ui.ControlEditToggle, Enabled: false},
		ui.Notify{
			Text:     fmt.Sprintf("%s is editing the backing track. You can't edit at the same time.", editor.Name),
			Severity: ui.SeverityInfo,
		},
	)
	return effects
}

// seekEffect converts a carried edit time into a playback seek. An edit
// time equal to the track duration wraps to zero.
func (e *Engine) seekEffect(editTime *float64) (ui.Effect, bool) {
	if editTime == nil {
		return nil, false
	}
	t := *editTime
	if t == e.surface.TrackDuration() {
		t = 0
	}
	return ui.SeekPlayback{Time: t}, true
}
