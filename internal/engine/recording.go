package engine

import (
	"fmt"
	"log/slog"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reduceRecording drives the recording machine: start -> stop.
//
// The record control flashes and the placeholder materializes on both
// branches; only the exclusion flag and the notifications are other-only.
// A stopped recording is either finalized (valid) or discarded (invalid),
// and the owner lease-clears its field shortly after stopping.
func (e *Engine) reduceRecording(self bool, st *state.RecordingState) []ui.Effect {
	switch st.Status {
	case state.RecordingStart:
		effects := []ui.Effect{
			ui.SetRecordingActive{Active: true},
			ui.CreateRecordingPlaceholder{
				Owner:     st.RecUser,
				AvatarURL: e.surface.AvatarURL(st.RecUser.ID),
			},
		}
		if !self {
			e.otherRecording = true
			effects = append(effects, ui.Notify{
				Text:     fmt.Sprintf("%s is recording. You can't record at the same time.", st.RecUser.Name),
				Severity: ui.SeverityInfo,
			})
		}
		return effects

	case state.RecordingStop:
		effects := []ui.Effect{ui.SetRecordingActive{Active: false}}

		if st.IsValid {
			effects = append(effects, ui.FinalizeRecording{Owner: st.RecUser.Name})
			if !self {
				effects = append(effects, ui.RevealGroupPlayback{})
			}
		} else {
			effects = append(effects, ui.RemoveRecordingPlaceholder{Owner: st.RecUser.Name})
		}

		if self {
			e.clearLater(state.FeatureRecording, e.delays.RecordingClear, "recording-clear")
			return effects
		}

		e.otherRecording = false
		validity := "Recording is valid."
		if !st.IsValid {
			validity = "Recording is not valid."
		}
		effects = append(effects, ui.Notify{
			Text:     fmt.Sprintf("%s has stopped recording. %s", st.RecUser.Name, validity),
			Severity: ui.SeverityInfo,
		})
		return effects

	default:
		slog.Debug("ignoring unknown recording status", "status", st.Status)
		return nil
	}
}
