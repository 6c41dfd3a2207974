package engine

import (
	"fmt"
	"log/slog"

	"github.com/tenuto/segno/internal/state"
	"github.com/tenuto/segno/internal/ui"
)

// reduceCancelSave handles the terminal cancel/save announcement of an
// edit session. Not a multi-step machine: one announcement, three
// variants.
//
// The save variants differ only in how the observer places the draft
// (replace the selected annotation vs. append a new one) and in how much
// shared parameter context the owner clears: a replace keeps the
// annotation selector because the selection did not change, a separate
// save starts a fresh selection context and clears everything.
//
// Whichever client is the owner also resets the marker snapshot - this is
// the canonical reset point of the snapshot lifecycle, so the snapshot
// never carries edited markers across a completed edit cycle.
func (e *Engine) reduceCancelSave(self bool, editor state.User, st *state.CancelSaveState) []ui.Effect {
	var effects []ui.Effect

	switch st.Action {
	case state.EditCanceled:
		if self {
			e.clearEditParams(true)
		} else {
			effects = append(effects,
				ui.DisableEditActions{},
				ui.RestoreAnnotationView{},
				ui.Notify{
					Text:     fmt.Sprintf("%s has canceled the current backing track edit.", editor.Name),
					Severity: ui.SeverityInfo,
				},
			)
		}

	case state.EditSavedReplace:
		if self {
			e.clearEditParams(true)
		} else {
			effects = append(effects,
				ui.DisableEditActions{},
				ui.ReplaceAnnotation{Draft: derefDraft(st.Draft)},
				ui.SetControl{Control: ui.ControlDeleteAnnotation, Enabled: true},
				ui.Notify{
					Text:     fmt.Sprintf("%s has saved the current backing track edit, replacing the current annotation.", editor.Name),
					Severity: ui.SeverityInfo,
				},
			)
		}

	case state.EditSavedSeparate:
		if self {
			e.clearEditParams(false)
		} else {
			effects = append(effects,
				ui.DisableEditActions{},
				ui.AppendAnnotation{Draft: derefDraft(st.Draft)},
				ui.SetControl{Control: ui.ControlDeleteAnnotation, Enabled: true},
				ui.Notify{
					Text:     fmt.Sprintf("%s has saved the current backing track edit as a separate annotation.", editor.Name),
					Severity: ui.SeverityInfo,
				},
			)
		}

	default:
		slog.Debug("ignoring unknown cancel/save action", "action", st.Action)
		return nil
	}

	if self {
		e.clearLater(state.FeatureCancelSave, e.delays.CancelSaveClear, "cancel-save-clear")
		e.resetMarkerSnapshot()
	}

	return effects
}

// clearEditParams deletes the shared edit parameters, optionally keeping
// the annotation selector. Deleting keys that are already absent is a
// no-op, so repeated clearing converges.
func (e *Engine) clearEditParams(keepAnnotationSel bool) {
	params := e.stores.EditParams
	for _, key := range params.Keys() {
		if keepAnnotationSel && key == state.ParamAnnotationSel {
			continue
		}
		params.Delete(key)
	}
}

func derefDraft(d *state.AnnotationDraft) state.AnnotationDraft {
	if d == nil {
		return state.AnnotationDraft{}
	}
	return d.Clone()
}
