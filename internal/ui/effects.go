package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tenuto/segno/internal/state"
)

// Effect is one side-effecting command produced by a feature reducer.
//
// Effects are data until Apply replays them against a Surface. String forms
// are stable: scenario assertions and golden traces depend on them.
type Effect interface {
	// Name is the effect's stable identifier, e.g. "notify".
	Name() string
	fmt.Stringer

	apply(Surface)
}

// Apply replays effects against a surface in order.
func Apply(s Surface, effects ...Effect) {
	for _, e := range effects {
		e.apply(s)
	}
}

// Notify shows a user-visible notification.
type Notify struct {
	Text     string
	Severity Severity
}

func (e Notify) Name() string    { return "notify" }
func (e Notify) String() string  { return fmt.Sprintf("notify[%s]: %s", e.Severity, e.Text) }
func (e Notify) apply(s Surface) { s.Notify(e.Text, e.Severity) }

// ShowAnalysisProgress reveals the analysis progress-bar slot.
type ShowAnalysisProgress struct{}

func (e ShowAnalysisProgress) Name() string    { return "show-analysis-progress" }
func (e ShowAnalysisProgress) String() string  { return e.Name() }
func (e ShowAnalysisProgress) apply(s Surface) { s.ShowAnalysisProgress() }

// HideAnalysisProgress restores the pre-analysis UI.
type HideAnalysisProgress struct{}

func (e HideAnalysisProgress) Name() string    { return "hide-analysis-progress" }
func (e HideAnalysisProgress) String() string  { return e.Name() }
func (e HideAnalysisProgress) apply(s Surface) { s.HideAnalysisProgress() }

// SetAnalysisProgress moves the analysis progress bar.
type SetAnalysisProgress struct{ Percent float64 }

func (e SetAnalysisProgress) Name() string { return "set-analysis-progress" }
func (e SetAnalysisProgress) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), formatFloat(e.Percent))
}
func (e SetAnalysisProgress) apply(s Surface) { s.SetAnalysisProgress(e.Percent) }

// LoadAnnotationFile loads an analysis result by URL.
type LoadAnnotationFile struct{ URL string }

func (e LoadAnnotationFile) Name() string    { return "load-annotation-file" }
func (e LoadAnnotationFile) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.URL) }
func (e LoadAnnotationFile) apply(s Surface) { s.LoadAnnotationFile(e.URL) }

// SetRecordingActive flags the record control as active or idle.
type SetRecordingActive struct{ Active bool }

func (e SetRecordingActive) Name() string { return "set-recording-active" }
func (e SetRecordingActive) String() string {
	return fmt.Sprintf("%s: %t", e.Name(), e.Active)
}
func (e SetRecordingActive) apply(s Surface) { s.SetRecordingActive(e.Active) }

// CreateRecordingPlaceholder materializes a placeholder for an in-progress
// recording, attributed to its owner.
type CreateRecordingPlaceholder struct {
	Owner     state.RecUser
	AvatarURL string
}

func (e CreateRecordingPlaceholder) Name() string { return "create-recording-placeholder" }
func (e CreateRecordingPlaceholder) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.Owner.Name)
}
func (e CreateRecordingPlaceholder) apply(s Surface) {
	s.CreateRecordingPlaceholder(e.Owner, e.AvatarURL)
}

// FinalizeRecording replaces the placeholder with the finished waveform.
type FinalizeRecording struct{ Owner string }

func (e FinalizeRecording) Name() string    { return "finalize-recording" }
func (e FinalizeRecording) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.Owner) }
func (e FinalizeRecording) apply(s Surface) { s.FinalizeRecording(e.Owner) }

// RemoveRecordingPlaceholder discards the placeholder of a rejected take.
type RemoveRecordingPlaceholder struct{ Owner string }

func (e RemoveRecordingPlaceholder) Name() string { return "remove-recording-placeholder" }
func (e RemoveRecordingPlaceholder) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.Owner)
}
func (e RemoveRecordingPlaceholder) apply(s Surface) { s.RemoveRecordingPlaceholder(e.Owner) }

// RevealGroupPlayback shows the playback/combination controls that only
// make sense once a peer recording exists.
type RevealGroupPlayback struct{}

func (e RevealGroupPlayback) Name() string    { return "reveal-group-playback" }
func (e RevealGroupPlayback) String() string  { return e.Name() }
func (e RevealGroupPlayback) apply(s Surface) { s.RevealGroupPlayback() }

// SetControl enables or disables a named control.
type SetControl struct {
	Control Control
	Enabled bool
}

func (e SetControl) Name() string { return "set-control" }
func (e SetControl) String() string {
	return fmt.Sprintf("%s: %s=%t", e.Name(), e.Control, e.Enabled)
}
func (e SetControl) apply(s Surface) { s.SetControlEnabled(e.Control, e.Enabled) }

// SeekPlayback moves the playback position.
type SeekPlayback struct{ Time float64 }

func (e SeekPlayback) Name() string { return "seek-playback" }
func (e SeekPlayback) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), formatFloat(e.Time))
}
func (e SeekPlayback) apply(s Surface) { s.SeekPlayback(e.Time) }

// EnterCollabEdit switches the surface into collaborative-edit mode branded
// with the editor's identity.
type EnterCollabEdit struct{ Editor state.User }

func (e EnterCollabEdit) Name() string    { return "enter-collab-edit" }
func (e EnterCollabEdit) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.Editor.Name) }
func (e EnterCollabEdit) apply(s Surface) { s.EnterCollabEdit(e.Editor) }

// ExitCollabEdit restores the non-collaborative surface.
type ExitCollabEdit struct{ Editor state.User }

func (e ExitCollabEdit) Name() string    { return "exit-collab-edit" }
func (e ExitCollabEdit) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.Editor.Name) }
func (e ExitCollabEdit) apply(s Surface) { s.ExitCollabEdit(e.Editor) }

// ApplyMarkerSelection applies the shared selected-marker parameter.
type ApplyMarkerSelection struct{ Value any }

func (e ApplyMarkerSelection) Name() string { return "apply-marker-selection" }
func (e ApplyMarkerSelection) String() string {
	return fmt.Sprintf("%s: %v", e.Name(), e.Value)
}
func (e ApplyMarkerSelection) apply(s Surface) { s.ApplyMarkerSelection(e.Value) }

// OpenChordEditor opens the chord editor at a selection.
type OpenChordEditor struct{ Selection state.Selection }

func (e OpenChordEditor) Name() string { return "open-chord-editor" }
func (e OpenChordEditor) String() string {
	return fmt.Sprintf("%s: marker %d", e.Name(), e.Selection.MarkerIndex)
}
func (e OpenChordEditor) apply(s Surface) { s.OpenChordEditor(e.Selection) }

// CloseChordEditor closes the chord editor.
type CloseChordEditor struct{}

func (e CloseChordEditor) Name() string    { return "close-chord-editor" }
func (e CloseChordEditor) String() string  { return e.Name() }
func (e CloseChordEditor) apply(s Surface) { s.CloseChordEditor() }

// ClearChordHighlight clears collaboratively-highlighted chord cells.
type ClearChordHighlight struct{}

func (e ClearChordHighlight) Name() string    { return "clear-chord-highlight" }
func (e ClearChordHighlight) String() string  { return e.Name() }
func (e ClearChordHighlight) apply(s Surface) { s.ClearChordHighlight() }

// CommitChordEdit commits an applied chord into the annotation.
type CommitChordEdit struct{ Chord state.Chord }

func (e CommitChordEdit) Name() string { return "commit-chord-edit" }
func (e CommitChordEdit) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.Chord.Symbol())
}
func (e CommitChordEdit) apply(s Surface) { s.CommitChordEdit(e.Chord) }

// ApplyChordSelection applies a shared chord selection to the marker UI.
type ApplyChordSelection struct{ Selection state.Selection }

func (e ApplyChordSelection) Name() string { return "apply-chord-selection" }
func (e ApplyChordSelection) String() string {
	return fmt.Sprintf("%s: marker %d", e.Name(), e.Selection.MarkerIndex)
}
func (e ApplyChordSelection) apply(s Surface) { s.ApplyChordSelection(e.Selection) }

// DisableEditActions disables the save/cancel edit controls ahead of a
// re-render.
type DisableEditActions struct{}

func (e DisableEditActions) Name() string    { return "disable-edit-actions" }
func (e DisableEditActions) String() string  { return e.Name() }
func (e DisableEditActions) apply(s Surface) { s.DisableEditActions() }

// RestoreAnnotationView re-renders the pre-edit annotation.
type RestoreAnnotationView struct{}

func (e RestoreAnnotationView) Name() string    { return "restore-annotation-view" }
func (e RestoreAnnotationView) String() string  { return e.Name() }
func (e RestoreAnnotationView) apply(s Surface) { s.RestoreAnnotationView() }

// ReplaceAnnotation replaces the selected annotation with the draft.
type ReplaceAnnotation struct{ Draft state.AnnotationDraft }

func (e ReplaceAnnotation) Name() string { return "replace-annotation" }
func (e ReplaceAnnotation) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.Draft.Annotator)
}
func (e ReplaceAnnotation) apply(s Surface) { s.ReplaceAnnotation(e.Draft) }

// AppendAnnotation appends the draft as a new annotation and selects it.
type AppendAnnotation struct{ Draft state.AnnotationDraft }

func (e AppendAnnotation) Name() string { return "append-annotation" }
func (e AppendAnnotation) String() string {
	return fmt.Sprintf("%s: %s", e.Name(), e.Draft.Annotator)
}
func (e AppendAnnotation) apply(s Surface) { s.AppendAnnotation(e.Draft) }

// RenderRoster re-renders the full participant roster.
type RenderRoster struct{ Entries []RosterEntry }

func (e RenderRoster) Name() string { return "render-roster" }
func (e RenderRoster) String() string {
	parts := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		status := "online"
		if !entry.Online {
			status = "offline"
		}
		parts[i] = fmt.Sprintf("%s(%s)", entry.Name, status)
	}
	return fmt.Sprintf("%s: %s", e.Name(), strings.Join(parts, ","))
}
func (e RenderRoster) apply(s Surface) { s.RenderRoster(e.Entries) }

// SetPresence updates one participant's online/offline indicator.
type SetPresence struct {
	Participant string
	Online      bool
}

func (e SetPresence) Name() string { return "set-presence" }
func (e SetPresence) String() string {
	status := "online"
	if !e.Online {
		status = "offline"
	}
	return fmt.Sprintf("%s: %s=%s", e.Name(), e.Participant, status)
}
func (e SetPresence) apply(s Surface) { s.SetPresence(e.Participant, e.Online) }

// SetDeleteVisible shows or hides the delete control of a participant's
// recordings.
type SetDeleteVisible struct {
	Owner   string
	Visible bool
}

func (e SetDeleteVisible) Name() string { return "set-delete-visible" }
func (e SetDeleteVisible) String() string {
	return fmt.Sprintf("%s: %s=%t", e.Name(), e.Owner, e.Visible)
}
func (e SetDeleteVisible) apply(s Surface) { s.SetDeleteVisible(e.Owner, e.Visible) }

// EnableBackingControl enables the "use as backing track" control of a
// fully acknowledged recording.
type EnableBackingControl struct{ RecID string }

func (e EnableBackingControl) Name() string    { return "enable-backing-control" }
func (e EnableBackingControl) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.RecID) }
func (e EnableBackingControl) apply(s Surface) { s.EnableBackingControl(e.RecID) }

// EnableDeleteControl enables the delete control of a recording.
type EnableDeleteControl struct{ RecID string }

func (e EnableDeleteControl) Name() string    { return "enable-delete-control" }
func (e EnableDeleteControl) String() string  { return fmt.Sprintf("%s: %s", e.Name(), e.RecID) }
func (e EnableDeleteControl) apply(s Surface) { s.EnableDeleteControl(e.RecID) }

// formatFloat renders a float without a trailing ".0" for whole values, so
// trace strings stay stable across platforms.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
