package ui

import "github.com/tenuto/segno/internal/state"

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityDanger Severity = "danger"
)

// Control names a UI control the engine enables or disables by name.
type Control string

const (
	ControlEditToggle       Control = "edit-toggle"
	ControlAnnotationList   Control = "annotation-list"
	ControlDeleteAnnotation Control = "delete-annotation"
)

// RosterEntry is one participant row of the rendered roster.
type RosterEntry struct {
	Name      string
	ID        string
	Color     string
	AvatarURL string
	Online    bool
}

// Surface is the presentation contract the engine projects onto.
//
// Mutating methods correspond one-to-one with Effect variants and must be
// cheap and non-blocking; the engine applies them from its single-writer
// loop. The trailing query methods are reads the reducers need
// synchronously.
type Surface interface {
	Notify(text string, severity Severity)

	ShowAnalysisProgress()
	HideAnalysisProgress()
	SetAnalysisProgress(percent float64)
	LoadAnnotationFile(url string)

	SetRecordingActive(active bool)
	CreateRecordingPlaceholder(owner state.RecUser, avatarURL string)
	FinalizeRecording(owner string)
	RemoveRecordingPlaceholder(owner string)
	RevealGroupPlayback()

	SetControlEnabled(control Control, enabled bool)
	SeekPlayback(t float64)
	EnterCollabEdit(editor state.User)
	ExitCollabEdit(editor state.User)
	ApplyMarkerSelection(value any)

	OpenChordEditor(sel state.Selection)
	CloseChordEditor()
	ClearChordHighlight()
	CommitChordEdit(chord state.Chord)
	ApplyChordSelection(sel state.Selection)

	DisableEditActions()
	RestoreAnnotationView()
	ReplaceAnnotation(draft state.AnnotationDraft)
	AppendAnnotation(draft state.AnnotationDraft)

	RenderRoster(entries []RosterEntry)
	SetPresence(name string, online bool)
	SetDeleteVisible(owner string, visible bool)
	EnableBackingControl(recID string)
	EnableDeleteControl(recID string)

	// Queries.
	AvatarURL(id string) string
	MarkerTimes() []float64
	TrackDuration() float64
}
