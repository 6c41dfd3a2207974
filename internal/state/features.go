package state

// AnalysisStatus is the lifecycle of a backing-track analysis announcement.
type AnalysisStatus string

const (
	AnalysisInitiated  AnalysisStatus = "initiated"
	AnalysisInProgress AnalysisStatus = "inProgress"
	AnalysisCompleted  AnalysisStatus = "completed"
)

// Valid reports whether s is a known analysis status.
func (s AnalysisStatus) Valid() bool {
	switch s {
	case AnalysisInitiated, AnalysisInProgress, AnalysisCompleted:
		return true
	}
	return false
}

// AnalysisURLNone is the in-band sentinel carried on a completed analysis
// whose server-side processing failed. There is no error channel on the
// wire; the sentinel is the failure signal.
const AnalysisURLNone = "none"

// AnalysisState announces a running backing-track analysis.
type AnalysisState struct {
	Status AnalysisStatus `json:"status" yaml:"status"`
	// Progress is a 0-100 percentage, meaningful only while in progress.
	Progress float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
	// ResultURL points at the produced annotation file once completed,
	// or carries AnalysisURLNone on failure.
	ResultURL string `json:"jamsURL,omitempty" yaml:"jamsURL,omitempty"`
}

// RecordingStatus is the two-step recording lifecycle.
type RecordingStatus string

const (
	RecordingStart RecordingStatus = "start"
	RecordingStop  RecordingStatus = "stop"
)

// Valid reports whether s is a known recording status.
func (s RecordingStatus) Valid() bool {
	return s == RecordingStart || s == RecordingStop
}

// RecordingState announces an in-progress or just-finished recording.
type RecordingState struct {
	Status  RecordingStatus `json:"status" yaml:"status"`
	RecUser RecUser         `json:"recUserData" yaml:"recUserData"`
	// IsValid is meaningful only on stop: a rejected take is announced
	// with IsValid false and observers discard the placeholder.
	IsValid bool `json:"isValid,omitempty" yaml:"isValid,omitempty"`
}

// TrackEditStatus is the lifecycle of a collaborative backing-track edit.
type TrackEditStatus string

const (
	TrackEditInitiated  TrackEditStatus = "editInitiated"
	TrackEditInProgress TrackEditStatus = "editInProgress"
	TrackEditCompleted  TrackEditStatus = "editCompleted"
)

// Valid reports whether s is a known track-edit status.
func (s TrackEditStatus) Valid() bool {
	switch s {
	case TrackEditInitiated, TrackEditInProgress, TrackEditCompleted:
		return true
	}
	return false
}

// TrackEditState announces a collaborative backing-track edit session.
// EditTime carries the editor's playback position on initiation and
// completion so observers can follow; it is nil while merely in progress.
type TrackEditState struct {
	Status   TrackEditStatus `json:"status" yaml:"status"`
	EditTime *float64        `json:"editTime,omitempty" yaml:"editTime,omitempty"`
}

// ChordEditStatus is the lifecycle of a chord edit inside a track edit.
type ChordEditStatus string

const (
	ChordEditStarted    ChordEditStatus = "started"
	ChordEditInProgress ChordEditStatus = "inProgress"
	ChordEditCompleted  ChordEditStatus = "completed"
)

// Valid reports whether s is a known chord-edit status.
func (s ChordEditStatus) Valid() bool {
	switch s {
	case ChordEditStarted, ChordEditInProgress, ChordEditCompleted:
		return true
	}
	return false
}

// CompletingAction distinguishes how a chord edit ended.
type CompletingAction string

const (
	CompletingCanceled CompletingAction = "canceled"
	CompletingApplied  CompletingAction = "applied"
)

// ChordEditState announces an open chord editor.
//
// Selection is carried while started; InitialSelection replaces it once the
// editor advances to inProgress so late joiners can fall back to it when no
// shared chord selection exists yet. ChordSelection carries the chosen
// chord on an applied completion.
type ChordEditState struct {
	Status           ChordEditStatus  `json:"status" yaml:"status"`
	Selection        *Selection       `json:"selection,omitempty" yaml:"selection,omitempty"`
	InitialSelection *Selection       `json:"initialSelection,omitempty" yaml:"initialSelection,omitempty"`
	CompletingAction CompletingAction `json:"completingAction,omitempty" yaml:"completingAction,omitempty"`
	ChordSelection   *Chord           `json:"chordSelection,omitempty" yaml:"chordSelection,omitempty"`
}

// CancelSaveAction is the terminal outcome of an edit session.
type CancelSaveAction string

const (
	EditCanceled      CancelSaveAction = "canceled"
	EditSavedReplace  CancelSaveAction = "savedReplace"
	EditSavedSeparate CancelSaveAction = "savedSeparate"
)

// Valid reports whether a is a known cancel/save action.
func (a CancelSaveAction) Valid() bool {
	switch a {
	case EditCanceled, EditSavedReplace, EditSavedSeparate:
		return true
	}
	return false
}

// CancelSaveState announces the end of an edit session. Draft carries the
// edited annotation for the save variants; it is nil on cancel.
type CancelSaveState struct {
	Action CancelSaveAction `json:"action" yaml:"action"`
	Draft  *AnnotationDraft `json:"newAnnotationData,omitempty" yaml:"newAnnotationData,omitempty"`
}
