package ui

import (
	"fmt"
	"sync"

	"github.com/tenuto/segno/internal/state"
)

// Stub is a Surface for tests and the harness. Mutating calls are no-ops
// beyond counting; queries answer from configurable fields.
type Stub struct {
	mu sync.Mutex

	// Markers is the authoritative marker list reported to the engine.
	Markers []float64
	// Duration is the reported track duration in seconds.
	Duration float64

	calls map[string]int
}

// NewStub creates a stub with a small default marker list.
func NewStub() *Stub {
	return &Stub{
		Markers:  []float64{0, 1.5, 3, 4.5},
		Duration: 180,
	}
}

func (s *Stub) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

// Calls returns how many times the named surface method was applied.
func (s *Stub) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *Stub) Notify(string, Severity)                              { s.record("notify") }
func (s *Stub) ShowAnalysisProgress()                                { s.record("show-analysis-progress") }
func (s *Stub) HideAnalysisProgress()                                { s.record("hide-analysis-progress") }
func (s *Stub) SetAnalysisProgress(float64)                          { s.record("set-analysis-progress") }
func (s *Stub) LoadAnnotationFile(string)                            { s.record("load-annotation-file") }
func (s *Stub) SetRecordingActive(bool)                              { s.record("set-recording-active") }
func (s *Stub) CreateRecordingPlaceholder(state.RecUser, string)     { s.record("create-recording-placeholder") }
func (s *Stub) FinalizeRecording(string)                             { s.record("finalize-recording") }
func (s *Stub) RemoveRecordingPlaceholder(string)                    { s.record("remove-recording-placeholder") }
func (s *Stub) RevealGroupPlayback()                                 { s.record("reveal-group-playback") }
func (s *Stub) SetControlEnabled(Control, bool)                      { s.record("set-control") }
func (s *Stub) SeekPlayback(float64)                                 { s.record("seek-playback") }
func (s *Stub) EnterCollabEdit(state.User)                           { s.record("enter-collab-edit") }
func (s *Stub) ExitCollabEdit(state.User)                            { s.record("exit-collab-edit") }
func (s *Stub) ApplyMarkerSelection(any)                             { s.record("apply-marker-selection") }
func (s *Stub) OpenChordEditor(state.Selection)                      { s.record("open-chord-editor") }
func (s *Stub) CloseChordEditor()                                    { s.record("close-chord-editor") }
func (s *Stub) ClearChordHighlight()                                 { s.record("clear-chord-highlight") }
func (s *Stub) CommitChordEdit(state.Chord)                          { s.record("commit-chord-edit") }
func (s *Stub) ApplyChordSelection(state.Selection)                  { s.record("apply-chord-selection") }
func (s *Stub) DisableEditActions()                                  { s.record("disable-edit-actions") }
func (s *Stub) RestoreAnnotationView()                               { s.record("restore-annotation-view") }
func (s *Stub) ReplaceAnnotation(state.AnnotationDraft)              { s.record("replace-annotation") }
func (s *Stub) AppendAnnotation(state.AnnotationDraft)               { s.record("append-annotation") }
func (s *Stub) RenderRoster([]RosterEntry)                           { s.record("render-roster") }
func (s *Stub) SetPresence(string, bool)                             { s.record("set-presence") }
func (s *Stub) SetDeleteVisible(string, bool)                        { s.record("set-delete-visible") }
func (s *Stub) EnableBackingControl(string)                          { s.record("enable-backing-control") }
func (s *Stub) EnableDeleteControl(string)                           { s.record("enable-delete-control") }

// AvatarURL derives a deterministic avatar path from the participant id.
func (s *Stub) AvatarURL(id string) string { return fmt.Sprintf("/avatars/%s.png", id) }

// MarkerTimes returns the configured authoritative marker list.
func (s *Stub) MarkerTimes() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.Markers))
	copy(out, s.Markers)
	return out
}

// TrackDuration returns the configured track duration.
func (s *Stub) TrackDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Duration
}
