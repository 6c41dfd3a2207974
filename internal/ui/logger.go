package ui

import (
	"log/slog"

	"github.com/tenuto/segno/internal/state"
)

// Logger is a Surface that renders every projection as a structured log
// line. The simulator runs against it: the "UI" of a headless session is
// its log.
type Logger struct {
	*Stub
	log *slog.Logger
}

// NewLogger creates a logging surface. A nil logger falls back to the
// default slog logger.
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{Stub: NewStub(), log: log}
}

func (l *Logger) project(e Effect) {
	l.log.Info("projection", "effect", e.Name(), "detail", e.String())
}

func (l *Logger) Notify(text string, severity Severity) {
	l.Stub.Notify(text, severity)
	l.project(Notify{Text: text, Severity: severity})
}

func (l *Logger) ShowAnalysisProgress() {
	l.Stub.ShowAnalysisProgress()
	l.project(ShowAnalysisProgress{})
}

func (l *Logger) HideAnalysisProgress() {
	l.Stub.HideAnalysisProgress()
	l.project(HideAnalysisProgress{})
}

func (l *Logger) SetAnalysisProgress(p float64) {
	l.Stub.SetAnalysisProgress(p)
	l.project(SetAnalysisProgress{Percent: p})
}

func (l *Logger) LoadAnnotationFile(url string) {
	l.Stub.LoadAnnotationFile(url)
	l.project(LoadAnnotationFile{URL: url})
}

func (l *Logger) SetRecordingActive(active bool) {
	l.Stub.SetRecordingActive(active)
	l.project(SetRecordingActive{Active: active})
}

func (l *Logger) CreateRecordingPlaceholder(owner state.RecUser, avatarURL string) {
	l.Stub.CreateRecordingPlaceholder(owner, avatarURL)
	l.project(CreateRecordingPlaceholder{Owner: owner, AvatarURL: avatarURL})
}

func (l *Logger) FinalizeRecording(owner string) {
	l.Stub.FinalizeRecording(owner)
	l.project(FinalizeRecording{Owner: owner})
}

func (l *Logger) RemoveRecordingPlaceholder(owner string) {
	l.Stub.RemoveRecordingPlaceholder(owner)
	l.project(RemoveRecordingPlaceholder{Owner: owner})
}

func (l *Logger) RevealGroupPlayback() {
	l.Stub.RevealGroupPlayback()
	l.project(RevealGroupPlayback{})
}

func (l *Logger) SetControlEnabled(c Control, enabled bool) {
	l.Stub.SetControlEnabled(c, enabled)
	l.project(SetControl{Control: c, Enabled: enabled})
}

func (l *Logger) SeekPlayback(t float64) {
	l.Stub.SeekPlayback(t)
	l.project(SeekPlayback{Time: t})
}

func (l *Logger) EnterCollabEdit(editor state.User) {
	l.Stub.EnterCollabEdit(editor)
	l.project(EnterCollabEdit{Editor: editor})
}

func (l *Logger) ExitCollabEdit(editor state.User) {
	l.Stub.ExitCollabEdit(editor)
	l.project(ExitCollabEdit{Editor: editor})
}

func (l *Logger) ApplyMarkerSelection(v any) {
	l.Stub.ApplyMarkerSelection(v)
	l.project(ApplyMarkerSelection{Value: v})
}

func (l *Logger) OpenChordEditor(sel state.Selection) {
	l.Stub.OpenChordEditor(sel)
	l.project(OpenChordEditor{Selection: sel})
}

func (l *Logger) CloseChordEditor() {
	l.Stub.CloseChordEditor()
	l.project(CloseChordEditor{})
}

func (l *Logger) ClearChordHighlight() {
	l.Stub.ClearChordHighlight()
	l.project(ClearChordHighlight{})
}

func (l *Logger) CommitChordEdit(chord state.Chord) {
	l.Stub.CommitChordEdit(chord)
	l.project(CommitChordEdit{Chord: chord})
}

func (l *Logger) ApplyChordSelection(sel state.Selection) {
	l.Stub.ApplyChordSelection(sel)
	l.project(ApplyChordSelection{Selection: sel})
}

func (l *Logger) DisableEditActions() {
	l.Stub.DisableEditActions()
	l.project(DisableEditActions{})
}

func (l *Logger) RestoreAnnotationView() {
	l.Stub.RestoreAnnotationView()
	l.project(RestoreAnnotationView{})
}

func (l *Logger) ReplaceAnnotation(d state.AnnotationDraft) {
	l.Stub.ReplaceAnnotation(d)
	l.project(ReplaceAnnotation{Draft: d})
}

func (l *Logger) AppendAnnotation(d state.AnnotationDraft) {
	l.Stub.AppendAnnotation(d)
	l.project(AppendAnnotation{Draft: d})
}

func (l *Logger) RenderRoster(entries []RosterEntry) {
	l.Stub.RenderRoster(entries)
	l.project(RenderRoster{Entries: entries})
}

func (l *Logger) SetPresence(name string, online bool) {
	l.Stub.SetPresence(name, online)
	l.project(SetPresence{Participant: name, Online: online})
}

func (l *Logger) SetDeleteVisible(owner string, visible bool) {
	l.Stub.SetDeleteVisible(owner, visible)
	l.project(SetDeleteVisible{Owner: owner, Visible: visible})
}

func (l *Logger) EnableBackingControl(recID string) {
	l.Stub.EnableBackingControl(recID)
	l.project(EnableBackingControl{RecID: recID})
}

func (l *Logger) EnableDeleteControl(recID string) {
	l.Stub.EnableDeleteControl(recID)
	l.project(EnableDeleteControl{RecID: recID})
}
