package state

// ClientID is the stable per-connection identifier issued by the presence
// layer. It is opaque to the engine: two connections by the same person get
// two distinct ClientIDs.
type ClientID string

// User is the immutable identity attached to every awareness record.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// RecUser identifies the participant that owns a recording. It travels
// inside the recording sub-state so that late observers can attribute the
// recording without consulting the roster.
type RecUser struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// FeatureKey names one of the five independent awareness channels.
type FeatureKey string

const (
	FeatureAnalysis   FeatureKey = "analysis"
	FeatureRecording  FeatureKey = "record"
	FeatureTrackEdit  FeatureKey = "trackEdit"
	FeatureChordEdit  FeatureKey = "chordEdit"
	FeatureCancelSave FeatureKey = "cancelSaveEdit"
)

// FeatureKeys lists all channels in dispatch order. The order is fixed:
// reconciliation walks it deterministically on every state change.
var FeatureKeys = []FeatureKey{
	FeatureAnalysis,
	FeatureRecording,
	FeatureTrackEdit,
	FeatureChordEdit,
	FeatureCancelSave,
}

// Valid reports whether k is a known feature key.
func (k FeatureKey) Valid() bool {
	switch k {
	case FeatureAnalysis, FeatureRecording, FeatureTrackEdit, FeatureChordEdit, FeatureCancelSave:
		return true
	}
	return false
}

// Record is one client's replicated awareness record. A nil feature field
// means "not currently doing that"; at most one non-nil value exists per
// feature at any time, and only the owning client writes its own record.
type Record struct {
	User       User             `json:"user" yaml:"user"`
	Analysis   *AnalysisState   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Recording  *RecordingState  `json:"record,omitempty" yaml:"record,omitempty"`
	TrackEdit  *TrackEditState  `json:"trackEdit,omitempty" yaml:"trackEdit,omitempty"`
	ChordEdit  *ChordEditState  `json:"chordEdit,omitempty" yaml:"chordEdit,omitempty"`
	CancelSave *CancelSaveState `json:"cancelSaveEdit,omitempty" yaml:"cancelSaveEdit,omitempty"`
}

// Feature returns the sub-state stored under the given channel, or nil when
// the client is not doing that activity. The result is typed: callers
// type-assert to the per-feature state struct.
func (r *Record) Feature(key FeatureKey) any {
	switch key {
	case FeatureAnalysis:
		if r.Analysis != nil {
			return r.Analysis
		}
	case FeatureRecording:
		if r.Recording != nil {
			return r.Recording
		}
	case FeatureTrackEdit:
		if r.TrackEdit != nil {
			return r.TrackEdit
		}
	case FeatureChordEdit:
		if r.ChordEdit != nil {
			return r.ChordEdit
		}
	case FeatureCancelSave:
		if r.CancelSave != nil {
			return r.CancelSave
		}
	}
	return nil
}

// SetFeature stores value under the given channel. A nil value clears the
// field. Returns false when the value's type does not match the channel.
func (r *Record) SetFeature(key FeatureKey, value any) bool {
	switch key {
	case FeatureAnalysis:
		if value == nil {
			r.Analysis = nil
			return true
		}
		if st, ok := value.(*AnalysisState); ok {
			r.Analysis = st
			return true
		}
	case FeatureRecording:
		if value == nil {
			r.Recording = nil
			return true
		}
		if st, ok := value.(*RecordingState); ok {
			r.Recording = st
			return true
		}
	case FeatureTrackEdit:
		if value == nil {
			r.TrackEdit = nil
			return true
		}
		if st, ok := value.(*TrackEditState); ok {
			r.TrackEdit = st
			return true
		}
	case FeatureChordEdit:
		if value == nil {
			r.ChordEdit = nil
			return true
		}
		if st, ok := value.(*ChordEditState); ok {
			r.ChordEdit = st
			return true
		}
	case FeatureCancelSave:
		if value == nil {
			r.CancelSave = nil
			return true
		}
		if st, ok := value.(*CancelSaveState); ok {
			r.CancelSave = st
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record. Directory snapshots hand out
// clones so that a consumer can never mutate replicated state in place.
func (r *Record) Clone() Record {
	out := Record{User: r.User}
	if r.Analysis != nil {
		cp := *r.Analysis
		out.Analysis = &cp
	}
	if r.Recording != nil {
		cp := *r.Recording
		out.Recording = &cp
	}
	if r.TrackEdit != nil {
		cp := *r.TrackEdit
		if r.TrackEdit.EditTime != nil {
			t := *r.TrackEdit.EditTime
			cp.EditTime = &t
		}
		out.TrackEdit = &cp
	}
	if r.ChordEdit != nil {
		cp := *r.ChordEdit
		if r.ChordEdit.Selection != nil {
			s := *r.ChordEdit.Selection
			cp.Selection = &s
		}
		if r.ChordEdit.InitialSelection != nil {
			s := *r.ChordEdit.InitialSelection
			cp.InitialSelection = &s
		}
		if r.ChordEdit.ChordSelection != nil {
			c := *r.ChordEdit.ChordSelection
			cp.ChordSelection = &c
		}
		out.ChordEdit = &cp
	}
	if r.CancelSave != nil {
		cp := *r.CancelSave
		if r.CancelSave.Draft != nil {
			d := r.CancelSave.Draft.Clone()
			cp.Draft = &d
		}
		out.CancelSave = &cp
	}
	return out
}
