package state

// MarkerStatus tracks whether a shared marker has been touched during the
// current edit session.
type MarkerStatus string

const (
	MarkerUnedited MarkerStatus = "unedited"
	MarkerEdited   MarkerStatus = "edited"
)

// Marker is one entry of the shared marker snapshot: the jointly editable
// copy of the waveform markers used during a collaborative edit session.
type Marker struct {
	Time     float64           `json:"time" yaml:"time"`
	Status   MarkerStatus      `json:"status" yaml:"status"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

// Selection references a marker position inside the annotation being
// edited. It is the unit the chord editor opens on and the value shared
// through the "chordSel" edit parameter.
type Selection struct {
	MarkerIndex int     `json:"markerIndex" yaml:"markerIndex"`
	Time        float64 `json:"time" yaml:"time"`
}

// Chord is the chord symbol applied by a completed chord edit.
type Chord struct {
	Root       string `json:"root" yaml:"root"`
	Accidental string `json:"accidental,omitempty" yaml:"accidental,omitempty"`
	Variation  string `json:"variation,omitempty" yaml:"variation,omitempty"`
}

// Symbol renders the chord in compact display form, e.g. "C#maj7".
func (c Chord) Symbol() string {
	return c.Root + c.Accidental + c.Variation
}

// Observation is one timed value of an annotation draft.
type Observation struct {
	Time       float64 `json:"time" yaml:"time"`
	Duration   float64 `json:"duration" yaml:"duration"`
	Value      string  `json:"value" yaml:"value"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// AnnotationDraft is the edited annotation carried on a saved edit. The
// observer side materializes it into a real annotation and either replaces
// the selected annotation or appends it as a new one.
type AnnotationDraft struct {
	Annotator    string        `json:"annotator" yaml:"annotator"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	Observations []Observation `json:"observations" yaml:"observations"`
}

// Clone returns a deep copy of the draft.
func (d AnnotationDraft) Clone() AnnotationDraft {
	out := d
	if d.Observations != nil {
		out.Observations = make([]Observation, len(d.Observations))
		copy(out.Observations, d.Observations)
	}
	return out
}

// SnapshotMarkers converts an authoritative marker list into snapshot form:
// every entry unedited with empty metadata. Index keys are assigned by the
// store that holds the snapshot.
func SnapshotMarkers(times []float64) []Marker {
	out := make([]Marker, len(times))
	for i, t := range times {
		out[i] = Marker{Time: t, Status: MarkerUnedited, Metadata: map[string]string{}}
	}
	return out
}
