package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordSymbol(t *testing.T) {
	tests := []struct {
		name  string
		chord Chord
		want  string
	}{
		{"plain_root", Chord{Root: "C"}, "C"},
		{"with_accidental", Chord{Root: "C", Accidental: "#"}, "C#"},
		{"full", Chord{Root: "C", Accidental: "#", Variation: "maj7"}, "C#maj7"},
		{"flat_minor", Chord{Root: "B", Accidental: "b", Variation: "m"}, "Bbm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chord.Symbol())
		})
	}
}

func TestSnapshotMarkers(t *testing.T) {
	markers := SnapshotMarkers([]float64{0, 1.5, 3.25})
	require.Len(t, markers, 3)
	for i, m := range markers {
		assert.Equal(t, MarkerUnedited, m.Status, "marker %d", i)
		assert.NotNil(t, m.Metadata, "marker %d metadata must be writable", i)
		assert.Empty(t, m.Metadata)
	}
	assert.Equal(t, 1.5, markers[1].Time)
}

func TestSnapshotMarkersEmpty(t *testing.T) {
	markers := SnapshotMarkers(nil)
	assert.NotNil(t, markers)
	assert.Empty(t, markers)
}

func TestAnnotationDraftClone(t *testing.T) {
	draft := AnnotationDraft{
		Annotator:   "Alice",
		Description: "chords pass two",
		Observations: []Observation{
			{Time: 0, Duration: 2, Value: "C", Confidence: 1},
			{Time: 2, Duration: 2, Value: "G", Confidence: 0.8},
		},
	}

	clone := draft.Clone()
	require.Equal(t, draft, clone)

	clone.Observations[0].Value = "Am"
	assert.Equal(t, "C", draft.Observations[0].Value)
}

func TestAnnotationDraftCloneNilObservations(t *testing.T) {
	draft := AnnotationDraft{Annotator: "Alice"}
	clone := draft.Clone()
	assert.Nil(t, clone.Observations)
}
