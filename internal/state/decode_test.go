package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFromMapAnalysis(t *testing.T) {
	v, err := FeatureFromMap(FeatureAnalysis, map[string]any{
		"status":   "inProgress",
		"progress": 62.5,
	})
	require.NoError(t, err)

	st, ok := v.(*AnalysisState)
	require.True(t, ok)
	assert.Equal(t, AnalysisInProgress, st.Status)
	assert.Equal(t, 62.5, st.Progress)
	assert.Empty(t, st.ResultURL)
}

func TestFeatureFromMapRecordingWireKeys(t *testing.T) {
	v, err := FeatureFromMap(FeatureRecording, map[string]any{
		"status":      "stop",
		"recUserData": map[string]any{"id": "u-bob", "name": "Bob"},
		"isValid":     true,
	})
	require.NoError(t, err)

	st, ok := v.(*RecordingState)
	require.True(t, ok)
	assert.Equal(t, RecordingStop, st.Status)
	assert.Equal(t, RecUser{ID: "u-bob", Name: "Bob"}, st.RecUser)
	assert.True(t, st.IsValid)
}

func TestFeatureFromMapTrackEdit(t *testing.T) {
	v, err := FeatureFromMap(FeatureTrackEdit, map[string]any{
		"status":   "editInitiated",
		"editTime": 12.5,
	})
	require.NoError(t, err)

	st, ok := v.(*TrackEditState)
	require.True(t, ok)
	assert.Equal(t, TrackEditInitiated, st.Status)
	require.NotNil(t, st.EditTime)
	assert.Equal(t, 12.5, *st.EditTime)
}

func TestFeatureFromMapChordEditNestedSelection(t *testing.T) {
	v, err := FeatureFromMap(FeatureChordEdit, map[string]any{
		"status":           "inProgress",
		"initialSelection": map[string]any{"markerIndex": 1, "time": 3.5},
	})
	require.NoError(t, err)

	st, ok := v.(*ChordEditState)
	require.True(t, ok)
	assert.Equal(t, ChordEditInProgress, st.Status)
	require.NotNil(t, st.InitialSelection)
	assert.Equal(t, Selection{MarkerIndex: 1, Time: 3.5}, *st.InitialSelection)
}

func TestFeatureFromMapCancelSaveDraft(t *testing.T) {
	v, err := FeatureFromMap(FeatureCancelSave, map[string]any{
		"action": "savedSeparate",
		"newAnnotationData": map[string]any{
			"annotator": "Alice",
			"observations": []any{
				map[string]any{"time": 0, "duration": 2, "value": "C", "confidence": 1},
			},
		},
	})
	require.NoError(t, err)

	st, ok := v.(*CancelSaveState)
	require.True(t, ok)
	assert.Equal(t, EditSavedSeparate, st.Action)
	require.NotNil(t, st.Draft)
	assert.Equal(t, "Alice", st.Draft.Annotator)
	require.Len(t, st.Draft.Observations, 1)
	assert.Equal(t, "C", st.Draft.Observations[0].Value)
}

func TestFeatureFromMapNonStringKeys(t *testing.T) {
	// YAML decoders can produce map[any]any for nested mappings.
	v, err := FeatureFromMap(FeatureChordEdit, map[string]any{
		"status":           "started",
		"initialSelection": map[any]any{"markerIndex": 2, "time": 5.0},
	})
	require.NoError(t, err)

	st, ok := v.(*ChordEditState)
	require.True(t, ok)
	require.NotNil(t, st.InitialSelection)
	assert.Equal(t, 2, st.InitialSelection.MarkerIndex)
}

func TestFeatureFromMapUnknownKey(t *testing.T) {
	_, err := FeatureFromMap(FeatureKey("telepathy"), map[string]any{"status": "on"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature key")
}

func TestFeatureFromMapUnknownFieldsDropped(t *testing.T) {
	v, err := FeatureFromMap(FeatureAnalysis, map[string]any{
		"status":      "initiated",
		"extraneous":  "ignored",
		"anotherBlob": map[string]any{"x": 1},
	})
	require.NoError(t, err)

	st, ok := v.(*AnalysisState)
	require.True(t, ok)
	assert.Equal(t, AnalysisInitiated, st.Status)
}

func TestFeatureFromMapBadFieldType(t *testing.T) {
	_, err := FeatureFromMap(FeatureTrackEdit, map[string]any{
		"status":   "editInitiated",
		"editTime": "not-a-number",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode trackEdit sub-state")
}
