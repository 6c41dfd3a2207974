package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/state"
)

func floatPtr(v float64) *float64 { return &v }

func TestTrackEdit_SelfInitiated_SeedsSnapshotAndAdvances(t *testing.T) {
	f := newFixture(t)
	f.resetTrace()

	f.setLocal(state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})

	f.requireTrace("set-control: edit-toggle=false")
	assert.Equal(t, len(f.stub.Markers), f.stores.Markers.Len(),
		"first edit of the session seeds the shared snapshot")

	f.resetTrace()
	f.advance(time.Second)

	f.requireTrace("set-control: edit-toggle=true")
	rec := f.dir.States()[f.dir.ClientID()]
	require.NotNil(t, rec.TrackEdit)
	assert.Equal(t, state.TrackEditInProgress, rec.TrackEdit.Status,
		"owner advances to in-progress after the announcement settles")
}

func TestTrackEdit_SelfInitiated_ExistingSnapshotKept(t *testing.T) {
	f := newFixture(t)
	f.stores.Markers.Set("0", state.Marker{Time: 9, Status: state.MarkerEdited})

	f.setLocal(state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})

	require.Equal(t, 1, f.stores.Markers.Len())
	v, _ := f.stores.Markers.Get("0")
	assert.Equal(t, state.MarkerEdited, v.(state.Marker).Status,
		"a populated snapshot survives re-initiation")
}

func TestTrackEdit_RemoteInitiated_EntersCollabEdit(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{
		Status:   state.TrackEditInitiated,
		EditTime: floatPtr(12.5),
	})

	f.requireTrace(
		"seek-playback: 12.5",
		"enter-collab-edit: Bob",
		"set-control: edit-toggle=false",
		"notify[info]: Bob is editing the backing track. You can't edit at the same time.",
	)
	assert.True(t, f.eng.CollabEditMode())
}

func TestTrackEdit_EditTimeAtDurationWrapsToZero(t *testing.T) {
	f := newFixture(t)
	f.stub.Duration = 180
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{
		Status:   state.TrackEditInitiated,
		EditTime: floatPtr(180),
	})

	f.requireTrace("seek-playback: 0")
}

func TestTrackEdit_InProgressAfterInitiated_NoDuplicateEntry(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})
	f.resetTrace()

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInProgress})

	assert.Empty(t, f.trace, "a client that saw the initiation must not replay it")
	f.advance(10 * time.Second)
	f.refuteTrace("enter-collab-edit")
}

func TestTrackEdit_LateJoiner_CatchesUpAfterDelay(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.stores.EditParams.Set(state.ParamSelectedMarker, 2)
	f.resetTrace()

	// The joiner observes the session already in progress, never having
	// seen editInitiated.
	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInProgress})
	assert.Empty(t, f.trace, "nothing happens until the catch-up delay elapses")

	f.advance(7 * time.Second)

	f.requireTrace(
		"enter-collab-edit: Bob",
		"set-control: edit-toggle=false",
		"apply-marker-selection: 2",
	)
	assert.True(t, f.eng.CollabEditMode())
}

func TestTrackEdit_LateJoiner_NoSharedSelection(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInProgress})
	f.advance(7 * time.Second)

	f.requireTrace("enter-collab-edit: Bob")
	f.refuteTrace("apply-marker-selection")
}

func TestTrackEdit_LateJoiner_SkipsWhenAlreadyEntered(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	second := f.connect("Cara", "u-cara")

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInProgress})
	// Before the catch-up fires, another path enters the session.
	f.set(second, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})
	require.True(t, f.eng.CollabEditMode())
	f.resetTrace()

	f.advance(7 * time.Second)
	f.refuteTrace("enter-collab-edit")
}

func TestTrackEdit_EditorDisconnectMidSession_LeavesStaleMode(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})
	require.True(t, f.eng.CollabEditMode())
	f.resetTrace()

	// The editor vanishes without completing. No timeout forces an exit;
	// the collaborative mode persists until a later session action ends it.
	f.disconnect(peer)
	f.advance(time.Minute)

	f.refuteTrace("exit-collab-edit")
	assert.True(t, f.eng.CollabEditMode())
}

func TestTrackEdit_RemoteCompleted_ExitsAndReenables(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})
	require.True(t, f.eng.CollabEditMode())
	f.resetTrace()

	f.set(peer, state.FeatureTrackEdit, &state.TrackEditState{
		Status:   state.TrackEditCompleted,
		EditTime: floatPtr(33),
	})

	f.requireTrace(
		"set-control: edit-toggle=false",
		"seek-playback: 33",
		"exit-collab-edit: Bob",
		"notify[info]: Bob has stopped editing the backing track. You can now edit at will.",
	)
	assert.False(t, f.eng.CollabEditMode())

	f.resetTrace()
	f.advance(time.Second)
	f.requireTrace("set-control: edit-toggle=true")
}

func TestTrackEdit_SelfCompleted_ClearsFieldAndReenables(t *testing.T) {
	f := newFixture(t)
	f.setLocal(state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditInitiated})
	f.advance(time.Second) // advance to in-progress
	f.resetTrace()

	f.setLocal(state.FeatureTrackEdit, &state.TrackEditState{Status: state.TrackEditCompleted})
	f.requireTrace("set-control: edit-toggle=false")

	f.resetTrace()
	f.advance(time.Second)

	f.requireTrace("set-control: edit-toggle=true")
	rec := f.dir.States()[f.dir.ClientID()]
	assert.Nil(t, rec.TrackEdit, "owner clears its field after the lease")
}
