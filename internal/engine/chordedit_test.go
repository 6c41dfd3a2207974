package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/state"
)

func TestChordEdit_SelfStarted_AdvancesCarryingSelection(t *testing.T) {
	f := newFixture(t)
	f.resetTrace()

	sel := &state.Selection{MarkerIndex: 3, Time: 4.5}
	f.setLocal(state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: sel,
	})
	assert.Empty(t, f.trace, "the owner opens its own editor directly")

	f.advance(time.Second)

	rec := f.dir.States()[f.dir.ClientID()]
	require.NotNil(t, rec.ChordEdit)
	assert.Equal(t, state.ChordEditInProgress, rec.ChordEdit.Status)
	require.NotNil(t, rec.ChordEdit.InitialSelection)
	assert.Equal(t, 3, rec.ChordEdit.InitialSelection.MarkerIndex,
		"the original selection travels as the late-joiner fallback")
}

func TestChordEdit_RemoteStarted_OpensEditor(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: &state.Selection{MarkerIndex: 2, Time: 3},
	})

	f.requireTrace("open-chord-editor: marker 2")
	assert.True(t, f.eng.ChordEditorOpen())
}

func TestChordEdit_InProgressAfterStarted_NoDuplicateOpen(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: &state.Selection{MarkerIndex: 2},
	})
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditInProgress,
		InitialSelection: &state.Selection{MarkerIndex: 2},
	})

	assert.Empty(t, f.trace)
	f.advance(10 * time.Second)
	f.refuteTrace("open-chord-editor")
}

func TestChordEdit_LateJoiner_PrefersSharedSelection(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.stores.EditParams.Set(state.ParamChordSel, state.Selection{MarkerIndex: 5, Time: 8})
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditInProgress,
		InitialSelection: &state.Selection{MarkerIndex: 1, Time: 1.5},
	})
	assert.Empty(t, f.trace, "nothing happens until the catch-up delay elapses")

	f.advance(7 * time.Second)

	// The live shared selection wins over the carried initial one.
	f.requireTrace(
		"open-chord-editor: marker 5",
		"apply-chord-selection: marker 5",
	)
	assert.True(t, f.eng.ChordEditorOpen())
}

func TestChordEdit_LateJoiner_FallsBackToInitialSelection(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditInProgress,
		InitialSelection: &state.Selection{MarkerIndex: 1, Time: 1.5},
	})
	f.advance(7 * time.Second)

	f.requireTrace("open-chord-editor: marker 1")
}

func TestChordEdit_LateJoiner_SkipsWhenEditorAlreadyOpen(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	second := f.connect("Cara", "u-cara")

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditInProgress,
		InitialSelection: &state.Selection{MarkerIndex: 1},
	})
	// Another editor opens before the catch-up fires.
	f.set(second, state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: &state.Selection{MarkerIndex: 4},
	})
	require.True(t, f.eng.ChordEditorOpen())
	f.resetTrace()

	f.advance(7 * time.Second)
	f.refuteTrace("open-chord-editor", "apply-chord-selection")
}

func TestChordEdit_RemoteCompletedApplied_CommitsChord(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: &state.Selection{MarkerIndex: 2},
	})
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditCompleted,
		CompletingAction: state.CompletingApplied,
		ChordSelection:   &state.Chord{Root: "C", Accidental: "#", Variation: "maj7"},
	})

	f.requireTrace(
		"clear-chord-highlight",
		"commit-chord-edit: C#maj7",
		"set-control: annotation-list=false",
		"set-control: delete-annotation=false",
		"close-chord-editor",
	)
	assert.False(t, f.eng.ChordEditorOpen())
}

func TestChordEdit_RemoteCompletedCanceled_JustCloses(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:    state.ChordEditStarted,
		Selection: &state.Selection{MarkerIndex: 2},
	})
	f.resetTrace()

	f.set(peer, state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditCompleted,
		CompletingAction: state.CompletingCanceled,
	})

	f.requireTrace("clear-chord-highlight", "close-chord-editor")
	f.refuteTrace("commit-chord-edit", "set-control")
}

func TestChordEdit_SelfCompleted_ClearsSharedSelectionAndField(t *testing.T) {
	f := newFixture(t)
	f.stores.EditParams.Set(state.ParamChordSel, state.Selection{MarkerIndex: 5})

	f.setLocal(state.FeatureChordEdit, &state.ChordEditState{
		Status:           state.ChordEditCompleted,
		CompletingAction: state.CompletingApplied,
	})

	_, ok := f.stores.EditParams.Get(state.ParamChordSel)
	assert.False(t, ok, "owner clears the shared chord selection immediately")

	f.advance(200 * time.Millisecond)

	rec := f.dir.States()[f.dir.ClientID()]
	assert.Nil(t, rec.ChordEdit, "owner clears its field after the lease")
}
