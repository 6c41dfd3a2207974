package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/testutil"
)

func TestRoster_Connect_RendersAndSyncsReception(t *testing.T) {
	f := newFixture(t)

	f.connect("Bob", "u-bob")

	f.requireTrace(
		"set-presence: Alice=online",
		"set-presence: Bob=online",
		"render-roster: Alice(online),Bob(online)",
	)

	// Both names join the reception list unacknowledged.
	require.Equal(t, []string{"Alice", "Bob"}, f.stores.Reception.Keys())
	v, _ := f.stores.Reception.Get("Bob")
	assert.Equal(t, false, v)
}

func TestRoster_Disconnect_MarksOfflineAndExposesDeletes(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.resetTrace()

	f.disconnect(peer)

	f.requireTrace(
		"set-delete-visible: Bob=true",
		"set-presence: Bob=offline",
		"set-presence: Alice=online",
		"render-roster: Alice(online),Bob(offline)",
	)

	// Departed names leave the reception list.
	assert.Equal(t, []string{"Alice"}, f.stores.Reception.Keys())
}

func TestRoster_Reconnect_RestoresDeleteExclusivity(t *testing.T) {
	f := newFixture(t)
	peer := f.connect("Bob", "u-bob")
	f.disconnect(peer)
	f.resetTrace()

	// The same person reconnects under a fresh client id.
	f.connect("Bob", "u-bob")

	f.requireTrace(
		"set-delete-visible: Bob=false",
		"set-presence: Bob=online",
		"render-roster: Alice(online),Bob(online)",
	)
}

func TestRoster_NamesDeduplicateUnderNormalization(t *testing.T) {
	f := newFixture(t)

	// "José" composed, then the same name with a combining accent.
	f.connect("José", "u-jose")
	f.resetTrace()
	f.connect("José", "u-jose-2")

	f.requireTrace("render-roster: Alice(online),José(online)")
	f.refuteTrace("José(offline)")
}

func TestRoster_DisconnectedSortAfterConnected(t *testing.T) {
	f := newFixture(t)
	bob := f.connect("Bob", "u-bob")
	f.connect("Cara", "u-cara")
	f.resetTrace()

	f.disconnect(bob)

	f.requireTrace("render-roster: Alice(online),Cara(online),Bob(offline)")
}

func TestRoster_NoMembershipChange_NoRosterEffects(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()

	// A bare tick runs reception housekeeping only.
	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	f.refuteTrace("render-roster", "set-presence")
}

func TestReception_AllAcknowledged_UnlocksControls(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()

	// Bob announced a recording; Alice acknowledged it.
	f.stores.Reception.Set("Bob", "rec-123")
	f.stores.Reception.Set("Alice", true)

	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	f.requireTrace("enable-backing-control: rec-123")
	f.refuteTrace("enable-delete-control")

	// The list resets for the next announcement.
	v, _ := f.stores.Reception.Get("Alice")
	assert.Equal(t, false, v)
	v, _ = f.stores.Reception.Get("Bob")
	assert.Equal(t, false, v)
}

func TestReception_LocalRecorder_AlsoUnlocksDelete(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()

	f.stores.Reception.Set("Alice", "rec-9")
	f.stores.Reception.Set("Bob", true)

	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	f.requireTrace(
		"enable-backing-control: rec-9",
		"enable-delete-control: rec-9",
	)
}

func TestReception_PendingAcknowledgment_Waits(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()

	// Alice has not received Bob's audio yet.
	f.stores.Reception.Set("Bob", "rec-123")

	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	f.refuteTrace("enable-backing-control")
	v, _ := f.stores.Reception.Get("Bob")
	assert.Equal(t, "rec-123", v, "a pending sweep must not reset the list")
}

func TestReception_UnexpectedEntryType_IgnoredAndLogged(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()
	logs := testutil.CaptureLogs(t)

	f.stores.Reception.Set("Bob", "rec-123")
	f.stores.Reception.Set("Alice", true)
	f.stores.Reception.Set("Cara", 42)

	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	// An entry of unknown type never blocks the sweep.
	f.requireTrace("enable-backing-control: rec-123")
	assert.Contains(t, logs.String(), "reception entry of unexpected type")
	assert.Contains(t, logs.String(), "Cara")
}

func TestReception_NoAnnouncement_Noop(t *testing.T) {
	f := newFixture(t)
	f.connect("Bob", "u-bob")
	f.resetTrace()

	// Everyone acknowledged but nothing was announced.
	f.stores.Reception.Set("Alice", true)
	f.stores.Reception.Set("Bob", true)

	f.eng.Enqueue(Event{Type: EventTick})
	f.eng.Drain()

	f.refuteTrace("enable-backing-control", "enable-delete-control")
}
