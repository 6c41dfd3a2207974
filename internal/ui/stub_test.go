package ui

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/state"
)

func TestStubCounts(t *testing.T) {
	stub := NewStub()
	assert.Equal(t, 0, stub.Calls("notify"))

	stub.Notify("hello", SeverityInfo)
	stub.Notify("again", SeverityInfo)
	stub.SeekPlayback(3.5)

	assert.Equal(t, 2, stub.Calls("notify"))
	assert.Equal(t, 1, stub.Calls("seek-playback"))
}

func TestStubQueries(t *testing.T) {
	stub := NewStub()
	assert.Equal(t, float64(180), stub.TrackDuration())
	assert.Equal(t, []float64{0, 1.5, 3, 4.5}, stub.MarkerTimes())
	assert.Equal(t, "/avatars/u-bob.png", stub.AvatarURL("u-bob"))

	// MarkerTimes hands out a copy.
	times := stub.MarkerTimes()
	times[0] = 99
	assert.Equal(t, float64(0), stub.MarkerTimes()[0])
}

func TestLoggerProjectsEffects(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, nil))
	surface := NewLogger(log)

	Apply(surface,
		SetPresence{Participant: "Bob", Online: true},
		OpenChordEditor{Selection: state.Selection{MarkerIndex: 2}},
	)

	out := buf.String()
	assert.Contains(t, out, "effect=set-presence")
	assert.Contains(t, out, "set-presence: Bob=online")
	assert.Contains(t, out, "open-chord-editor: marker 2")

	// The embedded stub still counts, so tests can assert on both.
	require.Equal(t, 1, surface.Calls("set-presence"))
	require.Equal(t, 1, surface.Calls("open-chord-editor"))
}

func TestLoggerNilFallsBackToDefault(t *testing.T) {
	surface := NewLogger(nil)
	require.NotNil(t, surface)
}
