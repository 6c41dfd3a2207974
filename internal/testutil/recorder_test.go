package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/ui"
)

func TestRecorderCollectsInOrder(t *testing.T) {
	rec := &Recorder{}
	rec.Observe(ui.SetPresence{Participant: "Alice", Online: true})
	rec.Observe(ui.SeekPlayback{Time: 12.5})

	require.Equal(t, []string{
		"set-presence: Alice=online",
		"seek-playback: 12.5",
	}, rec.Lines())

	assert.True(t, rec.ContainsLine("seek-playback"))
	assert.False(t, rec.ContainsLine("render-roster"))
}

func TestRecorderLinesIsACopy(t *testing.T) {
	rec := &Recorder{}
	rec.Observe(ui.CloseChordEditor{})

	lines := rec.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "close-chord-editor", rec.Lines()[0])
}

func TestRecorderReset(t *testing.T) {
	rec := &Recorder{}
	rec.Observe(ui.RevealGroupPlayback{})
	rec.Reset()
	assert.Empty(t, rec.Lines())
	assert.False(t, rec.ContainsLine("reveal"))
}

func TestCaptureLogs(t *testing.T) {
	buf := CaptureLogs(t)
	slog.Debug("event processed", "seq", 1)
	assert.Contains(t, buf.String(), "event processed")
	assert.Contains(t, buf.String(), "seq=1")
}

func TestSilence(t *testing.T) {
	Silence(t)
	// Nothing to assert beyond not panicking; the log output goes nowhere.
	slog.Info("discarded")
}
