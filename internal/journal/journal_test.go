package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, j2.Close())
}

func TestJournal_RecordAndReadBack(t *testing.T) {
	j := openTemp(t)

	require.NoError(t, j.Record(1, "membership", "added=1 removed=0", []string{
		"set-presence: Alice=online",
		"render-roster: Alice(online)",
	}))
	require.NoError(t, j.Record(2, "state-change", "", nil))

	entries, err := j.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, "membership", entries[0].Kind)
	assert.Equal(t, "added=1 removed=0", entries[0].Detail)
	assert.Equal(t, []string{
		"set-presence: Alice=online",
		"render-roster: Alice(online)",
	}, entries[0].Effects, "effects keep application order")

	assert.Equal(t, int64(2), entries[1].Seq)
	assert.Empty(t, entries[1].Effects)
	assert.NotEmpty(t, entries[0].RecordedAt)
}

func TestJournal_Record_DuplicateSeqIgnored(t *testing.T) {
	j := openTemp(t)

	require.NoError(t, j.Record(1, "tick", "", []string{"enable-backing-control: rec-1"}))
	require.NoError(t, j.Record(1, "tick", "", []string{"something-else"}))

	entries, err := j.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"enable-backing-control: rec-1"}, entries[0].Effects,
		"the original effects survive a duplicate write")
}

func TestJournal_ReadRange(t *testing.T) {
	j := openTemp(t)

	for seq := int64(1); seq <= 5; seq++ {
		require.NoError(t, j.Record(seq, "tick", "", nil))
	}

	entries, err := j.ReadRange(2, 4)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(2), entries[0].Seq)
	assert.Equal(t, int64(4), entries[2].Seq)
}

func TestJournal_LastSeq(t *testing.T) {
	j := openTemp(t)

	seq, err := j.LastSeq()
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq, "empty journal reports 0")

	require.NoError(t, j.Record(7, "tick", "", nil))
	seq, err = j.LastSeq()
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
}

func TestJournal_ReadAll_Empty(t *testing.T) {
	j := openTemp(t)

	entries, err := j.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
