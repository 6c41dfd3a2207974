package presence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenuto/segno/internal/state"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()
	assert.NotEqual(t, first, second)

	parsed, err := uuid.Parse(string(first))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFixedGeneratorOrder(t *testing.T) {
	gen := NewFixedGenerator("local", "peer-1")
	assert.Equal(t, state.ClientID("local"), gen.Generate())
	assert.Equal(t, state.ClientID("peer-1"), gen.Generate())
}

func TestFixedGeneratorExhaustion(t *testing.T) {
	gen := NewFixedGenerator("only")
	gen.Generate()
	assert.Panics(t, func() { gen.Generate() })
}
