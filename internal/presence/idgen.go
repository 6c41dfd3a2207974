package presence

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tenuto/segno/internal/state"
)

// ClientIDGenerator issues client identifiers for new connections.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type ClientIDGenerator interface {
	Generate() state.ClientID
}

// UUIDv7Generator issues time-sortable UUIDv7 client ids. The embedded
// timestamp makes directory dumps readable in connection order.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 client id.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() state.ClientID {
	return state.ClientID(uuid.Must(uuid.NewV7()).String())
}

// FixedGenerator returns predetermined client ids for deterministic tests
// and golden traces.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []state.ClientID
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed: a test that connects more
// clients than it declared is broken and should fail loudly.
func NewFixedGenerator(ids ...state.ClientID) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() state.ClientID {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("presence: fixed generator exhausted after %d ids", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
