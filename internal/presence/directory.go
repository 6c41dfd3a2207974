package presence

import "github.com/tenuto/segno/internal/state"

// Directory is the engine's view of the replicated awareness map.
//
// The directory provides no ordering or acknowledgment guarantees: a state
// change notification means only that the map content may differ from the
// last read. Consumers re-read the full state and diff it themselves.
type Directory interface {
	// ClientID returns the local client's identifier.
	ClientID() state.ClientID

	// LocalUser returns the identity the local client publishes.
	LocalUser() state.User

	// States returns a snapshot of every connected client's record.
	// The snapshot is a deep copy; mutating it has no effect.
	States() map[state.ClientID]state.Record

	// SetLocalField publishes (or, with a nil value, clears) one feature
	// field of the local client's record. Only the local record is ever
	// writable; remote records arrive through replication.
	SetLocalField(key state.FeatureKey, value any) error

	// OnChange registers a callback invoked after any record content
	// changes. The callback carries no payload.
	OnChange(fn func())

	// OnMembership registers a callback invoked when clients join or
	// leave, carrying the added and removed client ids.
	OnMembership(fn func(added, removed []state.ClientID))
}

// SharedMap is one replicated keyed store (markers, edit parameters,
// recording reception). Keys are strings; values are last-writer-wins per
// key. Deleting an absent key is a no-op.
type SharedMap interface {
	Set(key string, value any)
	Get(key string) (any, bool)
	Delete(key string)
	Clear()
	Len() int
	// Keys returns the current keys in sorted order. Iteration through a
	// sorted key list keeps every consumer deterministic regardless of
	// insertion order.
	Keys() []string
}

// Stores bundles the three shared session stores the engine mutates in
// lockstep with feature transitions.
type Stores struct {
	Markers    SharedMap
	EditParams SharedMap
	Reception  SharedMap
}

// NewMemoryStores returns a Stores backed by in-memory maps.
func NewMemoryStores() Stores {
	return Stores{
		Markers:    NewMemoryMap(),
		EditParams: NewMemoryMap(),
		Reception:  NewMemoryMap(),
	}
}
