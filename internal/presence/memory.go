package presence

import (
	"fmt"
	"sync"

	"github.com/tenuto/segno/internal/state"
)

// MemoryDirectory is an in-process Directory for the simulator and tests.
//
// One MemoryDirectory plays the role of the whole replicated map as seen by
// a single client: the local client is created at construction and remote
// peers are simulated through Connect, Disconnect, and SetField.
//
// Notifications fire synchronously after each mutation, mirroring the
// replication layer's "membership changed" and payload-free "state changed"
// signals. Subscribers are expected to enqueue work, not to process it
// inside the callback.
type MemoryDirectory struct {
	mu         sync.Mutex
	gen        ClientIDGenerator
	localID    state.ClientID
	records    map[state.ClientID]*state.Record
	change     []func()
	membership []func(added, removed []state.ClientID)
}

// NewMemoryDirectory creates a directory with the local client connected.
func NewMemoryDirectory(local state.User, gen ClientIDGenerator) *MemoryDirectory {
	d := &MemoryDirectory{
		gen:     gen,
		records: make(map[state.ClientID]*state.Record),
	}
	d.localID = gen.Generate()
	d.records[d.localID] = &state.Record{User: local}
	return d
}

// ClientID returns the local client's identifier.
func (d *MemoryDirectory) ClientID() state.ClientID {
	return d.localID
}

// LocalUser returns the identity published by the local client.
func (d *MemoryDirectory) LocalUser() state.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.records[d.localID].User
}

// States returns a deep-copied snapshot of every connected record.
func (d *MemoryDirectory) States() map[state.ClientID]state.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[state.ClientID]state.Record, len(d.records))
	for id, rec := range d.records {
		out[id] = rec.Clone()
	}
	return out
}

// SetLocalField publishes or clears one feature field of the local record.
func (d *MemoryDirectory) SetLocalField(key state.FeatureKey, value any) error {
	return d.SetField(d.localID, key, value)
}

// SetField publishes or clears a feature field of any connected client.
// Used by the simulator to stand in for remote peers' own writes.
func (d *MemoryDirectory) SetField(id state.ClientID, key state.FeatureKey, value any) error {
	d.mu.Lock()
	rec, ok := d.records[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("presence: client %s not connected", id)
	}
	if !rec.SetFeature(key, value) {
		d.mu.Unlock()
		return fmt.Errorf("presence: value type %T does not fit feature %q", value, key)
	}
	change := append([]func(){}, d.change...)
	d.mu.Unlock()

	for _, fn := range change {
		fn()
	}
	return nil
}

// Connect adds a simulated remote client and returns its id.
func (d *MemoryDirectory) Connect(u state.User) state.ClientID {
	d.mu.Lock()
	id := d.gen.Generate()
	d.records[id] = &state.Record{User: u}
	membership := append([]func(added, removed []state.ClientID){}, d.membership...)
	change := append([]func(){}, d.change...)
	d.mu.Unlock()

	for _, fn := range membership {
		fn([]state.ClientID{id}, nil)
	}
	for _, fn := range change {
		fn()
	}
	return id
}

// Disconnect removes a simulated remote client. Removing an unknown id is
// a no-op.
func (d *MemoryDirectory) Disconnect(id state.ClientID) {
	d.mu.Lock()
	if _, ok := d.records[id]; !ok {
		d.mu.Unlock()
		return
	}
	delete(d.records, id)
	membership := append([]func(added, removed []state.ClientID){}, d.membership...)
	d.mu.Unlock()

	for _, fn := range membership {
		fn(nil, []state.ClientID{id})
	}
}

// OnChange registers a state-change subscriber.
func (d *MemoryDirectory) OnChange(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.change = append(d.change, fn)
}

// OnMembership registers a membership subscriber.
func (d *MemoryDirectory) OnMembership(fn func(added, removed []state.ClientID)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.membership = append(d.membership, fn)
}
