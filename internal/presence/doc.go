// Package presence defines the contracts the reconciliation engine consumes
// from the replication layer: the awareness directory (client id -> record)
// and the shared keyed stores (last-writer-wins maps replicated to every
// peer).
//
// The production replication transport is external to this repository. The
// in-memory implementations here replicate nothing; they exist so the
// simulator, the harness, and the tests can drive the engine through the
// exact same interfaces a networked directory would present: a membership
// notification carrying added/removed client ids, and a payload-free
// "something changed" notification after which consumers re-read the full
// state.
package presence
