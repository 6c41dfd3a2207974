// Package ui is the projection boundary between the reconciliation engine
// and whatever renders the session.
//
// The engine never touches presentation. Feature reducers return lists of
// Effect values; Apply replays them against a Surface implementation at the
// boundary. Every effect renders as a stable one-line string, which is what
// scenario assertions and golden trace files compare against.
//
// Surface also carries the few read-only queries the engine needs from the
// presentation side: the authoritative marker list, the track duration, and
// avatar URL resolution.
package ui
