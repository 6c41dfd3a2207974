// Package state defines the wire shapes replicated through the presence
// directory: the per-client awareness record, the five feature sub-states,
// and the values held by the shared session stores (markers, edit
// parameters, recording reception).
//
// Every status field is a closed typed-string enum. Dispatch code switches
// exhaustively over the declared constants; unrecognized wire values are
// ignored rather than rejected so that newer peers can carry fields older
// peers do not understand.
//
// All of these types are ephemeral session state. A feature field is
// present on a record only while the owning client is performing that
// activity, and the owning client is the only writer of its own record.
package state
