// Package engine implements the awareness reconciliation engine.
//
// The engine is the heart of the session: it observes the replicated
// awareness directory, drives the five per-feature state machines, diffs
// the roster, and keeps the shared session stores consistent with every
// transition.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// The engine processes all events in a single goroutine for deterministic
// behavior. This ensures:
// - Predictable reaction order across feature channels
// - Reproducible effect traces for golden comparison
// - Simple reasoning about causality
//
// Event Processing Flow:
// 1. Directory notifications and timer firings enqueue events (FIFO)
// 2. Engine.Run() dequeues events one at a time
// 3. processEvent() routes to the roster reconciler, the feature
//    dispatcher, or reception housekeeping
// 4. Reducers return effect lists; the boundary executor applies them to
//    the UI surface and optionally journals them
//
// Self/remote bifurcation:
// Every reaction is branched on whether the changed record belongs to the
// local client. The self branch advances the local machine (scheduling
// deferred transitions, mutating shared stores); the other branch performs
// the externally visible reaction. Never both for the same event.
//
// Manufactured ordering:
// The broadcast channel provides no ordering between peers. Causal order
// within a feature is manufactured with asymmetric delays: a self-side
// advance delay must be strictly shorter than any remote catch-up delay
// that depends on observing the intermediate status. Delays.Validate()
// enforces every such pair; never tune a delay without it.
//
// ERROR HANDLING: On event processing failure the error is logged with
// full event context and the loop continues. "Log and continue" is
// intentional - retries would make replay non-deterministic. A peer that
// disconnects mid-sequence can leave its feature field in an intermediate
// state; the engine accepts this and the field persists until a later
// session action clears it.
package engine
