// Package harness executes awareness scenarios deterministically.
//
// A scenario scripts one local client's view of a session: peers connect,
// publish feature transitions, virtual time advances, housekeeping ticks
// fire. The harness runs the script against a real engine wired to an
// in-memory directory, a virtual scheduler, and a stub surface, then
// asserts on the ordered list of applied UI effects.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	local:
//	  id: u-alice
//	  name: Alice
//	steps:
//	  - connect: { id: u-bob, name: Bob }
//	  - set:
//	      client: Bob
//	      feature: trackEdit
//	      value: { status: editInitiated, editTime: 12.5 }
//	  - advance: 7s
//	  - tick: true
//	assertions:
//	  - type: effect_contains
//	    effect: "enter-collab-edit: Bob"
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - effect_contains: an effect string containing the substring appears
//   - effect_count: effect strings containing the substring appear exactly N times
//   - effect_order: matching effects appear in the given relative order
//
// # Deterministic Execution
//
// Every run uses fixed client ids, the virtual scheduler, and the stub
// surface, so the same scenario always produces a byte-identical effect
// trace. Golden files snapshot that trace; regenerate with:
//
//	go test ./internal/harness -update
package harness
