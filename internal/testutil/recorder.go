// Package testutil carries small deterministic helpers shared by the
// engine harness and the package tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/tenuto/segno/internal/ui"
)

// Recorder collects applied effect strings in application order.
//
// Register Observe with engine.WithObserver; the recorded lines become the
// scenario trace that assertions and golden files compare against.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, though under the single-writer loop only one goroutine observes.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Observe appends one applied effect. Pass to engine.WithObserver.
func (r *Recorder) Observe(eff ui.Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, eff.String())
}

// Lines returns a copy of the recorded effect strings.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// ContainsLine reports whether any recorded line contains substr.
func (r *Recorder) ContainsLine(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
