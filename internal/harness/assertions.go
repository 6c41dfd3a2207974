package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails. It carries the full
// trace so a failing test prints enough context to debug.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Effects  []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull effect trace:\n")
	for i, effect := range e.Effects {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, effect)
	}
	return buf.String()
}

// evaluate checks one assertion against the effect trace.
func evaluate(effects []string, assertion Assertion) error {
	switch assertion.Type {
	case AssertEffectContains:
		return assertContains(effects, assertion)
	case AssertEffectCount:
		return assertCount(effects, assertion)
	case AssertEffectOrder:
		return assertOrder(effects, assertion)
	default:
		return fmt.Errorf("unknown assertion type %q", assertion.Type)
	}
}

// assertContains checks that some effect string contains the substring.
func assertContains(effects []string, assertion Assertion) error {
	for _, effect := range effects {
		if strings.Contains(effect, assertion.Effect) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertEffectContains,
		Expected: fmt.Sprintf("an effect containing %q", assertion.Effect),
		Actual:   "not found in trace",
		Effects:  effects,
	}
}

// assertCount checks that effects containing the substring appear exactly
// Count times. Count zero asserts absence.
func assertCount(effects []string, assertion Assertion) error {
	count := 0
	for _, effect := range effects {
		if strings.Contains(effect, assertion.Effect) {
			count++
		}
	}
	if count == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertEffectCount,
		Expected: fmt.Sprintf("%d effects containing %q", assertion.Count, assertion.Effect),
		Actual:   fmt.Sprintf("found %d", count),
		Effects:  effects,
	}
}

// assertOrder checks that matching effects appear in the given relative
// order. Matches don't need to be consecutive; each substring matches the
// first effect at or after the previous match.
func assertOrder(effects []string, assertion Assertion) error {
	pos := 0
	for _, expected := range assertion.Effects {
		found := false
		for ; pos < len(effects); pos++ {
			if strings.Contains(effects[pos], expected) {
				found = true
				pos++
				break
			}
		}
		if !found {
			return &AssertionError{
				Type:     AssertEffectOrder,
				Expected: fmt.Sprintf("effects in order: %v", assertion.Effects),
				Actual:   fmt.Sprintf("%q not found after the preceding match", expected),
				Effects:  effects,
			}
		}
	}
	return nil
}
