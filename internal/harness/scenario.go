package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tenuto/segno/internal/engine"
	"github.com/tenuto/segno/internal/state"
)

// Scenario scripts one session from the local client's point of view.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named
	// after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Local is the local client's identity. Defaults to Alice/u-alice
	// when omitted.
	Local *state.User `yaml:"local,omitempty"`

	// Delays overrides individual sequencing delays. Non-zero fields are
	// merged onto the defaults and the result is validated.
	Delays *engine.Delays `yaml:"delays,omitempty"`

	// Steps is the ordered script. Each step carries exactly one action.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final effect trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scripted action. Exactly one field must be set.
type Step struct {
	// Connect adds a simulated peer.
	Connect *state.User `yaml:"connect,omitempty"`

	// Disconnect removes a peer by name.
	Disconnect *ClientRef `yaml:"disconnect,omitempty"`

	// Set publishes a peer's feature sub-state. A nil value clears the
	// field, simulating lease expiry.
	Set *SetStep `yaml:"set,omitempty"`

	// SetLocal publishes the local client's feature sub-state.
	SetLocal *SetLocalStep `yaml:"set_local,omitempty"`

	// SetParam writes one shared edit parameter.
	SetParam *ParamStep `yaml:"set_param,omitempty"`

	// SetReception writes one reception-list entry.
	SetReception *ParamStep `yaml:"set_reception,omitempty"`

	// Advance moves virtual time forward, firing due continuations.
	Advance engine.Duration `yaml:"advance,omitempty"`

	// Tick runs one housekeeping sweep.
	Tick bool `yaml:"tick,omitempty"`
}

// ClientRef names a previously connected peer.
type ClientRef struct {
	Client string `yaml:"client"`
}

// SetStep publishes a feature sub-state on behalf of a peer.
type SetStep struct {
	Client  string         `yaml:"client"`
	Feature string         `yaml:"feature"`
	Value   map[string]any `yaml:"value,omitempty"`
}

// SetLocalStep publishes a feature sub-state of the local client.
type SetLocalStep struct {
	Feature string         `yaml:"feature"`
	Value   map[string]any `yaml:"value,omitempty"`
}

// ParamStep writes one key of a shared store.
type ParamStep struct {
	Key   string `yaml:"key"`
	Value any    `yaml:"value"`
}

// Assertion validates the final effect trace.
type Assertion struct {
	// Type is one of effect_contains, effect_count, effect_order.
	Type string `yaml:"type"`

	// Effect is the substring matched against effect strings
	// (effect_contains, effect_count).
	Effect string `yaml:"effect,omitempty"`

	// Count is the expected number of matches (effect_count).
	Count int `yaml:"count"`

	// Effects lists substrings expected in relative order (effect_order).
	Effects []string `yaml:"effects,omitempty"`
}

// Assertion type constants.
const (
	AssertEffectContains = "effect_contains"
	AssertEffectCount    = "effect_count"
	AssertEffectOrder    = "effect_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected, catching typos like "assertion:" for
// "assertions:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and step well-formedness.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Delays != nil {
		if err := engine.DefaultDelays().Override(*s.Delays).Validate(); err != nil {
			return fmt.Errorf("delays: %w", err)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	actions := 0
	if step.Connect != nil {
		actions++
		if step.Connect.Name == "" {
			return fmt.Errorf("steps[%d].connect: name is required", index)
		}
	}
	if step.Disconnect != nil {
		actions++
		if step.Disconnect.Client == "" {
			return fmt.Errorf("steps[%d].disconnect: client is required", index)
		}
	}
	if step.Set != nil {
		actions++
		if step.Set.Client == "" {
			return fmt.Errorf("steps[%d].set: client is required", index)
		}
		if !state.FeatureKey(step.Set.Feature).Valid() {
			return fmt.Errorf("steps[%d].set: unknown feature %q", index, step.Set.Feature)
		}
	}
	if step.SetLocal != nil {
		actions++
		if !state.FeatureKey(step.SetLocal.Feature).Valid() {
			return fmt.Errorf("steps[%d].set_local: unknown feature %q", index, step.SetLocal.Feature)
		}
	}
	if step.SetParam != nil {
		actions++
		if step.SetParam.Key == "" {
			return fmt.Errorf("steps[%d].set_param: key is required", index)
		}
	}
	if step.SetReception != nil {
		actions++
		if step.SetReception.Key == "" {
			return fmt.Errorf("steps[%d].set_reception: key is required", index)
		}
	}
	if step.Advance != 0 {
		actions++
		if step.Advance.Std() < 0 {
			return fmt.Errorf("steps[%d].advance: must be positive", index)
		}
	}
	if step.Tick {
		actions++
	}

	if actions == 0 {
		return fmt.Errorf("steps[%d]: empty step", index)
	}
	if actions > 1 {
		return fmt.Errorf("steps[%d]: exactly one action per step", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertEffectContains:
		if a.Effect == "" {
			return fmt.Errorf("assertions[%d]: effect is required for effect_contains", index)
		}
	case AssertEffectCount:
		if a.Effect == "" {
			return fmt.Errorf("assertions[%d]: effect is required for effect_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertEffectOrder:
		if len(a.Effects) < 2 {
			return fmt.Errorf("assertions[%d]: effect_order needs at least two effects", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
