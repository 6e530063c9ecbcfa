package annotators

import (
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/annotators/membrane"
	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// RegisterDefaults registers the built-in annotation steps with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(domain.StepChannelDensity, buildChannelDensity)
	r.Register(domain.StepResistivity, buildResistivity)
	r.Register(domain.StepSpecificCapacitance, buildSpecificCapacitance)
	r.Register(domain.StepInitMembPotential, buildInitMembPotential)
}

// NewDefaultRegistry returns a registry with the built-in steps.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildChannelDensity creates a channel density step.
// Supported config keys:
//   - id, ion_channel, cond_density, erev (string): required
//   - group (string): target segment group (default: all)
//   - ion (string): ion species (default: non_specific)
//   - file (string): channel definition to include
func buildChannelDensity(cfg map[string]any) (driven.Annotator, error) {
	var spec membrane.ChannelDensitySpec
	var err error
	if spec.ID, err = requireString(cfg, "id"); err != nil {
		return nil, err
	}
	if spec.IonChannel, err = requireString(cfg, "ion_channel"); err != nil {
		return nil, err
	}
	if spec.CondDensity, err = requireString(cfg, "cond_density"); err != nil {
		return nil, err
	}
	if spec.Erev, err = requireString(cfg, "erev"); err != nil {
		return nil, err
	}
	spec.Group = getStringFromConfig(cfg, "group")
	spec.Ion = getStringFromConfig(cfg, "ion")
	spec.File = getStringFromConfig(cfg, "file")

	return membrane.NewChannelDensity(spec)
}

// buildResistivity creates a resistivity step.
// Supported config keys:
//   - value (string): required, e.g. "0.1 kohm_cm"
//   - group (string): target segment group (default: all)
func buildResistivity(cfg map[string]any) (driven.Annotator, error) {
	value, err := requireString(cfg, "value")
	if err != nil {
		return nil, err
	}
	return membrane.NewResistivity(value, getStringFromConfig(cfg, "group"))
}

// buildSpecificCapacitance creates a specific capacitance step.
// Supported config keys:
//   - value (string): required, e.g. "1 uF_per_cm2"
//   - group (string): target segment group (default: all)
func buildSpecificCapacitance(cfg map[string]any) (driven.Annotator, error) {
	value, err := requireString(cfg, "value")
	if err != nil {
		return nil, err
	}
	return membrane.NewSpecificCapacitance(value, getStringFromConfig(cfg, "group"))
}

// buildInitMembPotential creates an initial membrane potential step.
// Supported config keys:
//   - value (string): required, e.g. "-80mV"
func buildInitMembPotential(cfg map[string]any) (driven.Annotator, error) {
	value, err := requireString(cfg, "value")
	if err != nil {
		return nil, err
	}
	return membrane.NewInitMembPotential(value)
}

// getStringFromConfig extracts a string from a generic config map.
// Numbers are not accepted; NeuroML quantities always carry a unit.
func getStringFromConfig(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}

func requireString(cfg map[string]any, key string) (string, error) {
	s := getStringFromConfig(cfg, key)
	if s == "" {
		return "", fmt.Errorf("%w: missing %q", domain.ErrInvalidInput, key)
	}
	return s, nil
}
