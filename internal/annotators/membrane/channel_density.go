// Package membrane provides the annotation steps that set membrane and
// intracellular properties.
package membrane

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// ChannelDensitySpec is the textual form of a channel density step.
type ChannelDensitySpec struct {
	ID          string
	IonChannel  string
	CondDensity string
	Erev        string
	Group       string
	Ion         string
	File        string
}

// ChannelDensity adds one channel density to a cell.
type ChannelDensity struct {
	density domain.ChannelDensity
	file    string
}

// NewChannelDensity parses spec. Group defaults to all and Ion to non_specific.
func NewChannelDensity(spec ChannelDensitySpec) (*ChannelDensity, error) {
	cond, err := domain.ParseQuantityOf(spec.CondDensity, domain.DimensionConductanceDensity)
	if err != nil {
		return nil, fmt.Errorf("cond_density: %w", err)
	}
	erev, err := domain.ParseQuantityOf(spec.Erev, domain.DimensionVoltage)
	if err != nil {
		return nil, fmt.Errorf("erev: %w", err)
	}
	if spec.Group == "" {
		spec.Group = domain.GroupAll
	}
	if spec.Ion == "" {
		spec.Ion = domain.IonNonSpecific
	}
	return &ChannelDensity{
		density: domain.ChannelDensity{
			ID:           spec.ID,
			IonChannel:   spec.IonChannel,
			CondDensity:  cond,
			Erev:         erev,
			SegmentGroup: spec.Group,
			Ion:          spec.Ion,
		},
		file: spec.File,
	}, nil
}

// Name returns the step name.
func (a *ChannelDensity) Name() string {
	return domain.StepChannelDensity + ":" + a.density.ID
}

// Annotate adds the density and includes its channel file in doc.
func (a *ChannelDensity) Annotate(_ context.Context, doc *domain.Document, cell *domain.Cell) error {
	return cell.AddChannelDensity(doc, a.density, a.file)
}
