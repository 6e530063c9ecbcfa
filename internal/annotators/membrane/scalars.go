package membrane

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// Resistivity sets the axial resistivity of a segment group.
type Resistivity struct {
	value domain.Quantity
	group string
}

// NewResistivity parses value, e.g. "0.1 kohm_cm".
func NewResistivity(value, group string) (*Resistivity, error) {
	q, err := domain.ParseQuantityOf(value, domain.DimensionResistivity)
	if err != nil {
		return nil, err
	}
	return &Resistivity{value: q, group: group}, nil
}

// Name returns the step name.
func (a *Resistivity) Name() string {
	return domain.StepResistivity
}

// Annotate sets the value, replacing any earlier one on the same group.
func (a *Resistivity) Annotate(_ context.Context, _ *domain.Document, cell *domain.Cell) error {
	return cell.SetResistivity(a.value, a.group)
}

// SpecificCapacitance sets the membrane capacitance per area of a segment group.
type SpecificCapacitance struct {
	value domain.Quantity
	group string
}

// NewSpecificCapacitance parses value, e.g. "1 uF_per_cm2".
func NewSpecificCapacitance(value, group string) (*SpecificCapacitance, error) {
	q, err := domain.ParseQuantityOf(value, domain.DimensionSpecificCapacitance)
	if err != nil {
		return nil, err
	}
	return &SpecificCapacitance{value: q, group: group}, nil
}

// Name returns the step name.
func (a *SpecificCapacitance) Name() string {
	return domain.StepSpecificCapacitance
}

// Annotate sets the value, replacing any earlier one on the same group.
func (a *SpecificCapacitance) Annotate(_ context.Context, _ *domain.Document, cell *domain.Cell) error {
	return cell.SetSpecificCapacitance(a.value, a.group)
}

// InitMembPotential sets the resting potential of the whole cell.
type InitMembPotential struct {
	value domain.Quantity
}

// NewInitMembPotential parses value, e.g. "-80mV".
func NewInitMembPotential(value string) (*InitMembPotential, error) {
	q, err := domain.ParseQuantityOf(value, domain.DimensionVoltage)
	if err != nil {
		return nil, err
	}
	return &InitMembPotential{value: q}, nil
}

// Name returns the step name.
func (a *InitMembPotential) Name() string {
	return domain.StepInitMembPotential
}

// Annotate sets the value.
func (a *InitMembPotential) Annotate(_ context.Context, _ *domain.Document, cell *domain.Cell) error {
	return cell.SetInitMembPotential(a.value)
}
