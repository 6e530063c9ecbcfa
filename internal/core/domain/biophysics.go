package domain

// DefaultBiophysicsID is the id given to biophysical properties created by nmlcell.
const DefaultBiophysicsID = "biophys"

// Ion species tags used by channel densities.
const (
	IonNonSpecific = "non_specific"
	IonSodium      = "na"
	IonPotassium   = "k"
	IonCalcium     = "ca"
)

// BiophysicalProperties groups the membrane and intracellular properties of a cell.
type BiophysicalProperties struct {
	ID            string
	Membrane      MembraneProperties
	Intracellular IntracellularProperties

	// Extra is content carried through unchanged, e.g. extracellular properties.
	Extra []Element
}

// MembraneProperties holds channel densities and membrane scalars.
type MembraneProperties struct {
	ChannelDensities     []ChannelDensity
	SpecificCapacitances []SpecificCapacitance

	// InitMembPotential is nil until set. It applies to the whole cell.
	InitMembPotential *Quantity

	// Extra holds other mechanisms (channelDensityNernst, spikeThresh, ...)
	// carried through unchanged.
	Extra []Element
}

// IntracellularProperties holds axial resistivity per group.
type IntracellularProperties struct {
	Resistivities []Resistivity

	// Extra holds e.g. species definitions, carried through unchanged.
	Extra []Element
}

// ChannelDensity assigns a conductance per area of an ion channel to a segment group.
type ChannelDensity struct {
	// ID is unique among the channel densities of one cell.
	ID string

	// IonChannel is the id of the channel's kinetic definition.
	IonChannel string

	// CondDensity is the conductance per area.
	CondDensity Quantity

	// Erev is the reversal potential.
	Erev Quantity

	// SegmentGroup is the target group id.
	SegmentGroup string

	// Ion is the ion species tag, e.g. "non_specific".
	Ion string
}

// SpecificCapacitance is the membrane capacitance per area on a group.
type SpecificCapacitance struct {
	Value        Quantity
	SegmentGroup string
}

// Resistivity is the axial resistivity on a group.
type Resistivity struct {
	Value        Quantity
	SegmentGroup string
}

// ChannelDensity returns the channel density with the given id.
func (b *BiophysicalProperties) ChannelDensity(id string) (*ChannelDensity, bool) {
	for i := range b.Membrane.ChannelDensities {
		if b.Membrane.ChannelDensities[i].ID == id {
			return &b.Membrane.ChannelDensities[i], true
		}
	}
	return nil, false
}

// SpecificCapacitance returns the capacitance set on group.
func (b *BiophysicalProperties) SpecificCapacitance(group string) (Quantity, bool) {
	for _, c := range b.Membrane.SpecificCapacitances {
		if c.SegmentGroup == group {
			return c.Value, true
		}
	}
	return Quantity{}, false
}

// Resistivity returns the resistivity set on group.
func (b *BiophysicalProperties) Resistivity(group string) (Quantity, bool) {
	for _, r := range b.Intracellular.Resistivities {
		if r.SegmentGroup == group {
			return r.Value, true
		}
	}
	return Quantity{}, false
}
