package domain

import "fmt"

// RateType selects the functional form of a Hodgkin-Huxley rate.
type RateType string

// Rate forms understood by NeuroML.
const (
	RateTypeExp       RateType = "HHExpRate"
	RateTypeExpLinear RateType = "HHExpLinearRate"
	RateTypeSigmoid   RateType = "HHSigmoidRate"
)

// IsValid returns true if the rate type is recognised.
func (t RateType) IsValid() bool {
	switch t {
	case RateTypeExp, RateTypeExpLinear, RateTypeSigmoid:
		return true
	default:
		return false
	}
}

// RateKind says which slot of a gate a rate fills.
type RateKind int

// Rate slots of a GateHHRates.
const (
	ForwardRate RateKind = iota
	ReverseRate
)

// String returns the NeuroML element name for the slot.
func (k RateKind) String() string {
	switch k {
	case ForwardRate:
		return "forwardRate"
	case ReverseRate:
		return "reverseRate"
	default:
		return fmt.Sprintf("RateKind(%d)", int(k))
	}
}

// HHRate is one rate function: rate constant, midpoint voltage and scale.
type HHRate struct {
	Type     RateType
	Rate     Quantity
	Midpoint Quantity
	Scale    Quantity
}

// NewHHRate parses and checks the three rate parameters.
func NewHHRate(t RateType, rate, midpoint, scale string) (*HHRate, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: rate type %q", ErrUnsupportedType, t)
	}
	r, err := ParseQuantityOf(rate, DimensionPerTime)
	if err != nil {
		return nil, fmt.Errorf("rate: %w", err)
	}
	m, err := ParseQuantityOf(midpoint, DimensionVoltage)
	if err != nil {
		return nil, fmt.Errorf("midpoint: %w", err)
	}
	s, err := ParseQuantityOf(scale, DimensionVoltage)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	if s.Value == 0 {
		return nil, fmt.Errorf("%w: scale must not be zero", ErrInvalidInput)
	}
	return &HHRate{Type: t, Rate: r, Midpoint: m, Scale: s}, nil
}

// GateHHRates is a gate whose open probability follows forward and reverse rates.
type GateHHRates struct {
	ID          string
	Instances   int
	Notes       string
	ForwardRate *HHRate
	ReverseRate *HHRate
}

// NewGateHHRates creates a gate with no rates attached.
func NewGateHHRates(id string, instances int, notes string) (*GateHHRates, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: gate requires an id", ErrInvalidInput)
	}
	if instances < 1 {
		return nil, fmt.Errorf("%w: gate %q instances must be at least 1", ErrInvalidInput, id)
	}
	return &GateHHRates{ID: id, Instances: instances, Notes: notes}, nil
}

// SetRate attaches r to the given slot, replacing any rate already there.
func (g *GateHHRates) SetRate(kind RateKind, r *HHRate) error {
	if r == nil {
		return fmt.Errorf("%w: nil %s for gate %q", ErrInvalidInput, kind, g.ID)
	}
	switch kind {
	case ForwardRate:
		g.ForwardRate = r
	case ReverseRate:
		g.ReverseRate = r
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
	return nil
}

// Rate returns the rate in the given slot, or nil.
func (g *GateHHRates) Rate(kind RateKind) *HHRate {
	switch kind {
	case ForwardRate:
		return g.ForwardRate
	case ReverseRate:
		return g.ReverseRate
	default:
		return nil
	}
}

// Validate checks that both rate slots are filled.
func (g *GateHHRates) Validate() error {
	for _, kind := range []RateKind{ForwardRate, ReverseRate} {
		if g.Rate(kind) == nil {
			return fmt.Errorf("%w: gate %q is missing its %s", ErrValidation, g.ID, kind)
		}
	}
	return nil
}

// IonChannelHH is a Hodgkin-Huxley ion channel.
type IonChannelHH struct {
	ID          string
	Notes       string
	Species     string
	Conductance Quantity
	Gates       []*GateHHRates
}

// NewIonChannelHH creates a channel with no gates.
func NewIonChannelHH(id, species, conductance, notes string) (*IonChannelHH, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: ion channel requires an id", ErrInvalidInput)
	}
	g, err := ParseQuantityOf(conductance, DimensionConductance)
	if err != nil {
		return nil, fmt.Errorf("conductance: %w", err)
	}
	return &IonChannelHH{ID: id, Species: species, Conductance: g, Notes: notes}, nil
}

// AddGate appends a gate. Gate ids must be unique within the channel.
func (c *IonChannelHH) AddGate(g *GateHHRates) error {
	if g == nil {
		return fmt.Errorf("%w: nil gate", ErrInvalidInput)
	}
	if _, ok := c.Gate(g.ID); ok {
		return fmt.Errorf("%w: gate %q on channel %q", ErrDuplicateID, g.ID, c.ID)
	}
	c.Gates = append(c.Gates, g)
	return nil
}

// Gate returns the gate with the given id.
func (c *IonChannelHH) Gate(id string) (*GateHHRates, bool) {
	for _, g := range c.Gates {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Validate checks the channel and all of its gates.
func (c *IonChannelHH) Validate() error {
	if len(c.Gates) == 0 {
		return fmt.Errorf("%w: ion channel %q has no gates", ErrValidation, c.ID)
	}
	for _, g := range c.Gates {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("ion channel %q: %w", c.ID, err)
		}
	}
	return nil
}
