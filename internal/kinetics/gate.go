package kinetics

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// Gate holds the forward (alpha) and reverse (beta) rates of one gate.
type Gate struct {
	ID        string
	Instances int
	Alpha     Rate
	Beta      Rate
}

// FromGate converts a model gate. Both rates must be set.
func FromGate(g *domain.GateHHRates) (Gate, error) {
	if err := g.Validate(); err != nil {
		return Gate{}, err
	}
	alpha, err := FromHHRate(g.ForwardRate)
	if err != nil {
		return Gate{}, fmt.Errorf("gate %s %s: %w", g.ID, domain.ForwardRate, err)
	}
	beta, err := FromHHRate(g.ReverseRate)
	if err != nil {
		return Gate{}, fmt.Errorf("gate %s %s: %w", g.ID, domain.ReverseRate, err)
	}
	return Gate{ID: g.ID, Instances: g.Instances, Alpha: alpha, Beta: beta}, nil
}

// Inf returns the steady state open fraction alpha/(alpha+beta) at v.
func (g Gate) Inf(v float32) float32 {
	a, b := g.Alpha.At(v), g.Beta.At(v)
	return a / (a + b)
}

// Tau returns the time constant 1/(alpha+beta) at v in ms.
func (g Gate) Tau(v float32) float32 {
	return 1 / (g.Alpha.At(v) + g.Beta.At(v))
}

// Open returns the steady state conductance factor Inf^Instances.
func (g Gate) Open(v float32) float32 {
	return math32.Pow(g.Inf(v), float32(g.Instances))
}

// GateState is a gate evaluated at one voltage.
type GateState struct {
	ID    string
	Alpha float32
	Beta  float32
	Inf   float32
	Tau   float32
}

// SteadyState evaluates every gate of ch at v. It also returns the product
// of the gates' open factors, the fraction of the maximal conductance.
func SteadyState(ch *domain.IonChannelHH, v float32) ([]GateState, float32, error) {
	states := make([]GateState, 0, len(ch.Gates))
	open := float32(1)
	for _, dg := range ch.Gates {
		g, err := FromGate(dg)
		if err != nil {
			return nil, 0, fmt.Errorf("channel %s: %w", ch.ID, err)
		}
		states = append(states, GateState{
			ID:    g.ID,
			Alpha: g.Alpha.At(v),
			Beta:  g.Beta.At(v),
			Inf:   g.Inf(v),
			Tau:   g.Tau(v),
		})
		open *= g.Open(v)
	}
	return states, open, nil
}
