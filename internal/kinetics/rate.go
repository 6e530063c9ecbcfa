package kinetics

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// Rate is an HHRate reduced to float32 parameters in mV and per_ms.
type Rate struct {
	Type     domain.RateType
	R        float32
	Midpoint float32
	Scale    float32
}

// FromHHRate converts a model rate. Returns domain.ErrUnsupportedType for
// an unknown rate form and domain.ErrInvalidInput for units it cannot scale.
func FromHHRate(r *domain.HHRate) (Rate, error) {
	if r == nil {
		return Rate{}, fmt.Errorf("%w: rate is nil", domain.ErrInvalidInput)
	}
	if !r.Type.IsValid() {
		return Rate{}, fmt.Errorf("%w: rate type %q", domain.ErrUnsupportedType, r.Type)
	}
	rate, err := perMs(r.Rate)
	if err != nil {
		return Rate{}, err
	}
	mid, err := MilliVolts(r.Midpoint)
	if err != nil {
		return Rate{}, err
	}
	scale, err := MilliVolts(r.Scale)
	if err != nil {
		return Rate{}, err
	}
	if scale == 0 {
		return Rate{}, fmt.Errorf("%w: scale must not be zero", domain.ErrInvalidInput)
	}
	return Rate{Type: r.Type, R: rate, Midpoint: mid, Scale: scale}, nil
}

// At returns the rate at membrane potential v (mV) in per_ms.
func (r Rate) At(v float32) float32 {
	x := (v - r.Midpoint) / r.Scale
	switch r.Type {
	case domain.RateTypeExp:
		return r.R * math32.Exp(x)
	case domain.RateTypeSigmoid:
		return r.R / (1 + math32.Exp(-x))
	case domain.RateTypeExpLinear:
		if math32.Abs(x) < 1e-6 {
			// limit of x/(1-exp(-x)) at x=0, first order
			return r.R * (1 + x/2)
		}
		return r.R * x / (1 - math32.Exp(-x))
	default:
		return math32.NaN()
	}
}

// IsFinite reports whether the rate is a finite number at v.
func (r Rate) IsFinite(v float32) bool {
	a := r.At(v)
	return !math32.IsNaN(a) && !math32.IsInf(a, 0)
}

// MilliVolts converts a voltage quantity to mV.
func MilliVolts(q domain.Quantity) (float32, error) {
	switch q.Unit {
	case "mV":
		return float32(q.Value), nil
	case "V":
		return float32(q.Value * 1000), nil
	default:
		return 0, fmt.Errorf("%w: %q is not a voltage", domain.ErrInvalidInput, q)
	}
}

func perMs(q domain.Quantity) (float32, error) {
	switch q.Unit {
	case "per_ms":
		return float32(q.Value), nil
	case "per_s", "Hz":
		return float32(q.Value * 0.001), nil
	default:
		return 0, fmt.Errorf("%w: %q is not a rate", domain.ErrInvalidInput, q)
	}
}
