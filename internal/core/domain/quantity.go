package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dimension names the physical dimension a NeuroML quantity must carry.
type Dimension string

// Dimensions used by the properties nmlcell sets.
const (
	DimensionVoltage             Dimension = "voltage"
	DimensionConductance         Dimension = "conductance"
	DimensionConductanceDensity  Dimension = "conductanceDensity"
	DimensionResistivity         Dimension = "resistivity"
	DimensionSpecificCapacitance Dimension = "specificCapacitance"
	DimensionPerTime             Dimension = "per_time"
)

// dimensionUnits lists the unit symbols NeuroML v2 accepts per dimension.
var dimensionUnits = map[Dimension][]string{
	DimensionVoltage:             {"V", "mV"},
	DimensionConductance:         {"S", "mS", "uS", "nS", "pS"},
	DimensionConductanceDensity:  {"S_per_m2", "mS_per_cm2", "S_per_cm2"},
	DimensionResistivity:         {"ohm_m", "kohm_cm", "ohm_cm"},
	DimensionSpecificCapacitance: {"F_per_m2", "uF_per_cm2"},
	DimensionPerTime:             {"per_s", "per_ms", "Hz"},
}

var quantityPattern = regexp.MustCompile(
	`^\s*(-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE]-?[0-9]+)?)\s*([A-Za-z][A-Za-z0-9_]*)\s*$`,
)

// Quantity is a NeuroML value together with its unit symbol.
// The text it was parsed from is kept so serialization round-trips it unchanged.
type Quantity struct {
	Value float64
	Unit  string
	text  string
}

// ParseQuantity parses strings such as "-80mV" or "0.00003 S_per_cm2".
func ParseQuantity(s string) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a NeuroML quantity", ErrInvalidInput, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q: %w", ErrInvalidInput, s, err)
	}
	return Quantity{Value: v, Unit: m[2], text: strings.TrimSpace(s)}, nil
}

// ParseQuantityOf parses s and checks that its unit belongs to dim.
func ParseQuantityOf(s string, dim Dimension) (Quantity, error) {
	q, err := ParseQuantity(s)
	if err != nil {
		return Quantity{}, err
	}
	if !q.Is(dim) {
		return Quantity{}, fmt.Errorf("%w: %q is not a %s quantity", ErrInvalidInput, s, dim)
	}
	return q, nil
}

// MustQuantity is ParseQuantityOf for parameter tables known to be valid.
func MustQuantity(s string, dim Dimension) Quantity {
	q, err := ParseQuantityOf(s, dim)
	if err != nil {
		panic(err)
	}
	return q
}

// Is reports whether the quantity's unit belongs to dim.
func (q Quantity) Is(dim Dimension) bool {
	for _, u := range dimensionUnits[dim] {
		if u == q.Unit {
			return true
		}
	}
	return false
}

// IsZero reports whether the quantity was never set.
func (q Quantity) IsZero() bool {
	return q.Unit == "" && q.text == ""
}

// String returns the NeuroML text form of the quantity.
func (q Quantity) String() string {
	if q.text != "" {
		return q.text
	}
	if q.Unit == "" {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + q.Unit
}

// Units returns the unit symbols accepted for dim.
func Units(dim Dimension) []string {
	units := dimensionUnits[dim]
	out := make([]string, len(units))
	copy(out, units)
	return out
}
