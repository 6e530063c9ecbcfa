package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  string
	}{
		{"-80mV", -80, "mV"},
		{"-51 mV", -51, "mV"},
		{"0.00003 S_per_cm2", 0.00003, "S_per_cm2"},
		{".0000975 S_per_cm2", 0.0000975, "S_per_cm2"},
		{"0.1 kohm_cm", 0.1, "kohm_cm"},
		{"35.4 ohm_cm", 35.4, "ohm_cm"},
		{"1 uF_per_cm2", 1, "uF_per_cm2"},
		{"10pS", 10, "pS"},
		{"0.07per_ms", 0.07, "per_ms"},
		{"1e-3 S_per_cm2", 0.001, "S_per_cm2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := ParseQuantity(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.value, q.Value, 1e-12)
			assert.Equal(t, tt.unit, q.Unit)
			assert.Equal(t, tt.in, q.String())
		})
	}
}

func TestParseQuantity_Invalid(t *testing.T) {
	for _, in := range []string{"", "mV", "80", "-", "1.2.3mV", "10 pS extra"} {
		_, err := ParseQuantity(in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestParseQuantityOf_ChecksDimension(t *testing.T) {
	_, err := ParseQuantityOf("-80mV", DimensionVoltage)
	assert.NoError(t, err)

	_, err = ParseQuantityOf("-80mV", DimensionResistivity)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseQuantityOf("1per_ms", DimensionPerTime)
	assert.NoError(t, err)
}

func TestQuantity_StringWithoutText(t *testing.T) {
	q := Quantity{Value: -65, Unit: "mV"}
	assert.Equal(t, "-65mV", q.String())
	assert.True(t, Quantity{}.IsZero())
	assert.False(t, q.IsZero())
}

func TestMustQuantity_Panics(t *testing.T) {
	assert.Panics(t, func() { MustQuantity("1 ohm_cm", DimensionVoltage) })
	assert.NotPanics(t, func() { MustQuantity("1 ohm_cm", DimensionResistivity) })
}

func TestUnits_ReturnsCopy(t *testing.T) {
	units := Units(DimensionVoltage)
	units[0] = "changed"
	assert.Equal(t, []string{"V", "mV"}, Units(DimensionVoltage))
}
