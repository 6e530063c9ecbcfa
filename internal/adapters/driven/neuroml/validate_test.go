package neuroml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

func TestValidator_ValidDocuments(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(pasCell(t)))
	assert.NoError(t, v.Validate(naChannel(t)))
}

func TestValidator_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *domain.Document)
		want   string
	}{
		{
			name:   "document id",
			mutate: func(doc *domain.Document) { doc.ID = "2nd doc" },
			want:   `ID: "2nd doc" fails nmlid`,
		},
		{
			name: "quantity dimension",
			mutate: func(doc *domain.Document) {
				doc.Cells[0].Biophysics.Intracellular.Resistivities[0].Value = domain.MustQuantity("1 uF_per_cm2", domain.DimensionSpecificCapacitance)
			},
			want: "fails quantity=resistivity",
		},
		{
			name: "unknown group",
			mutate: func(doc *domain.Document) {
				doc.Cells[0].Biophysics.Membrane.ChannelDensities[0].SegmentGroup = "apical"
			},
			want: `channel density pas targets unknown segment group "apical"`,
		},
		{
			name: "unknown parent",
			mutate: func(doc *domain.Document) {
				doc.Cells[0].Morphology.Segments[0].Parent = &domain.SegmentParent{Segment: 4, FractionAlong: 1}
			},
			want: "segment 0 has unknown parent 4",
		},
		{
			name: "unknown member",
			mutate: func(doc *domain.Document) {
				g, _ := doc.Cells[0].SegmentGroup(domain.GroupAxon)
				g.Members = []int{9}
			},
			want: `segment group "axon_group" has unknown member 9`,
		},
		{
			name: "path end",
			mutate: func(doc *domain.Document) {
				from, to := 0, 7
				m := doc.Cells[0].Morphology
				m.SegmentGroups = append(m.SegmentGroups, &domain.SegmentGroup{
					ID:    "dend_path",
					Paths: []domain.SegmentRange{{From: &from, To: &to}},
				})
			},
			want: `segment group "dend_path" path references unknown segment 7`,
		},
		{
			name: "include cycle",
			mutate: func(doc *domain.Document) {
				soma, _ := doc.Cells[0].SegmentGroup(domain.GroupSoma)
				all, _ := doc.Cells[0].SegmentGroup(domain.GroupAll)
				soma.Includes = []string{domain.GroupAll}
				all.Includes = []string{domain.GroupSoma}
			},
			want: `segment group include cycle through "all"`,
		},
		{
			name: "duplicate group",
			mutate: func(doc *domain.Document) {
				m := doc.Cells[0].Morphology
				m.SegmentGroups = append(m.SegmentGroups, &domain.SegmentGroup{ID: domain.GroupSoma})
			},
			want: `duplicate segment group id "soma_group"`,
		},
		{
			name: "duplicate channel density",
			mutate: func(doc *domain.Document) {
				m := &doc.Cells[0].Biophysics.Membrane
				m.ChannelDensities = append(m.ChannelDensities, m.ChannelDensities[0])
			},
			want: `duplicate channel density id "pas"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := pasCell(t)
			tt.mutate(doc)

			err := NewValidator().Validate(doc)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidator_GateRates(t *testing.T) {
	doc := naChannel(t)
	doc.IonChannels[0].Gates[0].ForwardRate = nil

	err := NewValidator().Validate(doc)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `gate "m" is missing its forwardRate`)
}

func TestValidator_RateOverflowsInRange(t *testing.T) {
	doc := naChannel(t)
	// finite at its midpoint, exp(100) overflows float32 at +100mV
	steep, err := domain.NewHHRate(domain.RateTypeExp, "1per_ms", "0mV", "1mV")
	require.NoError(t, err)
	require.NoError(t, doc.IonChannels[0].Gates[1].SetRate(domain.ForwardRate, steep))

	err = NewValidator().Validate(doc)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `gate "h" forwardRate is not finite at`)
}

func TestValidator_NilDocument(t *testing.T) {
	assert.ErrorIs(t, NewValidator().Validate(nil), domain.ErrInvalidInput)
}
