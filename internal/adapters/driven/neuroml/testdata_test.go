package neuroml

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// morphologyXML is shaped like a NEURON export: namespaced root, a
// network, named sub-groups and elements nmlcell does not model.
const morphologyXML = `<?xml version="1.0" encoding="UTF-8"?>
<neuroml xmlns="http://www.neuroml.org/schema/neuroml2"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xsi:schemaLocation="http://www.neuroml.org/schema/neuroml2 https://raw.github.com/NeuroML/NeuroML2/development/Schemas/NeuroML2/NeuroML_v2beta4.xsd"
    id="GGN_20170309_sc">
    <cell id="GGN_20170309_sc_0_0">
        <notes>Cell: GGN_20170309_sc_0_0 exported from NEURON ModelView</notes>
        <morphology id="morphology">
            <segment id="0" name="Seg0_soma">
                <proximal x="0" y="0" z="0" diameter="20"/>
                <distal x="0" y="0" z="6.366" diameter="20"/>
            </segment>
            <segment id="1" name="Seg0_dend_1">
                <parent segment="0" fractionAlong="0.5"/>
                <distal x="0" y="5" z="6.366" diameter="2.5"/>
            </segment>
            <segmentGroup id="soma" neuroLexId="sao864921383">
                <member segment="0"/>
            </segmentGroup>
            <segmentGroup id="dend_1">
                <property tag="numberInternalDivisions" value="3"/>
                <member segment="1"/>
            </segmentGroup>
            <segmentGroup id="all">
                <include segmentGroup="soma"/>
                <include segmentGroup="dend_1"/>
            </segmentGroup>
        </morphology>
    </cell>
    <network id="GGN_net">
        <population id="pop" component="GGN_20170309_sc_0_0" size="1"/>
    </network>
</neuroml>
`

func pasCell(t *testing.T) *domain.Document {
	t.Helper()
	doc := domain.NewDocument("KC_doc")
	cell := domain.NewCell("KC")
	require.NoError(t, doc.AddCell(cell))
	cell.SetupNMLCell()
	_, err := cell.AddSegment(
		domain.Point3DWithDiam{Diameter: 20},
		domain.Point3DWithDiam{Z: 6.366, Diameter: 20},
		domain.SegmentTypeSoma,
	)
	require.NoError(t, err)
	require.NoError(t, cell.AddChannelDensity(doc, domain.ChannelDensity{
		ID:           "pas",
		IonChannel:   "pas",
		CondDensity:  domain.MustQuantity("0.00003 S_per_cm2", domain.DimensionConductanceDensity),
		Erev:         domain.MustQuantity("-51 mV", domain.DimensionVoltage),
		SegmentGroup: domain.GroupAll,
		Ion:          domain.IonNonSpecific,
	}, "channels/pas.channel.nml"))
	require.NoError(t, cell.SetResistivity(domain.MustQuantity("35.4 ohm_cm", domain.DimensionResistivity), domain.GroupAll))
	require.NoError(t, cell.SetSpecificCapacitance(domain.MustQuantity("1 uF_per_cm2", domain.DimensionSpecificCapacitance), domain.GroupAll))
	require.NoError(t, cell.SetInitMembPotential(domain.MustQuantity("-70mV", domain.DimensionVoltage)))
	return doc
}

func naChannel(t *testing.T) *domain.Document {
	t.Helper()
	ch, err := domain.NewIonChannelHH("na_channel", "na", "10pS", "Sodium channel for HH cell")
	require.NoError(t, err)
	for _, g := range []struct {
		id        string
		instances int
		fwd, rev  [4]string
	}{
		{"m", 3, [4]string{"HHExpLinearRate", "1per_ms", "-40mV", "10mV"}, [4]string{"HHExpRate", "4per_ms", "-65mV", "-18mV"}},
		{"h", 1, [4]string{"HHExpRate", "0.07per_ms", "-65mV", "-20mV"}, [4]string{"HHSigmoidRate", "1per_ms", "-35mV", "10mV"}},
	} {
		gate, err := domain.NewGateHHRates(g.id, g.instances, "")
		require.NoError(t, err)
		fwd, err := domain.NewHHRate(domain.RateType(g.fwd[0]), g.fwd[1], g.fwd[2], g.fwd[3])
		require.NoError(t, err)
		rev, err := domain.NewHHRate(domain.RateType(g.rev[0]), g.rev[1], g.rev[2], g.rev[3])
		require.NoError(t, err)
		require.NoError(t, gate.SetRate(domain.ForwardRate, fwd))
		require.NoError(t, gate.SetRate(domain.ReverseRate, rev))
		require.NoError(t, ch.AddGate(gate))
	}
	doc := domain.NewDocument("na_channel")
	doc.Notes = "Na channel for HH neuron"
	require.NoError(t, doc.AddIonChannel(ch))
	return doc
}
