package domain

import (
	"fmt"
	"strings"
)

const summaryRule = "*******************************************************"

// Summary describes the cell for humans. morph adds the segment and group
// listing; biophys adds channel densities and membrane scalars.
func (c *Cell) Summary(morph, biophys bool) string {
	var b strings.Builder
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "* Cell: %s\n", c.ID)
	if c.Notes != "" {
		fmt.Fprintf(&b, "* Notes: %s\n", c.Notes)
	}

	var segments, groups int
	if c.Morphology != nil {
		segments = len(c.Morphology.Segments)
		groups = len(c.Morphology.SegmentGroups)
	}
	fmt.Fprintf(&b, "* Segments: %d\n", segments)
	fmt.Fprintf(&b, "* SegmentGroups: %d\n", groups)

	if morph && c.Morphology != nil {
		for _, s := range c.Morphology.Segments {
			prox := "(parent distal)"
			if s.Proximal != nil {
				prox = s.Proximal.String()
			}
			fmt.Fprintf(&b, "*   Segment %d (%s): %s -> %s\n", s.ID, s.Name, prox, s.Distal)
		}
		for _, g := range c.Morphology.SegmentGroups {
			fmt.Fprintf(&b, "*   SegmentGroup %s: %d members, includes [%s]",
				g.ID, len(g.Members), strings.Join(g.Includes, ", "))
			if n := len(g.Paths) + len(g.SubTrees); n > 0 {
				fmt.Fprintf(&b, ", %d ranges", n)
			}
			for _, p := range g.Properties {
				fmt.Fprintf(&b, ", %s=%s", p.Tag, p.Value)
			}
			b.WriteString("\n")
		}
	}

	if biophys {
		c.writeBiophysics(&b)
	}
	b.WriteString(summaryRule + "\n")
	return b.String()
}

func (c *Cell) writeBiophysics(b *strings.Builder) {
	if c.Biophysics == nil {
		b.WriteString("* Biophysical properties: none\n")
		return
	}
	mp := c.Biophysics.Membrane
	fmt.Fprintf(b, "* Channel densities: %d\n", len(mp.ChannelDensities))
	for _, cd := range mp.ChannelDensities {
		fmt.Fprintf(b, "*   %s: %s (%s) %s, erev %s on %s\n",
			cd.ID, cd.IonChannel, cd.Ion, cd.CondDensity, cd.Erev, cd.SegmentGroup)
	}
	for _, sc := range mp.SpecificCapacitances {
		fmt.Fprintf(b, "* Specific capacitance: %s on %s\n", sc.Value, sc.SegmentGroup)
	}
	for _, r := range c.Biophysics.Intracellular.Resistivities {
		fmt.Fprintf(b, "* Resistivity: %s on %s\n", r.Value, r.SegmentGroup)
	}
	if mp.InitMembPotential != nil {
		fmt.Fprintf(b, "* Initial membrane potential: %s\n", mp.InitMembPotential)
	}
}

// Summary describes the channel and its gates for humans.
func (c *IonChannelHH) Summary() string {
	var b strings.Builder
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "* IonChannelHH: %s (species %s, conductance %s)\n", c.ID, c.Species, c.Conductance)
	if c.Notes != "" {
		fmt.Fprintf(&b, "* Notes: %s\n", c.Notes)
	}
	for _, g := range c.Gates {
		fmt.Fprintf(&b, "* Gate %s: %d instance(s)\n", g.ID, g.Instances)
		for _, kind := range []RateKind{ForwardRate, ReverseRate} {
			r := g.Rate(kind)
			if r == nil {
				fmt.Fprintf(&b, "*   %s: missing\n", kind)
				continue
			}
			fmt.Fprintf(&b, "*   %s: %s rate=%s midpoint=%s scale=%s\n",
				kind, r.Type, r.Rate, r.Midpoint, r.Scale)
		}
	}
	b.WriteString(summaryRule + "\n")
	return b.String()
}
