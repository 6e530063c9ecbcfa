package neuroml

import (
	"encoding/xml"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// toDomain converts a decoded document. Unparseable quantities and
// unknown rate types make the document malformed.
func toDomain(x *xmlDocument) (*domain.Document, error) {
	doc := domain.NewDocument(x.ID)
	doc.Notes = x.Notes
	for _, inc := range x.Includes {
		doc.AddInclude(inc.Href)
	}
	for _, n := range x.Networks {
		doc.Networks = append(doc.Networks, domain.Network{ID: n.ID, Notes: n.Notes})
	}
	doc.Extra = elementsToDomain(x.Extra)
	for i := range x.IonChannels {
		ch, err := channelToDomain(&x.IonChannels[i])
		if err != nil {
			return nil, err
		}
		doc.IonChannels = append(doc.IonChannels, ch)
	}
	for i := range x.Cells {
		cell, err := cellToDomain(&x.Cells[i])
		if err != nil {
			return nil, err
		}
		doc.Cells = append(doc.Cells, cell)
	}
	return doc, nil
}

func quantity(s, where string) (domain.Quantity, error) {
	if s == "" {
		return domain.Quantity{}, nil
	}
	q, err := domain.ParseQuantity(s)
	if err != nil {
		return domain.Quantity{}, fmt.Errorf("%w: %s: %w", domain.ErrMalformed, where, err)
	}
	return q, nil
}

func groupOrAll(id string) string {
	if id == "" {
		return domain.GroupAll
	}
	return id
}

func channelToDomain(x *xmlIonChannelHH) (*domain.IonChannelHH, error) {
	g, err := quantity(x.Conductance, "ionChannelHH "+x.ID)
	if err != nil {
		return nil, err
	}
	ch := &domain.IonChannelHH{ID: x.ID, Notes: x.Notes, Species: x.Species, Conductance: g}
	for i := range x.Gates {
		xg := &x.Gates[i]
		gate := &domain.GateHHRates{ID: xg.ID, Instances: xg.Instances, Notes: xg.Notes}
		where := fmt.Sprintf("gate %s/%s", x.ID, xg.ID)
		if gate.ForwardRate, err = rateToDomain(xg.ForwardRate, where); err != nil {
			return nil, err
		}
		if gate.ReverseRate, err = rateToDomain(xg.ReverseRate, where); err != nil {
			return nil, err
		}
		ch.Gates = append(ch.Gates, gate)
	}
	return ch, nil
}

func rateToDomain(x *xmlHHRate, where string) (*domain.HHRate, error) {
	if x == nil {
		return nil, nil
	}
	t := domain.RateType(x.Type)
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s: rate type %q", domain.ErrMalformed, where, x.Type)
	}
	r := &domain.HHRate{Type: t}
	var err error
	if r.Rate, err = quantity(x.Rate, where); err != nil {
		return nil, err
	}
	if r.Midpoint, err = quantity(x.Midpoint, where); err != nil {
		return nil, err
	}
	if r.Scale, err = quantity(x.Scale, where); err != nil {
		return nil, err
	}
	return r, nil
}

func cellToDomain(x *xmlCell) (*domain.Cell, error) {
	cell := domain.NewCell(x.ID)
	cell.Notes = x.Notes
	cell.Properties = propertiesToDomain(x.Properties)
	cell.Extra = elementsToDomain(x.Annotations, x.Extra)
	if m := x.Morphology; m != nil {
		cell.Morphology = &domain.Morphology{ID: m.ID, Extra: elementsToDomain(m.Annotations, m.Extra)}
		for _, s := range m.Segments {
			seg := domain.Segment{ID: s.ID, Name: s.Name, Distal: pointToDomain(s.Distal)}
			if s.Parent != nil {
				fraction := 1.0
				if s.Parent.FractionAlong != nil {
					fraction = *s.Parent.FractionAlong
				}
				seg.Parent = &domain.SegmentParent{Segment: s.Parent.Segment, FractionAlong: fraction}
			}
			if s.Proximal != nil {
				p := pointToDomain(*s.Proximal)
				seg.Proximal = &p
			}
			cell.Morphology.Segments = append(cell.Morphology.Segments, seg)
		}
		for _, g := range m.SegmentGroups {
			group := &domain.SegmentGroup{
				ID:         g.ID,
				NeuroLexID: g.NeuroLexID,
				Notes:      g.Notes,
				Properties: propertiesToDomain(g.Properties),
				Paths:      rangesToDomain(g.Paths),
				SubTrees:   rangesToDomain(g.SubTrees),
				Extra:      elementsToDomain(g.Annotations, g.Extra),
			}
			for _, mem := range g.Members {
				group.Members = append(group.Members, mem.Segment)
			}
			for _, inc := range g.Includes {
				group.Includes = append(group.Includes, inc.SegmentGroup)
			}
			cell.Morphology.SegmentGroups = append(cell.Morphology.SegmentGroups, group)
		}
	}
	if b := x.Biophysics; b != nil {
		bio, err := biophysicsToDomain(b, x.ID)
		if err != nil {
			return nil, err
		}
		cell.Biophysics = bio
	}
	return cell, nil
}

func biophysicsToDomain(x *xmlBiophysicalProperties, cellID string) (*domain.BiophysicalProperties, error) {
	bio := &domain.BiophysicalProperties{ID: x.ID, Extra: elementsToDomain(x.Annotations, x.Extra)}
	bio.Membrane.Extra = elementsToDomain(x.Membrane.Extra)
	bio.Intracellular.Extra = elementsToDomain(x.Intracellular.Extra)
	where := "cell " + cellID
	for _, cd := range x.Membrane.ChannelDensities {
		g, err := quantity(cd.CondDensity, where)
		if err != nil {
			return nil, err
		}
		erev, err := quantity(cd.Erev, where)
		if err != nil {
			return nil, err
		}
		bio.Membrane.ChannelDensities = append(bio.Membrane.ChannelDensities, domain.ChannelDensity{
			ID:           cd.ID,
			IonChannel:   cd.IonChannel,
			CondDensity:  g,
			Erev:         erev,
			SegmentGroup: groupOrAll(cd.SegmentGroup),
			Ion:          cd.Ion,
		})
	}
	for _, c := range x.Membrane.SpecificCapacitances {
		v, err := quantity(c.Value, where)
		if err != nil {
			return nil, err
		}
		bio.Membrane.SpecificCapacitances = append(bio.Membrane.SpecificCapacitances,
			domain.SpecificCapacitance{Value: v, SegmentGroup: groupOrAll(c.SegmentGroup)})
	}
	for _, p := range x.Membrane.InitMembPotentials {
		v, err := quantity(p.Value, where)
		if err != nil {
			return nil, err
		}
		bio.Membrane.InitMembPotential = &v
	}
	for _, r := range x.Intracellular.Resistivities {
		v, err := quantity(r.Value, where)
		if err != nil {
			return nil, err
		}
		bio.Intracellular.Resistivities = append(bio.Intracellular.Resistivities,
			domain.Resistivity{Value: v, SegmentGroup: groupOrAll(r.SegmentGroup)})
	}
	return bio, nil
}

func propertiesToDomain(xs []xmlProperty) []domain.Property {
	var out []domain.Property
	for _, p := range xs {
		out = append(out, domain.Property{Tag: p.Tag, Value: p.Value})
	}
	return out
}

func propertiesFromDomain(ps []domain.Property) []xmlProperty {
	var out []xmlProperty
	for _, p := range ps {
		out = append(out, xmlProperty{Tag: p.Tag, Value: p.Value})
	}
	return out
}

func rangesToDomain(xs []xmlRange) []domain.SegmentRange {
	var out []domain.SegmentRange
	for _, r := range xs {
		var dr domain.SegmentRange
		if r.From != nil {
			from := r.From.Segment
			dr.From = &from
		}
		if r.To != nil {
			to := r.To.Segment
			dr.To = &to
		}
		out = append(out, dr)
	}
	return out
}

func rangesFromDomain(rs []domain.SegmentRange) []xmlRange {
	var out []xmlRange
	for _, r := range rs {
		var xr xmlRange
		if r.From != nil {
			xr.From = &xmlMember{Segment: *r.From}
		}
		if r.To != nil {
			xr.To = &xmlMember{Segment: *r.To}
		}
		out = append(out, xr)
	}
	return out
}

// elementsToDomain keeps unmodelled elements in document order of each
// list. Namespace declarations on the element itself are dropped; the
// root declares the NeuroML namespace again on write.
func elementsToDomain(lists ...[]xmlAny) []domain.Element {
	var out []domain.Element
	for _, xs := range lists {
		for _, x := range xs {
			e := domain.Element{Name: x.XMLName.Local, Inner: x.Inner}
			if x.XMLName.Space != Namespace {
				e.Space = x.XMLName.Space
			}
			for _, a := range x.Attrs {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				e.Attrs = append(e.Attrs, domain.Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			out = append(out, e)
		}
	}
	return out
}

// elementsFromDomain splits annotations, which the schema places before
// the modelled children, from everything else.
func elementsFromDomain(es []domain.Element) (annotations, rest []xmlAny) {
	for _, e := range es {
		x := xmlAny{XMLName: xml.Name{Space: e.Space, Local: e.Name}, Inner: e.Inner}
		for _, a := range e.Attrs {
			x.Attrs = append(x.Attrs, xml.Attr{Name: xml.Name{Space: a.Space, Local: a.Name}, Value: a.Value})
		}
		if e.Name == "annotation" && e.Space == "" {
			annotations = append(annotations, x)
		} else {
			rest = append(rest, x)
		}
	}
	return annotations, rest
}

// allElements is elementsFromDomain for parents without an annotation slot.
func allElements(es []domain.Element) []xmlAny {
	annotations, rest := elementsFromDomain(es)
	return append(annotations, rest...)
}

func pointToDomain(p xmlPoint) domain.Point3DWithDiam {
	return domain.Point3DWithDiam{X: p.X, Y: p.Y, Z: p.Z, Diameter: p.Diameter}
}

func pointFromDomain(p domain.Point3DWithDiam) xmlPoint {
	return xmlPoint{X: p.X, Y: p.Y, Z: p.Z, Diameter: p.Diameter}
}

// fromDomain builds the XML form of doc. Networks are never written.
func fromDomain(doc *domain.Document, schemaLocation string) *xmlDocument {
	x := &xmlDocument{
		Xmlns:    Namespace,
		XmlnsXSI: XSINamespace,
		ID:       doc.ID,
		Notes:    doc.Notes,
	}
	if schemaLocation != "" {
		x.SchemaLocation = Namespace + " " + schemaLocation
	}
	for _, inc := range doc.Includes {
		x.Includes = append(x.Includes, xmlInclude{Href: inc.Href})
	}
	for _, ch := range doc.IonChannels {
		x.IonChannels = append(x.IonChannels, channelFromDomain(ch))
	}
	for _, c := range doc.Cells {
		x.Cells = append(x.Cells, cellFromDomain(c))
	}
	x.Extra = allElements(doc.Extra)
	return x
}

func channelFromDomain(ch *domain.IonChannelHH) xmlIonChannelHH {
	x := xmlIonChannelHH{
		ID:          ch.ID,
		Conductance: ch.Conductance.String(),
		Species:     ch.Species,
		Notes:       ch.Notes,
	}
	for _, g := range ch.Gates {
		x.Gates = append(x.Gates, xmlGateHHRates{
			ID:          g.ID,
			Instances:   g.Instances,
			Notes:       g.Notes,
			ForwardRate: rateFromDomain(g.ForwardRate),
			ReverseRate: rateFromDomain(g.ReverseRate),
		})
	}
	return x
}

func rateFromDomain(r *domain.HHRate) *xmlHHRate {
	if r == nil {
		return nil
	}
	return &xmlHHRate{
		Type:     string(r.Type),
		Rate:     r.Rate.String(),
		Midpoint: r.Midpoint.String(),
		Scale:    r.Scale.String(),
	}
}

func cellFromDomain(c *domain.Cell) xmlCell {
	x := xmlCell{ID: c.ID, Notes: c.Notes, Properties: propertiesFromDomain(c.Properties)}
	x.Annotations, x.Extra = elementsFromDomain(c.Extra)
	if m := c.Morphology; m != nil {
		xm := &xmlMorphology{ID: m.ID}
		xm.Annotations, xm.Extra = elementsFromDomain(m.Extra)
		for _, s := range m.Segments {
			xs := xmlSegment{ID: s.ID, Name: s.Name, Distal: pointFromDomain(s.Distal)}
			if s.Parent != nil {
				xs.Parent = &xmlParent{Segment: s.Parent.Segment}
				if s.Parent.FractionAlong != 1 {
					fraction := s.Parent.FractionAlong
					xs.Parent.FractionAlong = &fraction
				}
			}
			if s.Proximal != nil {
				p := pointFromDomain(*s.Proximal)
				xs.Proximal = &p
			}
			xm.Segments = append(xm.Segments, xs)
		}
		for _, g := range m.SegmentGroups {
			xg := xmlSegmentGroup{
				ID:         g.ID,
				NeuroLexID: g.NeuroLexID,
				Notes:      g.Notes,
				Properties: propertiesFromDomain(g.Properties),
				Paths:      rangesFromDomain(g.Paths),
				SubTrees:   rangesFromDomain(g.SubTrees),
			}
			xg.Annotations, xg.Extra = elementsFromDomain(g.Extra)
			for _, mem := range g.Members {
				xg.Members = append(xg.Members, xmlMember{Segment: mem})
			}
			for _, inc := range g.Includes {
				xg.Includes = append(xg.Includes, xmlGroupInclude{SegmentGroup: inc})
			}
			xm.SegmentGroups = append(xm.SegmentGroups, xg)
		}
		x.Morphology = xm
	}
	if b := c.Biophysics; b != nil {
		xb := &xmlBiophysicalProperties{ID: b.ID}
		xb.Annotations, xb.Extra = elementsFromDomain(b.Extra)
		xb.Membrane.Extra = allElements(b.Membrane.Extra)
		xb.Intracellular.Extra = allElements(b.Intracellular.Extra)
		for _, cd := range b.Membrane.ChannelDensities {
			xb.Membrane.ChannelDensities = append(xb.Membrane.ChannelDensities, xmlChannelDensity{
				ID:           cd.ID,
				IonChannel:   cd.IonChannel,
				CondDensity:  cd.CondDensity.String(),
				Erev:         cd.Erev.String(),
				SegmentGroup: cd.SegmentGroup,
				Ion:          cd.Ion,
			})
		}
		for _, sc := range b.Membrane.SpecificCapacitances {
			xb.Membrane.SpecificCapacitances = append(xb.Membrane.SpecificCapacitances,
				xmlSpecificCapacitance{Value: sc.Value.String(), SegmentGroup: sc.SegmentGroup})
		}
		if p := b.Membrane.InitMembPotential; p != nil {
			xb.Membrane.InitMembPotentials = []xmlValue{{Value: p.String(), SegmentGroup: domain.GroupAll}}
		}
		for _, r := range b.Intracellular.Resistivities {
			xb.Intracellular.Resistivities = append(xb.Intracellular.Resistivities,
				xmlResistivity{Value: r.Value.String(), SegmentGroup: r.SegmentGroup})
		}
		x.Biophysics = xb
	}
	return x
}
