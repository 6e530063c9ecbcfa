package neuroml

import "encoding/xml"

// NeuroML v2 namespaces written on the root element.
const (
	Namespace             = "http://www.neuroml.org/schema/neuroml2"
	XSINamespace          = "http://www.w3.org/2001/XMLSchema-instance"
	DefaultSchemaLocation = "https://raw.github.com/NeuroML/NeuroML2/development/Schemas/NeuroML2/NeuroML_v2.3.xsd"
)

// The types below mirror the subset of the NeuroML v2 schema nmlcell reads
// and writes. Elements outside that subset land in the Extra fields and
// are written back verbatim, placed where the schema sequence expects
// most of them.
// Validation tags: nmlid checks the NmlId pattern, quantity=<dimension>
// checks the unit of a quantity string.

type xmlDocument struct {
	XMLName xml.Name `xml:"neuroml"`

	// Namespace attributes are written literally; they are ignored on read.
	Xmlns          string `xml:"xmlns,attr,omitempty"`
	XmlnsXSI       string `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string `xml:"xsi:schemaLocation,attr,omitempty"`

	ID          string            `xml:"id,attr" validate:"required,nmlid"`
	Notes       string            `xml:"notes,omitempty"`
	Includes    []xmlInclude      `xml:"include" validate:"dive"`
	IonChannels []xmlIonChannelHH `xml:"ionChannelHH" validate:"dive"`
	Cells       []xmlCell         `xml:"cell" validate:"dive"`
	Networks    []xmlNetwork      `xml:"network"`
	Extra       []xmlAny          `xml:",any"`
}

// xmlAny captures an element that is not modelled.
type xmlAny struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

type xmlProperty struct {
	Tag   string `xml:"tag,attr" validate:"required"`
	Value string `xml:"value,attr"`
}

type xmlInclude struct {
	Href string `xml:"href,attr" validate:"required"`
}

type xmlNetwork struct {
	ID    string `xml:"id,attr"`
	Notes string `xml:"notes,omitempty"`
}

type xmlIonChannelHH struct {
	ID          string           `xml:"id,attr" validate:"required,nmlid"`
	Conductance string           `xml:"conductance,attr,omitempty" validate:"omitempty,quantity=conductance"`
	Species     string           `xml:"species,attr,omitempty" validate:"omitempty,nmlid"`
	Notes       string           `xml:"notes,omitempty"`
	Gates       []xmlGateHHRates `xml:"gateHHrates" validate:"dive"`
}

type xmlGateHHRates struct {
	ID          string     `xml:"id,attr" validate:"required,nmlid"`
	Instances   int        `xml:"instances,attr" validate:"min=1"`
	Notes       string     `xml:"notes,omitempty"`
	ForwardRate *xmlHHRate `xml:"forwardRate" validate:"required"`
	ReverseRate *xmlHHRate `xml:"reverseRate" validate:"required"`
}

type xmlHHRate struct {
	Type     string `xml:"type,attr" validate:"required,oneof=HHExpRate HHExpLinearRate HHSigmoidRate"`
	Rate     string `xml:"rate,attr" validate:"required,quantity=per_time"`
	Midpoint string `xml:"midpoint,attr" validate:"required,quantity=voltage"`
	Scale    string `xml:"scale,attr" validate:"required,quantity=voltage"`
}

type xmlCell struct {
	ID          string                    `xml:"id,attr" validate:"required,nmlid"`
	Notes       string                    `xml:"notes,omitempty"`
	Properties  []xmlProperty             `xml:"property" validate:"dive"`
	Annotations []xmlAny                  `xml:"annotation"`
	Morphology  *xmlMorphology            `xml:"morphology"`
	Biophysics  *xmlBiophysicalProperties `xml:"biophysicalProperties"`
	Extra       []xmlAny                  `xml:",any"`
}

type xmlMorphology struct {
	ID            string            `xml:"id,attr" validate:"required,nmlid"`
	Annotations   []xmlAny          `xml:"annotation"`
	Segments      []xmlSegment      `xml:"segment" validate:"dive"`
	SegmentGroups []xmlSegmentGroup `xml:"segmentGroup" validate:"dive"`
	Extra         []xmlAny          `xml:",any"`
}

type xmlSegment struct {
	ID       int        `xml:"id,attr" validate:"min=0"`
	Name     string     `xml:"name,attr,omitempty"`
	Parent   *xmlParent `xml:"parent"`
	Proximal *xmlPoint  `xml:"proximal"`
	Distal   xmlPoint   `xml:"distal"`
}

type xmlParent struct {
	Segment       int      `xml:"segment,attr" validate:"min=0"`
	FractionAlong *float64 `xml:"fractionAlong,attr,omitempty" validate:"omitempty,min=0,max=1"`
}

type xmlPoint struct {
	X        float64 `xml:"x,attr"`
	Y        float64 `xml:"y,attr"`
	Z        float64 `xml:"z,attr"`
	Diameter float64 `xml:"diameter,attr" validate:"min=0"`
}

type xmlSegmentGroup struct {
	ID          string            `xml:"id,attr" validate:"required,nmlid"`
	NeuroLexID  string            `xml:"neuroLexId,attr,omitempty"`
	Notes       string            `xml:"notes,omitempty"`
	Properties  []xmlProperty     `xml:"property" validate:"dive"`
	Annotations []xmlAny          `xml:"annotation"`
	Members     []xmlMember       `xml:"member"`
	Includes    []xmlGroupInclude `xml:"include" validate:"dive"`
	Paths       []xmlRange        `xml:"path" validate:"dive"`
	SubTrees    []xmlRange        `xml:"subTree" validate:"dive"`
	Extra       []xmlAny          `xml:",any"`
}

// xmlRange is the body of a path or subTree element.
type xmlRange struct {
	From *xmlMember `xml:"from"`
	To   *xmlMember `xml:"to"`
}

type xmlMember struct {
	Segment int `xml:"segment,attr" validate:"min=0"`
}

type xmlGroupInclude struct {
	SegmentGroup string `xml:"segmentGroup,attr" validate:"required,nmlid"`
}

type xmlBiophysicalProperties struct {
	ID            string           `xml:"id,attr" validate:"required,nmlid"`
	Annotations   []xmlAny         `xml:"annotation"`
	Membrane      xmlMembrane      `xml:"membraneProperties"`
	Intracellular xmlIntracellular `xml:"intracellularProperties"`
	Extra         []xmlAny         `xml:",any"`
}

// Other mechanisms sit between channelDensity and specificCapacitance in
// the schema sequence, so Extra is placed there.
type xmlMembrane struct {
	ChannelDensities     []xmlChannelDensity      `xml:"channelDensity" validate:"dive"`
	Extra                []xmlAny                 `xml:",any"`
	SpecificCapacitances []xmlSpecificCapacitance `xml:"specificCapacitance" validate:"dive"`
	InitMembPotentials   []xmlValue               `xml:"initMembPotential" validate:"max=1,dive"`
}

type xmlChannelDensity struct {
	ID           string `xml:"id,attr" validate:"required,nmlid"`
	IonChannel   string `xml:"ionChannel,attr" validate:"required,nmlid"`
	CondDensity  string `xml:"condDensity,attr,omitempty" validate:"omitempty,quantity=conductanceDensity"`
	Erev         string `xml:"erev,attr" validate:"required,quantity=voltage"`
	SegmentGroup string `xml:"segmentGroup,attr,omitempty" validate:"omitempty,nmlid"`
	Ion          string `xml:"ion,attr" validate:"required,nmlid"`
}

type xmlSpecificCapacitance struct {
	Value        string `xml:"value,attr" validate:"required,quantity=specificCapacitance"`
	SegmentGroup string `xml:"segmentGroup,attr,omitempty" validate:"omitempty,nmlid"`
}

type xmlValue struct {
	Value        string `xml:"value,attr" validate:"required,quantity=voltage"`
	SegmentGroup string `xml:"segmentGroup,attr,omitempty" validate:"omitempty,nmlid"`
}

type xmlIntracellular struct {
	Extra         []xmlAny         `xml:",any"`
	Resistivities []xmlResistivity `xml:"resistivity" validate:"dive"`
}

type xmlResistivity struct {
	Value        string `xml:"value,attr" validate:"required,quantity=resistivity"`
	SegmentGroup string `xml:"segmentGroup,attr,omitempty" validate:"omitempty,nmlid"`
}
