package domain

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMorphologyID is the id given to morphologies created by nmlcell.
const DefaultMorphologyID = "morphology"

// Cell is a neuron with a morphology and biophysical properties.
// It is mutated in place by every annotation step.
type Cell struct {
	ID         string
	Notes      string
	Properties []Property
	Morphology *Morphology
	Biophysics *BiophysicalProperties

	// Extra is content carried through unchanged, e.g. annotations.
	Extra []Element
}

// DefaultGroups are the four canonical segment groups of a cell.
type DefaultGroups struct {
	All      *SegmentGroup
	Soma     *SegmentGroup
	Dendrite *SegmentGroup
	Axon     *SegmentGroup
}

// ForType returns the canonical group for a segment type.
func (d DefaultGroups) ForType(t SegmentType) *SegmentGroup {
	switch t {
	case SegmentTypeSoma:
		return d.Soma
	case SegmentTypeDendrite:
		return d.Dendrite
	case SegmentTypeAxon:
		return d.Axon
	default:
		return nil
	}
}

// NewCell creates a cell with no morphology or biophysics.
func NewCell(id string) *Cell {
	return &Cell{ID: id}
}

// SetupNMLCell prepares an empty cell: morphology, biophysical properties
// and the four canonical segment groups.
func (c *Cell) SetupNMLCell() DefaultGroups {
	if c.Morphology == nil {
		c.Morphology = &Morphology{ID: DefaultMorphologyID}
	}
	c.ensureBiophysics()
	return c.SetupDefaultSegmentGroups()
}

// SetupDefaultSegmentGroups creates the canonical groups that are absent
// and returns all four. Existing groups are returned unchanged.
func (c *Cell) SetupDefaultSegmentGroups() DefaultGroups {
	if c.Morphology == nil {
		c.Morphology = &Morphology{ID: DefaultMorphologyID}
	}
	get := func(id, neuroLexID, notes string) *SegmentGroup {
		if g, ok := c.Morphology.SegmentGroup(id); ok {
			return g
		}
		g := &SegmentGroup{ID: id, NeuroLexID: neuroLexID, Notes: notes}
		c.Morphology.SegmentGroups = append(c.Morphology.SegmentGroups, g)
		return g
	}
	return DefaultGroups{
		All: get(GroupAll, "", "Default segment group for all segments in the cell"),
		Soma: get(GroupSoma, SegmentTypeSoma.NeuroLexID(),
			"Default soma segment group for the cell"),
		Dendrite: get(GroupDendrite, SegmentTypeDendrite.NeuroLexID(),
			"Default dendrite segment group for the cell"),
		Axon: get(GroupAxon, SegmentTypeAxon.NeuroLexID(),
			"Default axon segment group for the cell"),
	}
}

// AddSegment appends a segment to the morphology and registers it in the
// canonical group for segType and in "all". The new segment is parented to
// the previous last segment, if any.
func (c *Cell) AddSegment(proximal, distal Point3DWithDiam, segType SegmentType) (*Segment, error) {
	if !segType.IsValid() {
		return nil, fmt.Errorf("%w: segment type %q", ErrUnsupportedType, segType)
	}
	if proximal.Diameter < 0 || distal.Diameter < 0 {
		return nil, fmt.Errorf("%w: segment diameter must not be negative", ErrInvalidInput)
	}
	groups := c.SetupDefaultSegmentGroups()

	id := c.Morphology.nextSegmentID()
	seg := Segment{
		ID:       id,
		Name:     fmt.Sprintf("Seg%d", id),
		Proximal: &proximal,
		Distal:   distal,
	}
	if n := len(c.Morphology.Segments); n > 0 {
		seg.Parent = &SegmentParent{Segment: c.Morphology.Segments[n-1].ID, FractionAlong: 1}
	}
	c.Morphology.Segments = append(c.Morphology.Segments, seg)

	groups.ForType(segType).AddMember(id)
	groups.All.AddMember(id)

	return &c.Morphology.Segments[len(c.Morphology.Segments)-1], nil
}

// SegmentGroup returns the group with the given id.
func (c *Cell) SegmentGroup(id string) (*SegmentGroup, bool) {
	if c.Morphology == nil {
		return nil, false
	}
	return c.Morphology.SegmentGroup(id)
}

// SegmentsIn returns the sorted ids of every segment in group, following includes.
func (c *Cell) SegmentsIn(group string) []int {
	if c.Morphology == nil {
		return nil
	}
	set := make(map[int]bool)
	resolveSegments(c.Morphology, group, make(map[string]bool), set)
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// OptimiseSegmentGroups simplifies every group in place. See SegmentGroup.optimise.
func (c *Cell) OptimiseSegmentGroups() {
	if c.Morphology == nil {
		return
	}
	for _, g := range c.Morphology.SegmentGroups {
		g.optimise(c.Morphology)
	}
}

// ReplaceInNotes substitutes every occurrence of old in the notes.
func (c *Cell) ReplaceInNotes(old, replacement string) {
	if old == "" {
		return
	}
	c.Notes = strings.ReplaceAll(c.Notes, old, replacement)
}

// AppendNotes appends text to the notes verbatim.
func (c *Cell) AppendNotes(text string) {
	c.Notes += text
}

// AddChannelDensity attaches a channel density to the cell. The target group
// must exist and the id must be new on this cell. When channelFile is set it
// is added once to the document's includes.
func (c *Cell) AddChannelDensity(doc *Document, cd ChannelDensity, channelFile string) error {
	if cd.ID == "" || cd.IonChannel == "" {
		return fmt.Errorf("%w: channel density requires an id and an ion channel", ErrInvalidInput)
	}
	if !cd.CondDensity.Is(DimensionConductanceDensity) {
		return fmt.Errorf("%w: condDensity %q", ErrInvalidInput, cd.CondDensity)
	}
	if !cd.Erev.Is(DimensionVoltage) {
		return fmt.Errorf("%w: erev %q", ErrInvalidInput, cd.Erev)
	}
	if cd.SegmentGroup == "" {
		cd.SegmentGroup = GroupAll
	}
	if _, ok := c.SegmentGroup(cd.SegmentGroup); !ok {
		return fmt.Errorf("%w: segment group %q not found on cell %q", ErrValidation, cd.SegmentGroup, c.ID)
	}

	b := c.ensureBiophysics()
	if _, ok := b.ChannelDensity(cd.ID); ok {
		return fmt.Errorf("%w: channel density %q on cell %q", ErrDuplicateID, cd.ID, c.ID)
	}
	b.Membrane.ChannelDensities = append(b.Membrane.ChannelDensities, cd)

	if doc != nil && channelFile != "" {
		doc.AddInclude(channelFile)
	}
	return nil
}

// SetResistivity sets the resistivity on group, replacing any previous value.
func (c *Cell) SetResistivity(value Quantity, group string) error {
	if !value.Is(DimensionResistivity) {
		return fmt.Errorf("%w: resistivity %q", ErrInvalidInput, value)
	}
	if group == "" {
		group = GroupAll
	}
	b := c.ensureBiophysics()
	for i := range b.Intracellular.Resistivities {
		if b.Intracellular.Resistivities[i].SegmentGroup == group {
			b.Intracellular.Resistivities[i].Value = value
			return nil
		}
	}
	b.Intracellular.Resistivities = append(b.Intracellular.Resistivities,
		Resistivity{Value: value, SegmentGroup: group})
	return nil
}

// SetSpecificCapacitance sets the specific capacitance on group, replacing any previous value.
func (c *Cell) SetSpecificCapacitance(value Quantity, group string) error {
	if !value.Is(DimensionSpecificCapacitance) {
		return fmt.Errorf("%w: specific capacitance %q", ErrInvalidInput, value)
	}
	if group == "" {
		group = GroupAll
	}
	b := c.ensureBiophysics()
	for i := range b.Membrane.SpecificCapacitances {
		if b.Membrane.SpecificCapacitances[i].SegmentGroup == group {
			b.Membrane.SpecificCapacitances[i].Value = value
			return nil
		}
	}
	b.Membrane.SpecificCapacitances = append(b.Membrane.SpecificCapacitances,
		SpecificCapacitance{Value: value, SegmentGroup: group})
	return nil
}

// SetInitMembPotential sets the whole-cell resting potential.
func (c *Cell) SetInitMembPotential(value Quantity) error {
	if !value.Is(DimensionVoltage) {
		return fmt.Errorf("%w: initial membrane potential %q", ErrInvalidInput, value)
	}
	v := value
	c.ensureBiophysics().Membrane.InitMembPotential = &v
	return nil
}

func (c *Cell) ensureBiophysics() *BiophysicalProperties {
	if c.Biophysics == nil {
		c.Biophysics = &BiophysicalProperties{ID: DefaultBiophysicsID}
	}
	return c.Biophysics
}
