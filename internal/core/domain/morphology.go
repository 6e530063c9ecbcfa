package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// Canonical segment group ids.
const (
	GroupAll      = "all"
	GroupSoma     = "soma_group"
	GroupDendrite = "dendrite_group"
	GroupAxon     = "axon_group"
)

// SegmentType tags a segment as part of the soma, a dendrite or the axon.
type SegmentType string

// Available segment types.
const (
	SegmentTypeSoma     SegmentType = "soma"
	SegmentTypeDendrite SegmentType = "dendrite"
	SegmentTypeAxon     SegmentType = "axon"
)

// IsValid returns true if the segment type is recognised.
func (t SegmentType) IsValid() bool {
	switch t {
	case SegmentTypeSoma, SegmentTypeDendrite, SegmentTypeAxon:
		return true
	default:
		return false
	}
}

// DefaultGroup returns the canonical group a segment of this type belongs to.
func (t SegmentType) DefaultGroup() string {
	switch t {
	case SegmentTypeSoma:
		return GroupSoma
	case SegmentTypeDendrite:
		return GroupDendrite
	case SegmentTypeAxon:
		return GroupAxon
	default:
		return ""
	}
}

// Pattern returns the substring that marks a group id as belonging to this type.
func (t SegmentType) Pattern() string {
	switch t {
	case SegmentTypeSoma:
		return "soma"
	case SegmentTypeDendrite:
		return "dend"
	case SegmentTypeAxon:
		return "axon"
	default:
		return ""
	}
}

// NeuroLexID returns the ontology term NeuroML uses for the canonical group.
func (t SegmentType) NeuroLexID() string {
	switch t {
	case SegmentTypeSoma:
		return "GO:0043025"
	case SegmentTypeDendrite:
		return "GO:0030425"
	case SegmentTypeAxon:
		return "GO:0030424"
	default:
		return ""
	}
}

// SegmentTypes returns all segment types in canonical order.
func SegmentTypes() []SegmentType {
	return []SegmentType{SegmentTypeSoma, SegmentTypeDendrite, SegmentTypeAxon}
}

// Point3DWithDiam is a segment endpoint: a 3D position and a diameter.
type Point3DWithDiam struct {
	X        float64
	Y        float64
	Z        float64
	Diameter float64
}

// String formats the point as "(x, y, z, d)".
func (p Point3DWithDiam) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return fmt.Sprintf("(%s, %s, %s, %s)", f(p.X), f(p.Y), f(p.Z), f(p.Diameter))
}

// SegmentParent links a segment to its parent segment.
type SegmentParent struct {
	Segment       int
	FractionAlong float64
}

// Segment is a tapered cylinder between a proximal and a distal point.
type Segment struct {
	// ID is the segment index, unique within a morphology.
	ID int

	// Name is an optional human-readable name, e.g. "Seg0".
	Name string

	// Parent is nil for root segments.
	Parent *SegmentParent

	// Proximal is nil when the segment starts at its parent's distal point.
	Proximal *Point3DWithDiam

	// Distal is the far endpoint.
	Distal Point3DWithDiam
}

// Morphology is the ordered set of segments plus the groups over them.
type Morphology struct {
	ID            string
	Segments      []Segment
	SegmentGroups []*SegmentGroup

	// Extra is content carried through unchanged, e.g. annotations.
	Extra []Element
}

// Segment returns the segment with the given id.
func (m *Morphology) Segment(id int) (*Segment, bool) {
	for i := range m.Segments {
		if m.Segments[i].ID == id {
			return &m.Segments[i], true
		}
	}
	return nil, false
}

// Span returns the segment ids r selects, proximal first. With both ends
// set From must be an ancestor of To (or To itself), otherwise nil.
func (m *Morphology) Span(r SegmentRange) []int {
	switch {
	case r.To != nil:
		return m.ancestry(*r.To, r.From)
	case r.From != nil:
		return m.subtree(*r.From)
	default:
		return nil
	}
}

// ancestry walks parents from id up to stop, or to the root if stop is nil.
func (m *Morphology) ancestry(id int, stop *int) []int {
	var out []int
	seen := make(map[int]bool)
	seg, ok := m.Segment(id)
	for ok && !seen[seg.ID] {
		seen[seg.ID] = true
		out = append(out, seg.ID)
		if stop != nil && seg.ID == *stop {
			slices.Reverse(out)
			return out
		}
		if seg.Parent == nil {
			break
		}
		seg, ok = m.Segment(seg.Parent.Segment)
	}
	if stop != nil {
		return nil
	}
	slices.Reverse(out)
	return out
}

// subtree returns id and every segment distal to it.
func (m *Morphology) subtree(id int) []int {
	if _, ok := m.Segment(id); !ok {
		return nil
	}
	children := make(map[int][]int)
	for _, s := range m.Segments {
		if s.Parent != nil {
			children[s.Parent.Segment] = append(children[s.Parent.Segment], s.ID)
		}
	}
	out := []int{id}
	seen := map[int]bool{id: true}
	for i := 0; i < len(out); i++ {
		for _, c := range children[out[i]] {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// SegmentGroup returns the group with the given id.
func (m *Morphology) SegmentGroup(id string) (*SegmentGroup, bool) {
	for _, g := range m.SegmentGroups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// AddSegmentGroup appends a group. Group ids must be unique.
func (m *Morphology) AddSegmentGroup(g *SegmentGroup) error {
	if g == nil || g.ID == "" {
		return fmt.Errorf("%w: segment group requires an id", ErrInvalidInput)
	}
	if _, ok := m.SegmentGroup(g.ID); ok {
		return fmt.Errorf("%w: segment group %q", ErrDuplicateID, g.ID)
	}
	m.SegmentGroups = append(m.SegmentGroups, g)
	return nil
}

// nextSegmentID returns one more than the highest segment id.
func (m *Morphology) nextSegmentID() int {
	next := 0
	for _, s := range m.Segments {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}
