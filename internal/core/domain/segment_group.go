package domain

// SegmentGroup is a named subset of segments, given by explicit members,
// by ranges along the tree and by inclusion of other groups.
type SegmentGroup struct {
	ID         string
	NeuroLexID string
	Notes      string
	Properties []Property

	// Members are segment ids.
	Members []int

	// Includes are ids of other segment groups.
	Includes []string

	Paths    []SegmentRange
	SubTrees []SegmentRange

	// Extra holds annotations, inhomogeneous parameters and any other
	// content carried through unchanged.
	Extra []Element
}

// AddMember adds a segment id unless it is already a member.
func (g *SegmentGroup) AddMember(segment int) bool {
	for _, m := range g.Members {
		if m == segment {
			return false
		}
	}
	g.Members = append(g.Members, segment)
	return true
}

// AddInclude adds a group id unless it is already included.
func (g *SegmentGroup) AddInclude(group string) bool {
	if g.IncludesGroup(group) {
		return false
	}
	g.Includes = append(g.Includes, group)
	return true
}

// IncludesGroup reports whether group is directly included.
func (g *SegmentGroup) IncludesGroup(group string) bool {
	for _, inc := range g.Includes {
		if inc == group {
			return true
		}
	}
	return false
}

// Property returns the value of the property with the given tag.
func (g *SegmentGroup) Property(tag string) (string, bool) {
	for _, p := range g.Properties {
		if p.Tag == tag {
			return p.Value, true
		}
	}
	return "", false
}

// IsEmpty reports whether the group selects no segments at all.
func (g *SegmentGroup) IsEmpty() bool {
	return len(g.Members) == 0 && len(g.Includes) == 0 && len(g.Paths) == 0 && len(g.SubTrees) == 0
}

// resolveSegments returns every segment id reachable from the group,
// following includes. Cycles are cut at the first revisit.
func resolveSegments(m *Morphology, id string, seen map[string]bool, out map[int]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	g, ok := m.SegmentGroup(id)
	if !ok {
		return
	}
	for _, s := range g.Members {
		out[s] = true
	}
	for _, r := range g.Paths {
		for _, s := range m.Span(r) {
			out[s] = true
		}
	}
	for _, r := range g.SubTrees {
		for _, s := range m.Span(r) {
			out[s] = true
		}
	}
	for _, inc := range g.Includes {
		resolveSegments(m, inc, seen, out)
	}
}

// optimise removes duplicate and self includes, duplicate members, and
// members already covered by an included group.
func (g *SegmentGroup) optimise(m *Morphology) {
	includes := make([]string, 0, len(g.Includes))
	seenInc := make(map[string]bool, len(g.Includes))
	for _, inc := range g.Includes {
		if inc == g.ID || seenInc[inc] {
			continue
		}
		seenInc[inc] = true
		includes = append(includes, inc)
	}
	g.Includes = includes

	covered := make(map[int]bool)
	seen := map[string]bool{g.ID: true}
	for _, inc := range g.Includes {
		resolveSegments(m, inc, seen, covered)
	}

	members := make([]int, 0, len(g.Members))
	seenMem := make(map[int]bool, len(g.Members))
	for _, s := range g.Members {
		if seenMem[s] || covered[s] {
			continue
		}
		seenMem[s] = true
		members = append(members, s)
	}
	g.Members = members
}
