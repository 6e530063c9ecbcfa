package domain

// Element is a NeuroML element nmlcell does not interpret. It is kept as
// read so that a loaded model is written back without losing content.
type Element struct {
	// Name is the local element name, e.g. "inhomogeneousParameter".
	Name string

	// Space is the namespace URI when it differs from the NeuroML one.
	Space string
	Attrs []Attr

	// Inner is the raw markup between the start and end tags.
	Inner string
}

// Attr is an attribute of an Element. Space is the namespace URI, if any.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Property is a tag/value pair such as numberInternalDivisions.
type Property struct {
	Tag   string
	Value string
}

// SegmentRange selects segments along the parent tree, as the path and
// subTree elements of a segment group do. A nil end is open: without From
// the range starts at the root, without To it runs to every distal tip.
type SegmentRange struct {
	From *int
	To   *int
}
