package domain

import "fmt"

// Document is the top-level NeuroML container.
// It owns cells, standalone ion channels, includes of external
// definitions and any networks read from an input file.
type Document struct {
	// ID is the document id written on the root element.
	ID string

	// Notes is free text attached to the document.
	Notes string

	// Includes reference external NeuroML files, e.g. channel definitions.
	Includes []Include

	// IonChannels are channels defined inline in this document.
	IonChannels []*IonChannelHH

	// Cells are the cells defined in this document.
	Cells []*Cell

	// Networks are kept only so they can be stripped before export.
	Networks []Network

	// Extra holds other top-level components, carried through unchanged.
	Extra []Element
}

// Include references another NeuroML file by relative path.
type Include struct {
	Href string
}

// Network is an opaque network element read from an input document.
// nmlcell never builds networks; single-cell exports drop them.
type Network struct {
	ID    string
	Notes string
}

// NewDocument creates an empty document with the given id.
func NewDocument(id string) *Document {
	return &Document{ID: id}
}

// AddInclude adds href to the includes unless it is already present.
// Returns true if the include was added.
func (d *Document) AddInclude(href string) bool {
	for _, inc := range d.Includes {
		if inc.Href == href {
			return false
		}
	}
	d.Includes = append(d.Includes, Include{Href: href})
	return true
}

// AddCell appends a cell. Cell ids must be unique within the document.
func (d *Document) AddCell(c *Cell) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("%w: cell requires an id", ErrInvalidInput)
	}
	if _, ok := d.Cell(c.ID); ok {
		return fmt.Errorf("%w: cell %q", ErrDuplicateID, c.ID)
	}
	d.Cells = append(d.Cells, c)
	return nil
}

// AddIonChannel appends an ion channel. Channel ids must be unique within the document.
func (d *Document) AddIonChannel(ch *IonChannelHH) error {
	if ch == nil || ch.ID == "" {
		return fmt.Errorf("%w: ion channel requires an id", ErrInvalidInput)
	}
	for _, existing := range d.IonChannels {
		if existing.ID == ch.ID {
			return fmt.Errorf("%w: ion channel %q", ErrDuplicateID, ch.ID)
		}
	}
	d.IonChannels = append(d.IonChannels, ch)
	return nil
}

// Cell returns the cell with the given id.
func (d *Document) Cell(id string) (*Cell, bool) {
	for _, c := range d.Cells {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// FirstCell returns the first cell, or ErrMalformed if the document has none.
func (d *Document) FirstCell() (*Cell, error) {
	if len(d.Cells) == 0 {
		return nil, fmt.Errorf("%w: document %q contains no cells", ErrMalformed, d.ID)
	}
	return d.Cells[0], nil
}

// StripNetworks removes all networks from the document.
func (d *Document) StripNetworks() {
	d.Networks = nil
}
