package driven

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// CellNormaliser brings a cell exported by another tool into the canonical
// form the annotators expect.
type CellNormaliser interface {
	// Normalise edits cell in place. The document is passed so the
	// normaliser can drop content a single cell export must not carry.
	Normalise(ctx context.Context, doc *domain.Document, cell *domain.Cell, opts NormaliseOptions) error
}

// NormaliseOptions controls a normalisation run.
type NormaliseOptions struct {
	// TemplateID is the identifier the exporter wrote into the notes.
	// Every occurrence is replaced by the cell id. Empty skips replacement.
	TemplateID string

	// Citation is appended to the cell notes when non-empty.
	Citation string
}
