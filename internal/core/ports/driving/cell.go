package driving

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// CellLoader loads a morphology exported by another tool and normalises it.
type CellLoader interface {
	// LoadAndSetupCell reads <cellName>.morph.cell.nml and returns a document
	// holding exactly one normalised cell called cellName.
	// Returns domain.ErrNotFound if the input is missing and
	// domain.ErrMalformed if it holds no cell.
	LoadAndSetupCell(ctx context.Context, cellName string) (*domain.Document, error)

	// LoadRecipe is LoadAndSetupCell with the template id and citation
	// taken from the recipe.
	LoadRecipe(ctx context.Context, recipe domain.CellRecipe) (*domain.Document, error)
}

// CellBuilder creates a cell from scratch.
type CellBuilder interface {
	// BuildCell returns a document docID holding one cell cellID whose
	// morphology is a single soma segment.
	BuildCell(docID, cellID string, soma domain.SomaGeometry) (*domain.Document, error)
}

// BiophysicsAnnotator attaches electrical properties to a cell.
type BiophysicsAnnotator interface {
	// Annotate runs steps in order against cell. The first failure aborts.
	Annotate(ctx context.Context, doc *domain.Document, cell *domain.Cell, steps []domain.AnnotationStep) error
}

// ChannelFactory assembles Hodgkin-Huxley channels.
type ChannelFactory interface {
	// CreateChannel builds the channel described by recipe, wraps it in a
	// document and validates the channel recursively.
	CreateChannel(ctx context.Context, recipe domain.ChannelRecipe) (*domain.Document, error)
}
