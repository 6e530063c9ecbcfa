package driven

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// ModelSerializer reads and writes NeuroML model documents.
type ModelSerializer interface {
	// Parse reads the document stored at path.
	// Returns domain.ErrNotFound if nothing is stored there and
	// domain.ErrMalformed if the bytes are not a NeuroML document.
	Parse(ctx context.Context, path string) (*domain.Document, error)

	// Write serialises doc to path. When validate is true the document is
	// checked first and a failure (domain.ErrValidation) prevents the write.
	Write(ctx context.Context, doc *domain.Document, path string, validate bool) error
}

// ModelValidator checks a document against the subset of the NeuroML
// schema this tool emits.
type ModelValidator interface {
	// Validate returns an error wrapping domain.ErrValidation listing
	// every violation found.
	Validate(doc *domain.Document) error
}
