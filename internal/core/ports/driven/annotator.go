package driven

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// Annotator attaches one biophysical property to a cell.
// Annotators are chained in a pipeline (channel densities, resistivity, ...).
type Annotator interface {
	// Name returns the step name used in logs and error messages.
	Name() string

	// Annotate mutates cell. doc receives any includes the step needs.
	Annotate(ctx context.Context, doc *domain.Document, cell *domain.Cell) error
}

// AnnotationPipeline chains multiple Annotators.
type AnnotationPipeline interface {
	// Annotate runs every annotator in order and stops at the first error.
	Annotate(ctx context.Context, doc *domain.Document, cell *domain.Cell) error

	// Len returns the number of steps.
	Len() int
}

// AnnotatorFactory builds pipelines from recipe steps.
type AnnotatorFactory interface {
	// Pipeline returns a pipeline running steps in order.
	// Returns domain.ErrUnsupportedType for an unknown step kind.
	Pipeline(steps []domain.AnnotationStep) (AnnotationPipeline, error)

	// Names returns the registered step kinds.
	Names() []string
}
