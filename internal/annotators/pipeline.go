// Package annotators chains the steps that attach biophysics to a cell.
package annotators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.AnnotationPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Annotators and runs them in order.
type Pipeline struct {
	annotators []driven.Annotator
}

// NewPipeline creates a pipeline running annotators in the order provided.
func NewPipeline(annotators ...driven.Annotator) *Pipeline {
	return &Pipeline{
		annotators: annotators,
	}
}

// Annotate runs the cell through every annotator. The first failure stops
// the pipeline; steps already applied are not rolled back.
func (p *Pipeline) Annotate(ctx context.Context, doc *domain.Document, cell *domain.Cell) error {
	if cell == nil {
		return fmt.Errorf("%w: cell is nil", domain.ErrInvalidInput)
	}

	for _, a := range p.annotators {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.Annotate(ctx, doc, cell); err != nil {
			return fmt.Errorf("step %s: %w", a.Name(), err)
		}
	}

	return nil
}

// Add appends an annotator to the pipeline.
func (p *Pipeline) Add(a driven.Annotator) {
	p.annotators = append(p.annotators, a)
}

// Len returns the number of annotators in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.annotators)
}

// Names returns the step names in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.annotators))
	for i, a := range p.annotators {
		names[i] = a.Name()
	}
	return names
}
