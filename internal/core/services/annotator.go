package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Ensure AnnotatorService implements the interface.
var _ driving.BiophysicsAnnotator = (*AnnotatorService)(nil)

// AnnotatorService runs recipe steps against a cell.
type AnnotatorService struct {
	factory driven.AnnotatorFactory
}

// NewAnnotatorService creates an annotator building pipelines with factory.
func NewAnnotatorService(factory driven.AnnotatorFactory) *AnnotatorService {
	return &AnnotatorService{factory: factory}
}

// Annotate builds a pipeline from steps and runs it. The first failing
// step aborts; earlier steps have already been applied to cell.
func (s *AnnotatorService) Annotate(
	ctx context.Context,
	doc *domain.Document,
	cell *domain.Cell,
	steps []domain.AnnotationStep,
) error {
	if doc == nil || cell == nil {
		return fmt.Errorf("%w: annotate requires a document and a cell", domain.ErrInvalidInput)
	}
	pipeline, err := s.factory.Pipeline(steps)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", cell.ID, err)
	}
	logger.Debug("annotating %s with %d step(s)", cell.ID, pipeline.Len())
	if err := pipeline.Annotate(ctx, doc, cell); err != nil {
		return fmt.Errorf("annotate %s: %w", cell.ID, err)
	}
	return nil
}
