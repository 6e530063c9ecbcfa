package services

import (
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Ensure BuilderService implements the interface.
var _ driving.CellBuilder = (*BuilderService)(nil)

// BuilderService creates single compartment cells.
type BuilderService struct{}

// NewBuilderService creates a builder.
func NewBuilderService() *BuilderService {
	return &BuilderService{}
}

// BuildCell creates a document holding one cell with a single soma segment.
func (s *BuilderService) BuildCell(docID, cellID string, soma domain.SomaGeometry) (*domain.Document, error) {
	if !domain.IsNmlID(docID) {
		return nil, fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, docID)
	}
	if !domain.IsNmlID(cellID) {
		return nil, fmt.Errorf("%w: cell id %q", domain.ErrInvalidInput, cellID)
	}
	logger.Section("Build " + cellID)

	doc := domain.NewDocument(docID)
	cell := domain.NewCell(cellID)
	if err := doc.AddCell(cell); err != nil {
		return nil, err
	}
	cell.SetupNMLCell()
	seg, err := cell.AddSegment(soma.Proximal, soma.Distal, domain.SegmentTypeSoma)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cellID, err)
	}
	logger.Debug("added soma segment %s %s -> %s", seg.Name, soma.Proximal, soma.Distal)
	return doc, nil
}
