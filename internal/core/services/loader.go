package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Ensure LoaderService implements the interface.
var _ driving.CellLoader = (*LoaderService)(nil)

// LoaderService loads exported morphologies and normalises them.
type LoaderService struct {
	serializer driven.ModelSerializer
	normaliser driven.CellNormaliser
	defaults   driven.NormaliseOptions
}

// NewLoaderService creates a loader. defaults apply to LoadAndSetupCell.
func NewLoaderService(
	serializer driven.ModelSerializer,
	normaliser driven.CellNormaliser,
	defaults driven.NormaliseOptions,
) *LoaderService {
	return &LoaderService{
		serializer: serializer,
		normaliser: normaliser,
		defaults:   defaults,
	}
}

// LoadAndSetupCell reads <cellName>.morph.cell.nml and normalises its first cell.
func (s *LoaderService) LoadAndSetupCell(ctx context.Context, cellName string) (*domain.Document, error) {
	return s.load(ctx, cellName, s.defaults)
}

// LoadRecipe loads the recipe's morphology with its template id and citation.
func (s *LoaderService) LoadRecipe(ctx context.Context, recipe domain.CellRecipe) (*domain.Document, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return s.load(ctx, recipe.Name, driven.NormaliseOptions{
		TemplateID: recipe.TemplateID,
		Citation:   recipe.Citation,
	})
}

func (s *LoaderService) load(ctx context.Context, cellName string, opts driven.NormaliseOptions) (*domain.Document, error) {
	if !domain.IsNmlID(cellName) {
		return nil, fmt.Errorf("%w: cell name %q", domain.ErrInvalidInput, cellName)
	}
	path := cellName + domain.MorphologySuffix
	logger.Section("Load " + cellName)

	doc, err := s.serializer.Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cellName, err)
	}
	cell, err := doc.FirstCell()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cellName, err)
	}
	if n := len(doc.Cells); n > 1 {
		logger.Warn("%s holds %d cells, keeping %s", path, n, cell.ID)
		doc.Cells = doc.Cells[:1]
	}

	// The exporter's cell id is the usual template in the notes.
	if opts.TemplateID == "" {
		opts.TemplateID = cell.ID
	}
	logger.Debug("renaming cell %s to %s", cell.ID, cellName)
	cell.ID = cellName

	if err := s.normaliser.Normalise(ctx, doc, cell, opts); err != nil {
		return nil, fmt.Errorf("normalise %s: %w", cellName, err)
	}
	return doc, nil
}
