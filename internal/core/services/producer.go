package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// DefaultSeed is the seed stamped on artifacts when none is configured.
const DefaultSeed int64 = 1412

// Metadata keys stored with every artifact.
const (
	MetaRecipe = "recipe"
	MetaRunID  = "run_id"
	MetaSeed   = "seed"
)

// Ensure ProducerService implements the interface.
var _ driving.Producer = (*ProducerService)(nil)

// ProducerService runs recipes end to end: obtain a cell or channel,
// annotate it, validate and write it.
type ProducerService struct {
	recipes    driven.RecipeStore
	loader     driving.CellLoader
	builder    driving.CellBuilder
	annotator  driving.BiophysicsAnnotator
	channels   driving.ChannelFactory
	serializer driven.ModelSerializer
	store      driven.ArtifactStore

	seed       int64
	defaultRun []string
	newRunID   func() string
}

// NewProducerService creates a producer. store is the store the serializer
// writes to; it is read back to report artifact sizes.
func NewProducerService(
	recipes driven.RecipeStore,
	loader driving.CellLoader,
	builder driving.CellBuilder,
	annotator driving.BiophysicsAnnotator,
	channels driving.ChannelFactory,
	serializer driven.ModelSerializer,
	store driven.ArtifactStore,
) *ProducerService {
	return &ProducerService{
		recipes:    recipes,
		loader:     loader,
		builder:    builder,
		annotator:  annotator,
		channels:   channels,
		serializer: serializer,
		store:      store,
		seed:       DefaultSeed,
		newRunID:   uuid.NewString,
	}
}

// SetSeed sets the seed recorded in artifact metadata.
func (p *ProducerService) SetSeed(seed int64) {
	p.seed = seed
}

// SetDefaultRun sets the recipes Run produces when given no names.
func (p *ProducerService) SetDefaultRun(names []string) {
	p.defaultRun = append([]string(nil), names...)
}

// ProduceCell produces one cell artifact under a fresh run id.
func (p *ProducerService) ProduceCell(ctx context.Context, recipe domain.CellRecipe) (*driving.Artifact, error) {
	return p.produceCell(ctx, recipe, p.newRunID())
}

// ProduceChannel produces one channel artifact under a fresh run id.
func (p *ProducerService) ProduceChannel(ctx context.Context, recipe domain.ChannelRecipe) (*driving.Artifact, error) {
	return p.produceChannel(ctx, recipe, p.newRunID())
}

// Run produces names in order, or the default run when names is empty.
// Artifacts written before a failure are returned with the error.
func (p *ProducerService) Run(ctx context.Context, names ...string) ([]driving.Artifact, error) {
	if len(names) == 0 {
		names = p.defaultRun
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no recipes to run", domain.ErrInvalidInput)
	}
	runID := p.newRunID()
	logger.Debug("run %s: %v", runID, names)

	artifacts := make([]driving.Artifact, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		a, err := p.produce(ctx, name, runID)
		if err != nil {
			return artifacts, fmt.Errorf("recipe %s: %w", name, err)
		}
		artifacts = append(artifacts, *a)
	}
	return artifacts, nil
}

func (p *ProducerService) produce(ctx context.Context, name, runID string) (*driving.Artifact, error) {
	kind, err := p.recipes.Kind(name)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.RecipeKindCell:
		recipe, err := p.recipes.Cell(name)
		if err != nil {
			return nil, err
		}
		return p.produceCell(ctx, recipe, runID)
	case domain.RecipeKindChannel:
		recipe, err := p.recipes.Channel(name)
		if err != nil {
			return nil, err
		}
		return p.produceChannel(ctx, recipe, runID)
	default:
		return nil, fmt.Errorf("%w: recipe kind %q", domain.ErrUnsupportedType, kind)
	}
}

// Recipes lists every recipe with its kind, marking the default run.
func (p *ProducerService) Recipes() []driving.RecipeInfo {
	defaults := make(map[string]bool, len(p.defaultRun))
	for _, name := range p.defaultRun {
		defaults[name] = true
	}
	names := p.recipes.Names()
	infos := make([]driving.RecipeInfo, 0, len(names))
	for _, name := range names {
		kind, err := p.recipes.Kind(name)
		if err != nil {
			continue
		}
		infos = append(infos, driving.RecipeInfo{Name: name, Kind: kind, Default: defaults[name]})
	}
	return infos
}

func (p *ProducerService) produceCell(ctx context.Context, recipe domain.CellRecipe, runID string) (*driving.Artifact, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	defer logger.Stage("Cell " + recipe.Name)()

	var doc *domain.Document
	var err error
	switch recipe.Source {
	case domain.CellSourceLoad:
		doc, err = p.loader.LoadRecipe(ctx, recipe)
	case domain.CellSourceBuild:
		doc, err = p.builder.BuildCell(recipe.DocID(), recipe.Name, *recipe.Soma)
	}
	if err != nil {
		return nil, err
	}
	cell, ok := doc.Cell(recipe.Name)
	if !ok {
		return nil, fmt.Errorf("%w: document has no cell %q", domain.ErrMalformed, recipe.Name)
	}
	if err := p.annotator.Annotate(ctx, doc, cell, recipe.Steps); err != nil {
		return nil, err
	}

	artifact := &driving.Artifact{
		Name:    recipe.Name,
		Kind:    domain.RecipeKindCell,
		Key:     recipe.OutputFile(),
		CellID:  cell.ID,
		RunID:   runID,
		Summary: cell.Summary(false, true),
	}
	if err := p.write(ctx, doc, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (p *ProducerService) produceChannel(ctx context.Context, recipe domain.ChannelRecipe, runID string) (*driving.Artifact, error) {
	defer logger.Stage("Channel " + recipe.Name)()

	doc, err := p.channels.CreateChannel(ctx, recipe)
	if err != nil {
		return nil, err
	}
	ch := doc.IonChannels[0]
	artifact := &driving.Artifact{
		Name:    recipe.Name,
		Kind:    domain.RecipeKindChannel,
		Key:     recipe.Output,
		CellID:  ch.ID,
		RunID:   runID,
		Summary: ch.Summary(),
	}
	if err := p.write(ctx, doc, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// write validates and stores doc, then fills in the artifact size.
func (p *ProducerService) write(ctx context.Context, doc *domain.Document, a *driving.Artifact) error {
	ctx = driven.WithArtifactMetadata(ctx, map[string]string{
		MetaRecipe: a.Name,
		MetaRunID:  a.RunID,
		MetaSeed:   strconv.FormatInt(p.seed, 10),
	})
	if err := p.serializer.Write(ctx, doc, a.Key, true); err != nil {
		return err
	}
	if p.store != nil {
		info, err := p.store.Head(ctx, a.Key)
		if err != nil {
			return fmt.Errorf("stat %s: %w", a.Key, err)
		}
		a.Size = info.Size
	}
	logger.Info("Written %s (%s) to %s", a.CellID, a.Name, a.Key)
	return nil
}
