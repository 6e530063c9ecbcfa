// Command nmlcell builds, annotates and writes NeuroML cell models.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/nmlcell/internal/adapters/driven/config/file"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/neuroml"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage"
	"github.com/custodia-labs/nmlcell/internal/adapters/driving/cli"
	"github.com/custodia-labs/nmlcell/internal/annotators"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/services"
	"github.com/custodia-labs/nmlcell/internal/logger"
	"github.com/custodia-labs/nmlcell/internal/normalisers/cell"
	"github.com/custodia-labs/nmlcell/internal/recipes"
)

// Config keys read at startup. Storage keys live in the storage package.
const (
	keySeed           = "run.seed"
	keyDefaultRun     = "run.default"
	keyRecipeFile     = "recipes.file"
	keySchemaLocation = "neuroml.schema_location"

	defaultRecipeFile = "recipes.toml"
)

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	workdir := opts.Workdir
	if workdir == "" {
		workdir = "."
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(workdir, file.DefaultPath)
	}

	done := logger.Stage("bootstrap")
	defer done()

	cfg, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Debug("config %s", cfg.Path())

	store, err := storage.Open(ctx, cfg, workdir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Debug("storage driver %s", store.Driver())

	var serializerOpts []neuroml.Option
	if loc, ok := cfg.Get(keySchemaLocation); ok {
		s, _ := loc.(string)
		serializerOpts = append(serializerOpts, neuroml.WithSchemaLocation(s))
	}
	serializer := neuroml.NewSerializer(store, serializerOpts...)

	catalog := recipes.NewBuiltinCatalog()
	recipeFile := cfg.GetString(keyRecipeFile)
	if recipeFile == "" {
		recipeFile = defaultRecipeFile
	}
	if !filepath.IsAbs(recipeFile) {
		recipeFile = filepath.Join(workdir, recipeFile)
	}
	reload := func() error {
		return catalog.LoadFile(recipeFile)
	}
	if err := reload(); err != nil {
		return nil, fmt.Errorf("recipes: %w", err)
	}

	loader := services.NewLoaderService(serializer, cell.New(), driven.NormaliseOptions{
		TemplateID: recipes.GGNTemplateID,
		Citation:   recipes.Citation,
	})
	producer := services.NewProducerService(
		catalog,
		loader,
		services.NewBuilderService(),
		services.NewAnnotatorService(annotators.NewDefaultRegistry()),
		services.NewChannelFactoryService(),
		serializer,
		store,
	)
	if _, ok := cfg.Get(keySeed); ok {
		producer.SetSeed(int64(cfg.GetInt(keySeed)))
	}
	defaultRun := cfg.GetStringSlice(keyDefaultRun)
	if len(defaultRun) == 0 {
		defaultRun = recipes.DefaultRun
	}
	producer.SetDefaultRun(defaultRun)

	return &cli.Services{
		Producer:      producer,
		Recipes:       catalog,
		Serializer:    serializer,
		Store:         store,
		Workdir:       workdir,
		RecipeFile:    recipeFile,
		ReloadRecipes: reload,
	}, nil
}
