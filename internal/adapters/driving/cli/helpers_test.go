package cli

import (
	"bytes"
	"testing"

	"github.com/custodia-labs/nmlcell/internal/adapters/driven/neuroml"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nmlcell/internal/annotators"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/services"
	"github.com/custodia-labs/nmlcell/internal/normalisers/cell"
	"github.com/custodia-labs/nmlcell/internal/recipes"
)

// setupTestServices wires the real services over an in-memory store.
// The default run is KC so no morphology input is needed.
func setupTestServices(t *testing.T) (*memory.ArtifactStore, func()) {
	t.Helper()
	store := memory.NewArtifactStore()
	serializer := neuroml.NewSerializer(store)
	catalog := recipes.NewBuiltinCatalog()
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
	producer.SetDefaultRun([]string{"KC"})

	Configure(&Services{
		Producer:   producer,
		Recipes:    catalog,
		Serializer: serializer,
		Store:      store,
		Workdir:    t.TempDir(),
	})
	return store, func() { Configure(nil) }
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}
