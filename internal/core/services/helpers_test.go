package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/adapters/driven/neuroml"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nmlcell/internal/annotators"
	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/normalisers/cell"
	"github.com/custodia-labs/nmlcell/internal/recipes"
)

// minimalMorphology holds one cell with a "soma_0" group and an "all"
// group including it, plus a network that must be dropped.
const minimalMorphology = `<?xml version="1.0" encoding="UTF-8"?>
<neuroml xmlns="http://www.neuroml.org/schema/neuroml2" id="X_export">
    <cell id="X_template_0">
        <notes>Cell: X_template_0 exported from NEURON</notes>
        <morphology id="morphology">
            <segment id="0" name="soma">
                <proximal x="0" y="0" z="0" diameter="10"/>
                <distal x="0" y="0" z="10" diameter="10"/>
            </segment>
            <segment id="1" name="dend">
                <parent segment="0"/>
                <distal x="0" y="20" z="10" diameter="2"/>
            </segment>
            <segmentGroup id="soma_0">
                <member segment="0"/>
            </segmentGroup>
            <segmentGroup id="dend_axon_1">
                <member segment="1"/>
            </segmentGroup>
            <segmentGroup id="all">
                <include segmentGroup="soma_0"/>
                <include segmentGroup="dend_axon_1"/>
            </segmentGroup>
        </morphology>
    </cell>
    <network id="X_net"/>
</neuroml>
`

func putFile(t *testing.T, store driven.ArtifactStore, key, body string) {
	t.Helper()
	_, err := store.Put(context.Background(), key, strings.NewReader(body), driven.PutOptions{})
	require.NoError(t, err)
}

type fixture struct {
	store      *memory.ArtifactStore
	serializer *neuroml.Serializer
	loader     *LoaderService
	producer   *ProducerService
	catalog    *recipes.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewArtifactStore()
	serializer := neuroml.NewSerializer(store)
	loader := NewLoaderService(serializer, cell.New(), driven.NormaliseOptions{
		TemplateID: recipes.GGNTemplateID,
		Citation:   recipes.Citation,
	})
	catalog := recipes.NewBuiltinCatalog()
	producer := NewProducerService(
		catalog,
		loader,
		NewBuilderService(),
		NewAnnotatorService(annotators.NewDefaultRegistry()),
		NewChannelFactoryService(),
		serializer,
		store,
	)
	producer.SetDefaultRun(recipes.DefaultRun)
	producer.newRunID = func() string { return "run-1" }
	return &fixture{store: store, serializer: serializer, loader: loader, producer: producer, catalog: catalog}
}

// mockSerializer implements driven.ModelSerializer for testing.
type mockSerializer struct {
	mock.Mock
}

func (m *mockSerializer) Parse(ctx context.Context, path string) (*domain.Document, error) {
	args := m.Called(ctx, path)
	doc, _ := args.Get(0).(*domain.Document)
	return doc, args.Error(1)
}

func (m *mockSerializer) Write(ctx context.Context, doc *domain.Document, path string, validate bool) error {
	args := m.Called(ctx, doc, path, validate)
	return args.Error(0)
}
