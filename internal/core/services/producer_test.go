package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/annotators"
	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/recipes"
)

// ggnMorphology stands in for the exported GGN morphology.
const ggnMorphology = `<neuroml id="GGN_20170309_sc">
    <cell id="GGN_20170309_sc_0_0">
        <notes>Cell: GGN_20170309_sc_0_0 exported from NEURON ModelView</notes>
        <morphology id="morphology">
            <segment id="0" name="soma"><proximal x="0" y="0" z="0" diameter="20"/><distal x="0" y="0" z="20" diameter="20"/></segment>
            <segment id="1" name="dend"><parent segment="0"/><distal x="0" y="40" z="20" diameter="4"/></segment>
            <segmentGroup id="soma"><member segment="0"/></segmentGroup>
            <segmentGroup id="dend_5"><member segment="1"/></segmentGroup>
        </morphology>
    </cell>
    <network id="GGN_net"/>
</neuroml>`

func TestProducerService_RunDefault(t *testing.T) {
	f := newFixture(t)
	putFile(t, f.store, "GGN.morph.cell.nml", ggnMorphology)

	artifacts, err := f.producer.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	a := artifacts[0]
	assert.Equal(t, "GGN", a.Name)
	assert.Equal(t, "GGN.cell.nml", a.Key)
	assert.Equal(t, "GGN", a.CellID)
	assert.Equal(t, "run-1", a.RunID)
	assert.Positive(t, a.Size)
	assert.Contains(t, a.Summary, "pas: pas (non_specific) 0.00003 S_per_cm2, erev -51 mV on all")

	doc, err := f.serializer.Parse(context.Background(), "GGN.cell.nml")
	require.NoError(t, err)
	require.Len(t, doc.Cells, 1)
	assert.Empty(t, doc.Networks)
	c := doc.Cells[0]
	assert.Equal(t, "Cell: GGN exported from NEURON ModelView"+recipes.Citation, c.Notes)
	soma, _ := c.SegmentGroup(domain.GroupSoma)
	assert.Equal(t, []string{"soma"}, soma.Includes)
	r, _ := c.Biophysics.Resistivity(domain.GroupAll)
	assert.Equal(t, "0.1 kohm_cm", r.String())

	info, err := f.store.Head(context.Background(), "GGN.cell.nml")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{MetaRecipe: "GGN", MetaRunID: "run-1", MetaSeed: "1412"}, info.Metadata)
}

func TestProducerService_RunAll(t *testing.T) {
	f := newFixture(t)
	f.producer.SetSeed(7)
	putFile(t, f.store, "GGN.morph.cell.nml", ggnMorphology)

	artifacts, err := f.producer.Run(context.Background(), recipes.KC, recipes.NaChannel, recipes.GGN)

	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, "KC.cell.nml", artifacts[0].Key)
	assert.Equal(t, domain.RecipeKindChannel, artifacts[1].Kind)
	assert.Equal(t, "HH_example_na_channel.nml", artifacts[1].Key)
	assert.Contains(t, artifacts[1].Summary, "IonChannelHH: na_channel")

	doc, err := f.serializer.Parse(context.Background(), "KC.cell.nml")
	require.NoError(t, err)
	assert.Equal(t, "KC_doc", doc.ID)
	seg := doc.Cells[0].Morphology.Segments
	require.Len(t, seg, 1)
	assert.Equal(t, domain.Point3DWithDiam{Z: 6.366, Diameter: 20}, seg[0].Distal)

	info, _ := f.store.Head(context.Background(), "HH_example_na_channel.nml")
	assert.Equal(t, "7", info.Metadata[MetaSeed])
}

func TestProducerService_RunStopsAtFirstError(t *testing.T) {
	f := newFixture(t)

	artifacts, err := f.producer.Run(context.Background(), recipes.KC, recipes.GGN, recipes.NaChannel)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "recipe GGN")
	require.Len(t, artifacts, 1)
	_, ok := f.store.Bytes("HH_example_na_channel.nml")
	assert.False(t, ok)
	_, ok = f.store.Bytes("GGN.cell.nml")
	assert.False(t, ok)
}

func TestProducerService_UnknownRecipe(t *testing.T) {
	f := newFixture(t)

	_, err := f.producer.Run(context.Background(), "PN")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducerService_NoDefaultRun(t *testing.T) {
	f := newFixture(t)
	f.producer.SetDefaultRun(nil)

	_, err := f.producer.Run(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProducerService_FailedAnnotationWritesNothing(t *testing.T) {
	f := newFixture(t)
	recipe := recipes.KCRecipe()
	recipe.Steps = append(recipe.Steps, domain.AnnotationStep{
		Kind:   domain.StepResistivity,
		Params: map[string]any{"value": "1 ohm_cm", "group": "apical"},
	})

	_, err := f.producer.ProduceCell(context.Background(), recipe)

	assert.ErrorIs(t, err, domain.ErrValidation)
	list, _ := f.store.List(context.Background(), "")
	assert.Empty(t, list)
}

func TestProducerService_WritesWithValidation(t *testing.T) {
	ser := new(mockSerializer)
	ser.On("Write", mock.Anything, mock.AnythingOfType("*domain.Document"), "KC.cell.nml", true).
		Run(func(args mock.Arguments) {
			md := driven.ArtifactMetadata(args.Get(0).(context.Context))
			assert.Equal(t, "KC", md[MetaRecipe])
		}).
		Return(nil)
	p := NewProducerService(
		recipes.NewBuiltinCatalog(),
		nil,
		NewBuilderService(),
		NewAnnotatorService(annotators.NewDefaultRegistry()),
		NewChannelFactoryService(),
		ser,
		nil,
	)

	a, err := p.ProduceCell(context.Background(), recipes.KCRecipe())

	require.NoError(t, err)
	assert.NotEmpty(t, a.RunID)
	assert.Zero(t, a.Size)
	ser.AssertExpectations(t)
}

func TestProducerService_WriteError(t *testing.T) {
	ser := new(mockSerializer)
	ser.On("Write", mock.Anything, mock.Anything, "HH_example_na_channel.nml", true).
		Return(errors.New("disk full"))
	p := NewProducerService(recipes.NewBuiltinCatalog(), nil, nil, nil, NewChannelFactoryService(), ser, nil)

	_, err := p.ProduceChannel(context.Background(), recipes.NaChannelRecipe())

	assert.EqualError(t, err, "disk full")
}

func TestProducerService_Recipes(t *testing.T) {
	f := newFixture(t)

	infos := f.producer.Recipes()

	require.Len(t, infos, 3)
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
		assert.Equal(t, info.Name == recipes.GGN, info.Default, info.Name)
	}
	assert.Equal(t, "GGN,KC,na_channel", strings.Join(names, ","))
}
