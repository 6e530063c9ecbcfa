package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/recipes"
)

func TestChannelFactoryService_NaChannel(t *testing.T) {
	doc, err := NewChannelFactoryService().CreateChannel(context.Background(), recipes.NaChannelRecipe())

	require.NoError(t, err)
	assert.Equal(t, "na_channel", doc.ID)
	assert.Equal(t, "Na channel for HH neuron", doc.Notes)
	require.Len(t, doc.IonChannels, 1)
	ch := doc.IonChannels[0]
	assert.Equal(t, "na", ch.Species)
	assert.Equal(t, "10pS", ch.Conductance.String())

	m, ok := ch.Gate("m")
	require.True(t, ok)
	assert.Equal(t, 3, m.Instances)
	assert.Equal(t, domain.RateTypeExpLinear, m.ForwardRate.Type)
	assert.Equal(t, domain.RateTypeExp, m.ReverseRate.Type)
	assert.Equal(t, "-18mV", m.ReverseRate.Scale.String())

	h, ok := ch.Gate("h")
	require.True(t, ok)
	assert.Equal(t, 1, h.Instances)
	assert.Equal(t, "0.07per_ms", h.ForwardRate.Rate.String())
	assert.Equal(t, domain.RateTypeSigmoid, h.ReverseRate.Type)
	assert.NoError(t, ch.Validate())
}

func TestChannelFactoryService_MissingRate(t *testing.T) {
	recipe := recipes.NaChannelRecipe()
	recipe.Gates[1].Reverse = domain.RateRecipe{}

	_, err := NewChannelFactoryService().CreateChannel(context.Background(), recipe)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestChannelFactoryService_BadRate(t *testing.T) {
	recipe := recipes.NaChannelRecipe()
	recipe.Gates[0].Forward.Type = "HHCubicRate"

	_, err := NewChannelFactoryService().CreateChannel(context.Background(), recipe)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "gate m forwardRate")
}

func TestChannelFactoryService_DuplicateGate(t *testing.T) {
	recipe := recipes.NaChannelRecipe()
	recipe.Gates[1].ID = "m"

	_, err := NewChannelFactoryService().CreateChannel(context.Background(), recipe)

	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestChannelFactoryService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChannelFactoryService().CreateChannel(ctx, recipes.NaChannelRecipe())

	assert.ErrorIs(t, err, context.Canceled)
}
