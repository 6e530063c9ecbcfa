package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Ensure ChannelFactoryService implements the interface.
var _ driving.ChannelFactory = (*ChannelFactoryService)(nil)

// ChannelFactoryService assembles Hodgkin-Huxley channels from recipes.
type ChannelFactoryService struct{}

// NewChannelFactoryService creates a channel factory.
func NewChannelFactoryService() *ChannelFactoryService {
	return &ChannelFactoryService{}
}

// CreateChannel builds the channel and its document. A gate recipe with
// an empty rate leaves that slot unset, which fails validation.
func (s *ChannelFactoryService) CreateChannel(ctx context.Context, recipe domain.ChannelRecipe) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	logger.Section("Channel " + recipe.ChannelID)

	ch, err := domain.NewIonChannelHH(recipe.ChannelID, recipe.Species, recipe.Conductance, recipe.Notes)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", recipe.ChannelID, err)
	}
	for _, gr := range recipe.Gates {
		gate, err := newGate(gr)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", recipe.ChannelID, err)
		}
		if err := ch.AddGate(gate); err != nil {
			return nil, err
		}
		logger.Debug("gate %s: %d instance(s)", gate.ID, gate.Instances)
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}

	docID := recipe.DocumentID
	if docID == "" {
		docID = recipe.ChannelID
	}
	doc := domain.NewDocument(docID)
	doc.Notes = recipe.DocumentNotes
	if err := doc.AddIonChannel(ch); err != nil {
		return nil, err
	}
	return doc, nil
}

func newGate(gr domain.GateRecipe) (*domain.GateHHRates, error) {
	gate, err := domain.NewGateHHRates(gr.ID, gr.Instances, gr.Notes)
	if err != nil {
		return nil, err
	}
	rates := []struct {
		kind domain.RateKind
		r    domain.RateRecipe
	}{
		{domain.ForwardRate, gr.Forward},
		{domain.ReverseRate, gr.Reverse},
	}
	for _, rate := range rates {
		if rate.r == (domain.RateRecipe{}) {
			continue
		}
		hh, err := domain.NewHHRate(rate.r.Type, rate.r.Rate, rate.r.Midpoint, rate.r.Scale)
		if err != nil {
			return nil, fmt.Errorf("gate %s %s: %w", gr.ID, rate.kind, err)
		}
		if err := gate.SetRate(rate.kind, hh); err != nil {
			return nil, err
		}
	}
	return gate, nil
}
