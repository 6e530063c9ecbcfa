package annotators

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(_ map[string]any) (driven.Annotator, error) {
		return &mockAnnotator{name: "test"}, nil
	})

	if !r.Has("test") {
		t.Error("expected 'test' to be registered")
	}
	if r.Has("other") {
		t.Error("expected 'other' not to be registered")
	}
}

func TestRegistry_Build_Unknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nonexistent", nil)
	if !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewDefaultRegistry()

	want := []string{
		domain.StepChannelDensity,
		domain.StepInitMembPotential,
		domain.StepResistivity,
		domain.StepSpecificCapacitance,
	}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestRegistry_Pipeline_GGNSteps(t *testing.T) {
	r := NewDefaultRegistry()
	steps := []domain.AnnotationStep{
		{Kind: domain.StepChannelDensity, Params: map[string]any{
			"id": "pas", "ion_channel": "pas", "cond_density": "0.00003 S_per_cm2",
			"erev": "-51 mV", "group": "all", "ion": "non_specific",
			"file": "channels/pas.channel.nml",
		}},
		{Kind: domain.StepResistivity, Params: map[string]any{"value": "0.1 kohm_cm", "group": "all"}},
		{Kind: domain.StepSpecificCapacitance, Params: map[string]any{"value": "1 uF_per_cm2", "group": "all"}},
		{Kind: domain.StepInitMembPotential, Params: map[string]any{"value": "-80mV"}},
	}

	p, err := r.Pipeline(steps)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", p.Len())
	}

	doc := domain.NewDocument("GGN_doc")
	cell := domain.NewCell("GGN")
	if err := doc.AddCell(cell); err != nil {
		t.Fatal(err)
	}
	cell.SetupNMLCell()

	if err := p.Annotate(context.Background(), doc, cell); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if len(cell.Biophysics.Membrane.ChannelDensities) != 1 {
		t.Errorf("expected one channel density")
	}
	if got := cell.Biophysics.Membrane.InitMembPotential.String(); got != "-80mV" {
		t.Errorf("unexpected init potential %q", got)
	}
	if len(doc.Includes) != 1 {
		t.Errorf("expected pas include, got %v", doc.Includes)
	}
}

func TestRegistry_Pipeline_Errors(t *testing.T) {
	tests := []struct {
		name string
		step domain.AnnotationStep
		want error
	}{
		{"unknown kind", domain.AnnotationStep{Kind: "spine_density"}, domain.ErrUnsupportedType},
		{"missing value", domain.AnnotationStep{Kind: domain.StepResistivity}, domain.ErrInvalidInput},
		{"missing erev", domain.AnnotationStep{Kind: domain.StepChannelDensity, Params: map[string]any{
			"id": "pas", "ion_channel": "pas", "cond_density": "1 S_per_cm2",
		}}, domain.ErrInvalidInput},
		{"numeric value", domain.AnnotationStep{Kind: domain.StepInitMembPotential, Params: map[string]any{
			"value": -80,
		}}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultRegistry().Pipeline([]domain.AnnotationStep{tt.step})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
