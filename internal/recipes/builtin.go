package recipes

import "github.com/custodia-labs/nmlcell/internal/core/domain"

// Names of the built-in recipes.
const (
	GGN       = "GGN"
	KC        = "KC"
	NaChannel = "na_channel"
)

// GGNTemplateID is the id the exporter gave the GGN morphology.
const GGNTemplateID = "GGN_20170309_sc_0_0"

// Citation is appended to the notes of every loaded cell.
const Citation = ". Reference: Subhasis Ray, Zane N Aldworth, Mark A Stopfer (2020) " +
	"Feedback inhibition and its control in an insect olfactory circuit eLife 9:e53281."

// PasChannelFile is the passive channel definition referenced by the cells.
const PasChannelFile = "channels/pas.channel.nml"

// DefaultRun is the sequence run when no recipe is named.
var DefaultRun = []string{GGN}

func passive(condDensity, erev string) domain.AnnotationStep {
	return domain.AnnotationStep{
		Kind: domain.StepChannelDensity,
		Params: map[string]any{
			"id":           "pas",
			"ion_channel":  "pas",
			"cond_density": condDensity,
			"erev":         erev,
			"group":        domain.GroupAll,
			"ion":          domain.IonNonSpecific,
			"file":         PasChannelFile,
		},
	}
}

func scalar(kind, value, group string) domain.AnnotationStep {
	params := map[string]any{"value": value}
	if group != "" {
		params["group"] = group
	}
	return domain.AnnotationStep{Kind: kind, Params: params}
}

// GGNRecipe returns the giant GABAergic neuron recipe.
func GGNRecipe() domain.CellRecipe {
	return domain.CellRecipe{
		Name:       GGN,
		Source:     domain.CellSourceLoad,
		TemplateID: GGNTemplateID,
		Citation:   Citation,
		Steps: []domain.AnnotationStep{
			passive("0.00003 S_per_cm2", "-51 mV"),
			scalar(domain.StepResistivity, "0.1 kohm_cm", domain.GroupAll),
			scalar(domain.StepSpecificCapacitance, "1 uF_per_cm2", domain.GroupAll),
			scalar(domain.StepInitMembPotential, "-80mV", ""),
		},
	}
}

// KCRecipe returns the Kenyon cell recipe.
func KCRecipe() domain.CellRecipe {
	return domain.CellRecipe{
		Name:       KC,
		Source:     domain.CellSourceBuild,
		DocumentID: "KC_doc",
		Soma: &domain.SomaGeometry{
			Proximal: domain.Point3DWithDiam{X: 0, Y: 0, Z: 0, Diameter: 20},
			Distal:   domain.Point3DWithDiam{X: 0, Y: 0, Z: 6.366, Diameter: 20},
		},
		Steps: []domain.AnnotationStep{
			passive(".0000975 S_per_cm2", "-70 mV"),
			scalar(domain.StepResistivity, "35.4 ohm_cm", domain.GroupAll),
			scalar(domain.StepSpecificCapacitance, "1 uF_per_cm2", domain.GroupAll),
			scalar(domain.StepInitMembPotential, "-80mV", ""),
		},
	}
}

// NaChannelRecipe returns the Hodgkin-Huxley sodium channel recipe.
func NaChannelRecipe() domain.ChannelRecipe {
	return domain.ChannelRecipe{
		Name:        NaChannel,
		ChannelID:   "na_channel",
		Species:     domain.IonSodium,
		Conductance: "10pS",
		Notes:       "Sodium channel for HH cell",
		Gates: []domain.GateRecipe{
			{
				ID:        "m",
				Instances: 3,
				Notes:     "m gate for na channel",
				Forward:   domain.RateRecipe{Type: domain.RateTypeExpLinear, Rate: "1per_ms", Midpoint: "-40mV", Scale: "10mV"},
				Reverse:   domain.RateRecipe{Type: domain.RateTypeExp, Rate: "4per_ms", Midpoint: "-65mV", Scale: "-18mV"},
			},
			{
				ID:        "h",
				Instances: 1,
				Notes:     "h gate for na channel",
				Forward:   domain.RateRecipe{Type: domain.RateTypeExp, Rate: "0.07per_ms", Midpoint: "-65mV", Scale: "-20mV"},
				Reverse:   domain.RateRecipe{Type: domain.RateTypeSigmoid, Rate: "1per_ms", Midpoint: "-35mV", Scale: "10mV"},
			},
		},
		DocumentID:    "na_channel",
		DocumentNotes: "Na channel for HH neuron",
		Output:        "HH_example_na_channel.nml",
	}
}
