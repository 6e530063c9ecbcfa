package domain

import (
	"fmt"
	"regexp"
)

// RecipeKind distinguishes cell recipes from channel recipes.
type RecipeKind string

const (
	RecipeKindCell    RecipeKind = "cell"
	RecipeKindChannel RecipeKind = "channel"
)

// CellSource says where a recipe's morphology comes from.
type CellSource string

const (
	// CellSourceLoad reads <name>.morph.cell.nml exported by another tool.
	CellSourceLoad CellSource = "load"
	// CellSourceBuild creates a single-soma morphology from the recipe geometry.
	CellSourceBuild CellSource = "build"
)

// Annotation step kinds understood by the default annotator registry.
const (
	StepChannelDensity      = "channel_density"
	StepResistivity         = "resistivity"
	StepSpecificCapacitance = "specific_capacitance"
	StepInitMembPotential   = "init_memb_potential"
)

// File name suffixes for cell inputs and outputs.
const (
	MorphologySuffix = ".morph.cell.nml"
	CellSuffix       = ".cell.nml"
)

var nmlIDPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsNmlID reports whether s is a valid NeuroML identifier.
func IsNmlID(s string) bool {
	return nmlIDPattern.MatchString(s)
}

// AnnotationStep is one entry of a cell recipe's annotation sequence.
// Params is kind specific and usually comes straight from TOML.
type AnnotationStep struct {
	Kind   string
	Params map[string]any
}

// Param returns a string parameter, or "" if absent or not a string.
func (s AnnotationStep) Param(key string) string {
	if s.Params == nil {
		return ""
	}
	v, _ := s.Params[key].(string)
	return v
}

// SomaGeometry is the single segment created on the build path.
type SomaGeometry struct {
	Proximal Point3DWithDiam
	Distal   Point3DWithDiam
}

// CellRecipe describes how to produce one cell artifact.
type CellRecipe struct {
	// Name is the cell id and the stem of its input and output files.
	Name string

	Source CellSource

	// DocumentID names the document on the build path. Defaults to <Name>_doc.
	DocumentID string

	// TemplateID is replaced by Name in the notes of a loaded cell.
	TemplateID string

	// Citation is appended to the notes of a loaded cell.
	Citation string

	// Soma is required on the build path.
	Soma *SomaGeometry

	// Output overrides the default <Name>.cell.nml.
	Output string

	Steps []AnnotationStep
}

// InputFile returns the morphology file read on the load path.
func (r CellRecipe) InputFile() string {
	return r.Name + MorphologySuffix
}

// OutputFile returns the key the annotated cell is written to.
func (r CellRecipe) OutputFile() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Name + CellSuffix
}

// DocID returns the document id used on the build path.
func (r CellRecipe) DocID() string {
	if r.DocumentID != "" {
		return r.DocumentID
	}
	return r.Name + "_doc"
}

// Validate checks the recipe is complete enough to run.
func (r CellRecipe) Validate() error {
	if !IsNmlID(r.Name) {
		return fmt.Errorf("%w: recipe name %q is not a valid id", ErrInvalidInput, r.Name)
	}
	switch r.Source {
	case CellSourceLoad:
	case CellSourceBuild:
		if r.Soma == nil {
			return fmt.Errorf("%w: recipe %q builds a cell but has no soma", ErrInvalidInput, r.Name)
		}
	default:
		return fmt.Errorf("%w: recipe %q source %q", ErrUnsupportedType, r.Name, r.Source)
	}
	for i, s := range r.Steps {
		if s.Kind == "" {
			return fmt.Errorf("%w: recipe %q step %d has no kind", ErrInvalidInput, r.Name, i)
		}
	}
	return nil
}

// RateRecipe is the textual form of an HHRate.
type RateRecipe struct {
	Type     RateType
	Rate     string
	Midpoint string
	Scale    string
}

// GateRecipe is the textual form of a GateHHRates.
type GateRecipe struct {
	ID        string
	Instances int
	Notes     string
	Forward   RateRecipe
	Reverse   RateRecipe
}

// ChannelRecipe describes a Hodgkin-Huxley channel and the document wrapping it.
type ChannelRecipe struct {
	// Name identifies the recipe.
	Name string

	ChannelID   string
	Species     string
	Conductance string
	Notes       string
	Gates       []GateRecipe

	DocumentID    string
	DocumentNotes string

	// Output is the key the channel document is written to.
	Output string
}

// Validate checks the recipe is complete enough to run.
func (r ChannelRecipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: channel recipe requires a name", ErrInvalidInput)
	}
	if !IsNmlID(r.ChannelID) {
		return fmt.Errorf("%w: channel id %q is not a valid id", ErrInvalidInput, r.ChannelID)
	}
	if r.Output == "" {
		return fmt.Errorf("%w: channel recipe %q has no output", ErrInvalidInput, r.Name)
	}
	if len(r.Gates) == 0 {
		return fmt.Errorf("%w: channel recipe %q has no gates", ErrInvalidInput, r.Name)
	}
	return nil
}
