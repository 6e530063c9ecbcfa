package driving

import (
	"context"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

// Producer turns recipes into serialised NeuroML artifacts.
type Producer interface {
	// ProduceCell loads or builds, annotates and writes one cell.
	ProduceCell(ctx context.Context, recipe domain.CellRecipe) (*Artifact, error)

	// ProduceChannel builds and writes one channel document.
	ProduceChannel(ctx context.Context, recipe domain.ChannelRecipe) (*Artifact, error)

	// Run produces the named recipes in order and stops at the first error.
	// With no names the configured default sequence runs.
	Run(ctx context.Context, names ...string) ([]Artifact, error)

	// Recipes lists the recipes Run accepts.
	Recipes() []RecipeInfo
}

// Artifact describes one written model file.
type Artifact struct {
	// Name is the recipe that produced the artifact.
	Name string

	Kind domain.RecipeKind

	// Key is where the artifact was stored.
	Key string

	// CellID is the id of the cell or channel inside the document.
	CellID string

	// RunID groups artifacts produced by one Run.
	RunID string

	// Summary is the human readable description printed after a run.
	Summary string

	// Size is the number of bytes written.
	Size int64
}

// RecipeInfo is the listing form of a recipe.
type RecipeInfo struct {
	Name    string
	Kind    domain.RecipeKind
	Default bool
}
