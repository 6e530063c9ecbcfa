package driven

import "github.com/custodia-labs/nmlcell/internal/core/domain"

// RecipeStore resolves recipes by name.
type RecipeStore interface {
	// Cell returns the cell recipe called name or domain.ErrNotFound.
	Cell(name string) (domain.CellRecipe, error)

	// Channel returns the channel recipe called name or domain.ErrNotFound.
	Channel(name string) (domain.ChannelRecipe, error)

	// Kind reports which kind of recipe name refers to.
	Kind(name string) (domain.RecipeKind, error)

	// Names returns every recipe name, sorted.
	Names() []string
}
