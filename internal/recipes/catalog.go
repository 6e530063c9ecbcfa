package recipes

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.RecipeStore = (*Catalog)(nil)

// Catalog is an in-memory driven.RecipeStore.
// Cell and channel recipes share one namespace.
type Catalog struct {
	mu       sync.RWMutex
	cells    map[string]domain.CellRecipe
	channels map[string]domain.ChannelRecipe
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		cells:    make(map[string]domain.CellRecipe),
		channels: make(map[string]domain.ChannelRecipe),
	}
}

// NewBuiltinCatalog creates a catalog holding GGN, KC and na_channel.
func NewBuiltinCatalog() *Catalog {
	c := NewCatalog()
	c.cells[GGN] = GGNRecipe()
	c.cells[KC] = KCRecipe()
	c.channels[NaChannel] = NaChannelRecipe()
	return c
}

// AddCell adds r, replacing a cell recipe with the same name.
// A channel recipe with that name is a domain.ErrDuplicateID.
func (c *Catalog) AddCell(r domain.CellRecipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.channels[r.Name]; ok {
		return fmt.Errorf("%w: %q is already a channel recipe", domain.ErrDuplicateID, r.Name)
	}
	c.cells[r.Name] = r
	return nil
}

// AddChannel adds r, replacing a channel recipe with the same name.
// A cell recipe with that name is a domain.ErrDuplicateID.
func (c *Catalog) AddChannel(r domain.ChannelRecipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cells[r.Name]; ok {
		return fmt.Errorf("%w: %q is already a cell recipe", domain.ErrDuplicateID, r.Name)
	}
	c.channels[r.Name] = r
	return nil
}

// Cell returns the cell recipe called name.
func (c *Catalog) Cell(name string) (domain.CellRecipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.cells[name]
	if !ok {
		return domain.CellRecipe{}, fmt.Errorf("%w: cell recipe %q", domain.ErrNotFound, name)
	}
	return r, nil
}

// Channel returns the channel recipe called name.
func (c *Catalog) Channel(name string) (domain.ChannelRecipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.channels[name]
	if !ok {
		return domain.ChannelRecipe{}, fmt.Errorf("%w: channel recipe %q", domain.ErrNotFound, name)
	}
	return r, nil
}

// Kind reports whether name is a cell or a channel recipe.
func (c *Catalog) Kind(name string) (domain.RecipeKind, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.cells[name]; ok {
		return domain.RecipeKindCell, nil
	}
	if _, ok := c.channels[name]; ok {
		return domain.RecipeKindChannel, nil
	}
	return "", fmt.Errorf("%w: recipe %q", domain.ErrNotFound, name)
}

// Names returns every recipe name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.cells)+len(c.channels))
	for name := range c.cells {
		names = append(names, name)
	}
	for name := range c.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
