package recipes

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

type recipeFile struct {
	Cell    map[string]cellEntry    `toml:"cell"`
	Channel map[string]channelEntry `toml:"channel"`
}

type cellEntry struct {
	Source     string           `toml:"source"`
	DocumentID string           `toml:"document_id"`
	TemplateID string           `toml:"template_id"`
	Citation   string           `toml:"citation"`
	Output     string           `toml:"output"`
	Soma       *somaEntry       `toml:"soma"`
	Steps      []map[string]any `toml:"steps"`
}

type somaEntry struct {
	Proximal []float64 `toml:"proximal"`
	Distal   []float64 `toml:"distal"`
}

type channelEntry struct {
	ID            string      `toml:"id"`
	Species       string      `toml:"species"`
	Conductance   string      `toml:"conductance"`
	Notes         string      `toml:"notes"`
	DocumentID    string      `toml:"document_id"`
	DocumentNotes string      `toml:"document_notes"`
	Output        string      `toml:"output"`
	Gates         []gateEntry `toml:"gates"`
}

type gateEntry struct {
	ID        string    `toml:"id"`
	Instances int       `toml:"instances"`
	Notes     string    `toml:"notes"`
	Forward   rateEntry `toml:"forward"`
	Reverse   rateEntry `toml:"reverse"`
}

type rateEntry struct {
	Type     string `toml:"type"`
	Rate     string `toml:"rate"`
	Midpoint string `toml:"midpoint"`
	Scale    string `toml:"scale"`
}

// LoadFile merges the recipes in the TOML file at path into the catalog.
// A file recipe replaces a recipe of the same name entirely.
// A missing file is not an error.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := c.Load(data); err != nil {
		return fmt.Errorf("recipes %s: %w", path, err)
	}
	return nil
}

// Load merges TOML recipe data into the catalog. Every recipe is checked
// before any is added, so a failing file leaves the catalog unchanged.
func (c *Catalog) Load(data []byte) error {
	var f recipeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}

	cells := make([]domain.CellRecipe, 0, len(f.Cell))
	for _, name := range sortedKeys(f.Cell) {
		r, err := f.Cell[name].recipe(name)
		if err == nil {
			err = r.Validate()
		}
		if err != nil {
			return fmt.Errorf("cell %s: %w", name, err)
		}
		cells = append(cells, r)
	}
	channels := make([]domain.ChannelRecipe, 0, len(f.Channel))
	for _, name := range sortedKeys(f.Channel) {
		if _, ok := f.Cell[name]; ok {
			return fmt.Errorf("channel %s: %w: also a cell recipe", name, domain.ErrDuplicateID)
		}
		r := f.Channel[name].recipe(name)
		if err := r.Validate(); err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}
		channels = append(channels, r)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range cells {
		if _, ok := c.channels[r.Name]; ok {
			return fmt.Errorf("cell %s: %w: %q is already a channel recipe", r.Name, domain.ErrDuplicateID, r.Name)
		}
	}
	for _, r := range channels {
		if _, ok := c.cells[r.Name]; ok {
			return fmt.Errorf("channel %s: %w: %q is already a cell recipe", r.Name, domain.ErrDuplicateID, r.Name)
		}
	}
	for _, r := range cells {
		c.cells[r.Name] = r
	}
	for _, r := range channels {
		c.channels[r.Name] = r
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e cellEntry) recipe(name string) (domain.CellRecipe, error) {
	r := domain.CellRecipe{
		Name:       name,
		Source:     domain.CellSource(e.Source),
		DocumentID: e.DocumentID,
		TemplateID: e.TemplateID,
		Citation:   e.Citation,
		Output:     e.Output,
	}
	if r.Source == "" {
		r.Source = domain.CellSourceLoad
	}
	if e.Soma != nil {
		prox, err := point(e.Soma.Proximal)
		if err != nil {
			return r, fmt.Errorf("soma proximal: %w", err)
		}
		dist, err := point(e.Soma.Distal)
		if err != nil {
			return r, fmt.Errorf("soma distal: %w", err)
		}
		r.Soma = &domain.SomaGeometry{Proximal: prox, Distal: dist}
	}
	for _, raw := range e.Steps {
		kind, _ := raw["kind"].(string)
		params := make(map[string]any, len(raw))
		for k, v := range raw {
			if k != "kind" {
				params[k] = v
			}
		}
		r.Steps = append(r.Steps, domain.AnnotationStep{Kind: kind, Params: params})
	}
	return r, nil
}

func point(v []float64) (domain.Point3DWithDiam, error) {
	if len(v) != 4 {
		return domain.Point3DWithDiam{}, fmt.Errorf("%w: want [x, y, z, diameter], got %d values",
			domain.ErrInvalidInput, len(v))
	}
	return domain.Point3DWithDiam{X: v[0], Y: v[1], Z: v[2], Diameter: v[3]}, nil
}

func (e channelEntry) recipe(name string) domain.ChannelRecipe {
	r := domain.ChannelRecipe{
		Name:          name,
		ChannelID:     e.ID,
		Species:       e.Species,
		Conductance:   e.Conductance,
		Notes:         e.Notes,
		DocumentID:    e.DocumentID,
		DocumentNotes: e.DocumentNotes,
		Output:        e.Output,
	}
	if r.ChannelID == "" {
		r.ChannelID = name
	}
	if r.DocumentID == "" {
		r.DocumentID = r.ChannelID
	}
	if r.Output == "" {
		r.Output = name + ".channel.nml"
	}
	for _, g := range e.Gates {
		r.Gates = append(r.Gates, domain.GateRecipe{
			ID:        g.ID,
			Instances: g.Instances,
			Notes:     g.Notes,
			Forward:   g.Forward.recipe(),
			Reverse:   g.Reverse.recipe(),
		})
	}
	return r
}

func (e rateEntry) recipe() domain.RateRecipe {
	return domain.RateRecipe{
		Type:     domain.RateType(e.Type),
		Rate:     e.Rate,
		Midpoint: e.Midpoint,
		Scale:    e.Scale,
	}
}
