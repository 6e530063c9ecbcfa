// Package cell normalises cells exported by morphology tools so that the
// annotation steps can rely on the canonical segment groups.
package cell

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.CellNormaliser = (*Normaliser)(nil)

// FoldRule includes every group whose id contains Pattern into Group.
type FoldRule struct {
	Pattern string
	Group   string
}

// DefaultFoldRules fold soma, dend and axon groups into the canonical groups.
func DefaultFoldRules() []FoldRule {
	rules := make([]FoldRule, 0, 3)
	for _, t := range domain.SegmentTypes() {
		rules = append(rules, FoldRule{Pattern: t.Pattern(), Group: t.DefaultGroup()})
	}
	return rules
}

// Normaliser prepares a loaded cell for annotation.
type Normaliser struct {
	rules    []FoldRule
	optimise bool
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithFoldRule adds a rule after the default ones.
// The target group is created if it does not exist.
func WithFoldRule(pattern, group string) Option {
	return func(n *Normaliser) {
		if pattern != "" && group != "" {
			n.rules = append(n.rules, FoldRule{Pattern: pattern, Group: group})
		}
	}
}

// WithoutOptimise leaves the segment groups as folded.
func WithoutOptimise() Option {
	return func(n *Normaliser) {
		n.optimise = false
	}
}

// New creates a normaliser with the default fold rules.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{
		rules:    DefaultFoldRules(),
		optimise: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalise drops networks from doc, rewrites the notes of cell, creates the
// canonical segment groups and folds matching groups into them.
//
// Rules are checked independently, so a group whose id matches several
// patterns is included in every matching target.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document, cell *domain.Cell, opts driven.NormaliseOptions) error {
	if cell == nil {
		return fmt.Errorf("%w: cell is nil", domain.ErrInvalidInput)
	}
	if cell.Morphology == nil {
		return fmt.Errorf("%w: cell %q has no morphology", domain.ErrMalformed, cell.ID)
	}

	if doc != nil && len(doc.Networks) > 0 {
		logger.Debug("dropping %d network(s)", len(doc.Networks))
		doc.StripNetworks()
	}

	cell.ReplaceInNotes(opts.TemplateID, cell.ID)
	if opts.Citation != "" {
		cell.AppendNotes(opts.Citation)
	}

	cell.SetupDefaultSegmentGroups()

	// Snapshot the ids so groups created by rules are not folded themselves.
	ids := make([]string, 0, len(cell.Morphology.SegmentGroups))
	for _, g := range cell.Morphology.SegmentGroups {
		ids = append(ids, g.ID)
	}
	for _, rule := range n.rules {
		target, err := n.target(cell, rule.Group)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if id == rule.Group || !strings.Contains(id, rule.Pattern) {
				continue
			}
			if target.AddInclude(id) {
				logger.Debug("folded %s into %s", id, rule.Group)
			}
		}
	}

	if n.optimise {
		cell.OptimiseSegmentGroups()
	}
	return nil
}

func (n *Normaliser) target(cell *domain.Cell, id string) (*domain.SegmentGroup, error) {
	if g, ok := cell.SegmentGroup(id); ok {
		return g, nil
	}
	g := &domain.SegmentGroup{ID: id}
	if err := cell.Morphology.AddSegmentGroup(g); err != nil {
		return nil, err
	}
	return g, nil
}
