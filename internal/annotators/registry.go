package annotators

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.AnnotatorFactory = (*Registry)(nil)

// BuilderFunc creates an Annotator from the parameters of a recipe step.
type BuilderFunc func(cfg map[string]any) (driven.Annotator, error)

// Registry maps step kinds to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a builder for kind, replacing any previous one.
func (r *Registry) Register(kind string, builder BuilderFunc) {
	r.builders[kind] = builder
}

// Build creates an annotator of the given kind.
func (r *Registry) Build(kind string, cfg map[string]any) (driven.Annotator, error) {
	builder, ok := r.builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown annotator: %s", domain.ErrUnsupportedType, kind)
	}
	return builder(cfg)
}

// Pipeline builds one annotator per step.
func (r *Registry) Pipeline(steps []domain.AnnotationStep) (driven.AnnotationPipeline, error) {
	p := NewPipeline()
	for i, step := range steps {
		a, err := r.Build(step.Kind, step.Params)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Kind, err)
		}
		p.Add(a)
	}
	return p, nil
}

// Has returns true if kind is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.builders[kind]
	return ok
}

// Names returns all registered kinds, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
