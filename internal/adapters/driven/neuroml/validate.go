package neuroml

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/go-playground/validator.v9"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/kinetics"
)

// Ensure Validator implements the interface.
var _ driven.ModelValidator = (*Validator)(nil)

// Validator checks a document at two levels: the schema rules carried as
// struct tags on the XML types, then references between elements.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a validator with the NeuroML tags registered.
func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("nmlid", func(fl validator.FieldLevel) bool {
		return domain.IsNmlID(fl.Field().String())
	})
	_ = v.RegisterValidation("quantity", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseQuantityOf(fl.Field().String(), domain.Dimension(fl.Param()))
		return err == nil
	})
	return &Validator{validate: v}
}

// Validate returns an error wrapping domain.ErrValidation that lists every problem found.
func (v *Validator) Validate(doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	problems := v.schemaProblems(fromDomain(doc, ""))
	problems = append(problems, referenceProblems(doc)...)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: document %q: %s", domain.ErrValidation, doc.ID, strings.Join(problems, "; "))
}

func (v *Validator) schemaProblems(x *xmlDocument) []string {
	err := v.validate.Struct(x)
	if err == nil {
		return nil
	}
	if _, ok := err.(*validator.InvalidValidationError); ok {
		return []string{err.Error()}
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(vErrors))
	for _, fe := range vErrors {
		tag := fe.ActualTag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s: %q fails %s", trimNamespace(fe.Namespace()), fmt.Sprint(fe.Value()), tag))
	}
	return problems
}

// trimNamespace drops the root type name, "xmlDocument.Cells[0].ID" becomes "Cells[0].ID".
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func referenceProblems(doc *domain.Document) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := map[string]bool{}
	for _, ch := range doc.IonChannels {
		if seen[ch.ID] {
			add("duplicate ion channel id %q", ch.ID)
		}
		seen[ch.ID] = true
		for _, p := range channelProblems(ch) {
			add("ion channel %q: %s", ch.ID, p)
		}
	}
	seen = map[string]bool{}
	for _, c := range doc.Cells {
		if seen[c.ID] {
			add("duplicate cell id %q", c.ID)
		}
		seen[c.ID] = true
		for _, p := range cellProblems(c) {
			add("cell %q: %s", c.ID, p)
		}
	}
	return problems
}

func channelProblems(ch *domain.IonChannelHH) []string {
	if err := ch.Validate(); err != nil {
		return []string{err.Error()}
	}
	var problems []string
	for _, g := range ch.Gates {
		for _, kind := range []domain.RateKind{domain.ForwardRate, domain.ReverseRate} {
			hh := g.Rate(kind)
			r, err := kinetics.FromHHRate(hh)
			if err != nil {
				problems = append(problems, fmt.Sprintf("gate %q %s: %v", g.ID, kind, err))
				continue
			}
			if v, ok := firstNonFinite(r); ok {
				problems = append(problems, fmt.Sprintf("gate %q %s is not finite at %gmV", g.ID, kind, v))
			}
		}
	}
	return problems
}

// Physiological range swept by firstNonFinite, in mV.
const (
	sweepMin  = -100
	sweepMax  = 100
	sweepStep = 1
)

// firstNonFinite sweeps the physiological range and the midpoint itself,
// returning the first potential where the rate overflows or is undefined.
func firstNonFinite(r kinetics.Rate) (float32, bool) {
	if !r.IsFinite(r.Midpoint) {
		return r.Midpoint, true
	}
	for v := float32(sweepMin); v <= sweepMax; v += sweepStep {
		if !r.IsFinite(v) {
			return v, true
		}
	}
	return 0, false
}

func cellProblems(c *domain.Cell) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	groups := map[string]*domain.SegmentGroup{}
	segments := map[int]bool{}
	if m := c.Morphology; m != nil {
		for _, s := range m.Segments {
			if segments[s.ID] {
				add("duplicate segment id %d", s.ID)
			}
			segments[s.ID] = true
		}
		for _, s := range m.Segments {
			if s.Parent == nil {
				continue
			}
			if s.Parent.Segment == s.ID || !segments[s.Parent.Segment] {
				add("segment %d has unknown parent %d", s.ID, s.Parent.Segment)
			}
		}
		for _, g := range m.SegmentGroups {
			if _, dup := groups[g.ID]; dup {
				add("duplicate segment group id %q", g.ID)
			}
			groups[g.ID] = g
		}
		for _, g := range m.SegmentGroups {
			for _, mem := range g.Members {
				if !segments[mem] {
					add("segment group %q has unknown member %d", g.ID, mem)
				}
			}
			for _, inc := range g.Includes {
				if _, ok := groups[inc]; !ok {
					add("segment group %q includes unknown group %q", g.ID, inc)
				}
			}
			for _, rs := range []struct {
				kind   string
				ranges []domain.SegmentRange
			}{{"path", g.Paths}, {"subTree", g.SubTrees}} {
				for _, r := range rs.ranges {
					for _, end := range []*int{r.From, r.To} {
						if end != nil && !segments[*end] {
							add("segment group %q %s references unknown segment %d", g.ID, rs.kind, *end)
						}
					}
				}
			}
		}
		for _, cycle := range includeCycles(groups) {
			add("segment group include cycle through %q", cycle)
		}
	}

	b := c.Biophysics
	if b == nil {
		return problems
	}
	target := func(what, group string) {
		if _, ok := groups[group]; !ok {
			add("%s targets unknown segment group %q", what, group)
		}
	}
	ids := map[string]bool{}
	for _, cd := range b.Membrane.ChannelDensities {
		if ids[cd.ID] {
			add("duplicate channel density id %q", cd.ID)
		}
		ids[cd.ID] = true
		target("channel density "+cd.ID, cd.SegmentGroup)
	}
	for _, sc := range b.Membrane.SpecificCapacitances {
		target("specific capacitance", sc.SegmentGroup)
	}
	for _, r := range b.Intracellular.Resistivities {
		target("resistivity", r.SegmentGroup)
	}
	return problems
}

// includeCycles returns the sorted ids of groups that can reach themselves
// through includes.
func includeCycles(groups map[string]*domain.SegmentGroup) []string {
	var cyclic []string
	for id := range groups {
		if reaches(groups, id, id, map[string]bool{}) {
			cyclic = append(cyclic, id)
		}
	}
	sort.Strings(cyclic)
	return cyclic
}

func reaches(groups map[string]*domain.SegmentGroup, from, target string, seen map[string]bool) bool {
	g, ok := groups[from]
	if !ok {
		return false
	}
	for _, inc := range g.Includes {
		if inc == target {
			return true
		}
		if seen[inc] {
			continue
		}
		seen[inc] = true
		if reaches(groups, inc, target, seen) {
			return true
		}
	}
	return false
}
