package route

import (
	"errors"
	"fmt"
	"slices"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route was not created through
	// NewRoute or RestoreRoute.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// Route is the aggregate root for an ordered sequence of process steps.
//
// Route follows these invariants:
//   - Must have a valid unique identifier and a name
//   - No two steps share an order value
//   - Steps are always kept sorted ascending by order
//
// Work orders never share a route: each one owns a private copy produced by Clone,
// so editing a work order's steps cannot leak into another work order.
type Route struct {
	id    kernel.UUID
	name  kernel.Name
	steps []*Step

	isConstructed bool
}

// NewRoute creates a route with a fresh identifier and one new step per definition.
//
// Example:
//
//	r, err := route.NewRoute("标准路线", []route.StepDefinition{
//	    {ProcessID: cutting.ID(), Order: 10},
//	    {ProcessID: welding.ID(), Order: 20},
//	})
func NewRoute(name string, definitions []StepDefinition) (*Route, error) {
	steps, err := buildSteps(definitions)
	if err != nil {
		return nil, err
	}

	return RestoreRoute(kernel.NewUUID(), name, steps)
}

// RestoreRoute rebuilds a route from persisted state. Steps may arrive in any order.
func RestoreRoute(id kernel.UUID, name string, steps []*Step) (*Route, error) {
	r := &Route{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.Rename(name),
		r.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Route was built by one of its constructors.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) ID() kernel.UUID {
	return r.id
}

func (r *Route) Name() string {
	return r.name.String()
}

// Rename replaces the route name after validating it.
func (r *Route) Rename(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}
	r.name = n
	return nil
}

// Steps returns the route's steps ascending by order.
// The slice is a copy; steps themselves are immutable.
func (r *Route) Steps() []*Step {
	return slices.Clone(r.steps)
}

// Step looks up a step of this route by its identifier.
func (r *Route) Step(id kernel.UUID) (*Step, bool) {
	for _, s := range r.steps {
		if s.id.IsEqual(id) {
			return s, true
		}
	}
	return nil, false
}

// StepsBefore returns the steps whose order is lower than order, ascending.
func (r *Route) StepsBefore(order int) []*Step {
	i, _ := slices.BinarySearchFunc(r.steps, order, compareOrder)
	return slices.Clone(r.steps[:i])
}

// StepsAfter returns the steps whose order is higher than order, ascending.
func (r *Route) StepsAfter(order int) []*Step {
	i, found := slices.BinarySearchFunc(r.steps, order, compareOrder)
	if found {
		i++
	}
	return slices.Clone(r.steps[i:])
}

// Definitions returns the (process, order) pairs of the current steps.
func (r *Route) Definitions() []StepDefinition {
	defs := make([]StepDefinition, 0, len(r.steps))
	for _, s := range r.steps {
		defs = append(defs, s.Definition())
	}
	return defs
}

// StepsRemovedBy returns the current steps that ReplaceSteps(definitions) would
// remove, without changing the route.
func (r *Route) StepsRemovedBy(definitions []StepDefinition) []*Step {
	wanted := make(map[StepDefinition]struct{}, len(definitions))
	for _, d := range definitions {
		wanted[d] = struct{}{}
	}

	removed := make([]*Step, 0)
	for _, s := range r.steps {
		if _, ok := wanted[s.Definition()]; !ok {
			removed = append(removed, s)
		}
	}
	return removed
}

// DefinitionsAddedBy returns the definitions that ReplaceSteps(definitions)
// would create new steps for, without changing the route.
func (r *Route) DefinitionsAddedBy(definitions []StepDefinition) []StepDefinition {
	current := make(map[StepDefinition]struct{}, len(r.steps))
	for _, s := range r.steps {
		current[s.Definition()] = struct{}{}
	}

	added := make([]StepDefinition, 0)
	for _, d := range definitions {
		if _, ok := current[d]; !ok {
			added = append(added, d)
		}
	}
	return added
}

// ReplaceSteps makes the route's step list equal to definitions.
//
// Steps whose (process, order) pair appears in definitions are kept with their
// identity; all other current steps are removed and new steps are created for
// the remaining definitions. The route is left unchanged when an error is returned.
//
// Returns:
//   - removed: steps no longer part of the route
//   - added: steps created for new definitions
func (r *Route) ReplaceSteps(definitions []StepDefinition) (removed, added []*Step, err error) {
	if err = validateDefinitions(definitions); err != nil {
		return nil, nil, err
	}

	wanted := make(map[StepDefinition]struct{}, len(definitions))
	for _, d := range definitions {
		wanted[d] = struct{}{}
	}

	kept := make([]*Step, 0, len(definitions))
	existing := make(map[StepDefinition]struct{}, len(r.steps))
	for _, s := range r.steps {
		if _, ok := wanted[s.Definition()]; ok {
			kept = append(kept, s)
			existing[s.Definition()] = struct{}{}
			continue
		}
		removed = append(removed, s)
	}

	for _, d := range definitions {
		if _, ok := existing[d]; ok {
			continue
		}
		s, stepErr := NewStep(d.ProcessID, d.Order)
		if stepErr != nil {
			return nil, nil, stepErr
		}
		added = append(added, s)
	}

	r.steps = sortSteps(append(kept, added...))
	return removed, added, nil
}

// Clone returns a new route with a fresh identifier, the given name and a new
// step for every step of r, at the same positions.
func (r *Route) Clone(name string) (*Route, error) {
	return NewRoute(name, r.Definitions())
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setSteps(steps []*Step) error {
	defs := make([]StepDefinition, 0, len(steps))
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
		defs = append(defs, s.Definition())
	}
	if err := validateDefinitions(defs); err != nil {
		return err
	}

	r.steps = sortSteps(slices.Clone(steps))
	return nil
}

func buildSteps(definitions []StepDefinition) ([]*Step, error) {
	steps := make([]*Step, 0, len(definitions))
	errList := make([]error, 0)
	for _, d := range definitions {
		s, err := NewStep(d.ProcessID, d.Order)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		steps = append(steps, s)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return steps, nil
}

func validateDefinitions(definitions []StepDefinition) error {
	seen := make(map[int]struct{}, len(definitions))
	for _, d := range definitions {
		if err := d.ProcessID.Validate(); err != nil {
			return err
		}
		if _, dup := seen[d.Order]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"steps",
				fmt.Errorf("order %d is used by more than one step", d.Order),
			)
		}
		seen[d.Order] = struct{}{}
	}
	return nil
}

func sortSteps(steps []*Step) []*Step {
	slices.SortFunc(steps, func(a, b *Step) int {
		return a.order - b.order
	})
	return steps
}

func compareOrder(s *Step, order int) int {
	switch {
	case s.order < order:
		return -1
	case s.order > order:
		return 1
	default:
		return 0
	}
}
