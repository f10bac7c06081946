package route

import (
	"errors"
	"math"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
)

var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep constructor")

// Step places one process at one position of a route. Steps are immutable;
// changing a position means removing the step and adding a new one.
type Step struct {
	id        kernel.UUID
	processID kernel.UUID
	order     int

	isConstructed bool
}

// StepDefinition describes a desired step without identity.
type StepDefinition struct {
	ProcessID kernel.UUID
	Order     int
}

// NewStep creates a step with a fresh identifier.
func NewStep(processID kernel.UUID, order int) (*Step, error) {
	return RestoreStep(kernel.NewUUID(), processID, order)
}

// RestoreStep rebuilds a step from persisted state.
func RestoreStep(id, processID kernel.UUID, order int) (*Step, error) {
	s := &Step{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setProcessID(processID),
		s.setOrder(order),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Step) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStepIsNotConstructed
	}
	return nil
}

func (s *Step) ID() kernel.UUID {
	return s.id
}

func (s *Step) ProcessID() kernel.UUID {
	return s.processID
}

func (s *Step) Order() int {
	return s.order
}

// Definition returns the (process, order) pair that identifies the step's position.
func (s *Step) Definition() StepDefinition {
	return StepDefinition{ProcessID: s.processID, Order: s.order}
}

func (s *Step) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Step) setProcessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.processID = id
	return nil
}

func (s *Step) setOrder(order int) error {
	if order < 1 || order > math.MaxInt32 {
		return errs.NewValueIsOutOfRangeError("order", order, 1, math.MaxInt32)
	}
	s.order = order
	return nil
}
