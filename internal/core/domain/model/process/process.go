package process

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
)

var (
	// ErrProcessIsNotConstructed is returned when a Process was not created through
	// NewProcess or RestoreProcess.
	ErrProcessIsNotConstructed = errors.New("Process must be created via NewProcess constructor")
)

// Process is a catalog entry describing one kind of manufacturing operation.
type Process struct {
	id          kernel.UUID
	name        kernel.Name
	description string

	isConstructed bool
}

// NewProcess creates a Process with a fresh identifier.
//
// Example:
//
//	cutting, err := process.NewProcess("切割", "Laser cutting of sheet metal")
func NewProcess(name, description string) (*Process, error) {
	return RestoreProcess(kernel.NewUUID(), name, description)
}

// RestoreProcess rebuilds a Process from persisted state.
func RestoreProcess(id kernel.UUID, name, description string) (*Process, error) {
	p := &Process{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.Rename(name),
	); err != nil {
		return nil, err
	}
	p.description = description

	return p, nil
}

// Validate ensures the Process was built by one of its constructors.
func (p *Process) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProcessIsNotConstructed
	}
	return nil
}

func (p *Process) ID() kernel.UUID {
	return p.id
}

func (p *Process) Name() string {
	return p.name.String()
}

func (p *Process) Description() string {
	return p.description
}

// Rename replaces the process name after validating it.
func (p *Process) Rename(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}
	p.name = n
	return nil
}

// Describe replaces the free-text description.
func (p *Process) Describe(description string) {
	p.description = description
}

func (p *Process) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}
