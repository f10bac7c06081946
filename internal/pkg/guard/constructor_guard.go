// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries detect whether they were created through their
// constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and set only by the struct's constructor.
//
// Example usage:
//
//	var ErrSplitWorkOrderCommandIsNotConstructed = errors.New("...")
//
//	type SplitWorkOrderCommand struct {
//	    workOrderID kernel.UUID
//	    guard       guard.ConstructorGuard
//	}
//
//	func (c SplitWorkOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrSplitWorkOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
