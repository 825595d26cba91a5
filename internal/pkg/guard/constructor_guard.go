// Package guard provides a defensive construction marker for value objects,
// commands and queries. Embedding a ConstructorGuard lets a type detect whether
// it was produced by its designated constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor function.
// The zero value always fails validation, which prevents accidental use of
// zero-value structs that bypassed invariant checks.
//
// Example:
//
//	type TransitionOrderCommand struct {
//	    event string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTransitionOrderCommand(event string) (TransitionOrderCommand, error) {
//	    if event == "" {
//	        return TransitionOrderCommand{}, errors.New("event is required")
//	    }
//	    return TransitionOrderCommand{event: event, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
