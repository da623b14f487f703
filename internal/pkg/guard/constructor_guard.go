// Package guard provides ConstructorGuard, a marker embedded into value objects and
// aggregates so that zero values created by struct literals fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning object was built by its constructor.
//
// Example:
//
//	type Coupon struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c *Coupon) Validate() error {
//	    return c.guard.Validate(ErrCouponIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
