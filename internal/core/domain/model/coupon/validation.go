package coupon

import "discount/internal/core/domain/model/kernel"

// Validation is the outcome of looking a code up.
//
// Disclosure policy: a check scoped to a restaurant returns the coupon only when that
// restaurant owns it. A coupon of another restaurant is reported exactly like a
// missing one. An unscoped (global) check reports existence and status, never the
// coupon itself, its customer or its restaurant.
type Validation struct {
	Valid  bool
	Exists bool
	Status Status
	Reason string
	// Coupon is set only for a restaurant-scoped check by the owning restaurant.
	Coupon *Coupon
}

const (
	ReasonNotFound    = "coupon not found"
	ReasonAlreadyUsed = "coupon is already used"
)

// Validate applies the disclosure policy to the result of a lookup. c is nil when no
// coupon has the code; restaurantID is nil for a global check.
func Validate(c *Coupon, restaurantID *kernel.UUID) Validation {
	if c == nil {
		return Validation{Reason: ReasonNotFound}
	}

	if restaurantID == nil {
		v := Validation{Exists: true, Status: c.Status(), Valid: c.Status() == Unused}
		if !v.Valid {
			v.Reason = ReasonAlreadyUsed
		}
		return v
	}

	if !c.BelongsTo(*restaurantID) {
		return Validation{Reason: ReasonNotFound}
	}

	v := Validation{Exists: true, Status: c.Status(), Coupon: c, Valid: c.Status() == Unused}
	if !v.Valid {
		v.Reason = ReasonAlreadyUsed
	}
	return v
}
