package coupon

import (
	"errors"
	"time"

	"discount/internal/core/domain/model/kernel"
	"discount/internal/pkg/errs"
)

var (
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")

	// ErrAlreadyUsed is returned for a second redemption.
	ErrAlreadyUsed = errs.NewStateConflictError("coupon", "is already used")

	// ErrCodeIsTaken is returned when storage already holds a coupon with the code.
	ErrCodeIsTaken = errs.NewStateConflictError("coupon", "code is already taken")
)

// Coupon ties one customer to one restaurant's discount. It is used at most once.
type Coupon struct {
	id           kernel.UUID
	code         Code
	customerID   kernel.UUID
	restaurantID kernel.UUID
	status       Status
	createdAt    time.Time
	usedAt       *time.Time

	isConstructed bool
}

// NewCoupon issues an unused coupon.
func NewCoupon(code Code, customerID, restaurantID kernel.UUID, now time.Time) (*Coupon, error) {
	if _, err := ParseCode(code.String()); err != nil {
		return nil, err
	}
	if err := errors.Join(customerID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}

	return &Coupon{
		id:            kernel.NewUUID(),
		code:          code,
		customerID:    customerID,
		restaurantID:  restaurantID,
		status:        Unused,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCoupon rebuilds a coupon from storage. usedAt must be set exactly when the
// coupon is used.
func RestoreCoupon(
	id kernel.UUID,
	code Code,
	customerID, restaurantID kernel.UUID,
	status Status,
	createdAt time.Time,
	usedAt *time.Time,
) (*Coupon, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), restaurantID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if (status == Used) != (usedAt != nil) {
		return nil, errs.NewValueIsInvalidError("used at must be set exactly when the coupon is used")
	}

	return &Coupon{
		id:            id,
		code:          code,
		customerID:    customerID,
		restaurantID:  restaurantID,
		status:        status,
		createdAt:     createdAt,
		usedAt:        usedAt,
		isConstructed: true,
	}, nil
}

func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

func (c *Coupon) ID() kernel.UUID           { return c.id }
func (c *Coupon) Code() Code                { return c.code }
func (c *Coupon) CustomerID() kernel.UUID   { return c.customerID }
func (c *Coupon) RestaurantID() kernel.UUID { return c.restaurantID }
func (c *Coupon) Status() Status            { return c.status }
func (c *Coupon) CreatedAt() time.Time      { return c.createdAt }
func (c *Coupon) UsedAt() *time.Time        { return c.usedAt }

// BelongsTo reports whether the coupon was issued for restaurantID.
func (c *Coupon) BelongsTo(restaurantID kernel.UUID) bool {
	return c.restaurantID.IsEqual(restaurantID)
}

// IsUsable reports whether restaurantID may redeem the coupon now.
func (c *Coupon) IsUsable(restaurantID kernel.UUID) bool {
	return c.BelongsTo(restaurantID) && c.status == Unused
}

// Redeem marks the coupon used on behalf of restaurantID.
//
// Errors:
//   - ActionIsForbiddenError when the coupon belongs to another restaurant
//   - StateConflictError when the coupon is already used
//
// The coupon is unchanged on error.
func (c *Coupon) Redeem(restaurantID kernel.UUID, now time.Time) error {
	if !c.BelongsTo(restaurantID) {
		return errs.NewActionIsForbiddenError("redeem a coupon of another restaurant", kernel.RoleMerchant.String())
	}
	if c.status == Used {
		return ErrAlreadyUsed
	}

	usedAt := now
	c.status = Used
	c.usedAt = &usedAt
	return nil
}
