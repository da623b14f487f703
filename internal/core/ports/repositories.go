package ports

import (
	"context"

	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
)

// CouponRepository defines the persistence contract for coupons.
type CouponRepository interface {
	Add(ctx context.Context, c *coupon.Coupon) error

	// GetByCode returns ObjectNotFoundError when no coupon has the code.
	GetByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)

	ExistsByCode(ctx context.Context, code coupon.Code) (bool, error)

	// MarkUsed stores a redemption with
	//   UPDATE coupons SET status='used', used_at=? WHERE code=? AND restaurant_id=? AND status='unused'
	// Zero affected rows means another redemption won and yields coupon.ErrAlreadyUsed.
	MarkUsed(ctx context.Context, c *coupon.Coupon) error

	// List returns coupons newest first; restaurantID narrows when set.
	List(ctx context.Context, restaurantID *kernel.UUID) ([]*coupon.Coupon, error)

	// ListCodes streams every issued code, used to warm the code filter.
	ListCodes(ctx context.Context) ([]coupon.Code, error)
}

// OfferRepository defines the persistence contract for offers.
type OfferRepository interface {
	Add(ctx context.Context, o *offer.Offer) error
	Update(ctx context.Context, o *offer.Offer) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)
	// List returns every offer, newest first; category filters when set.
	List(ctx context.Context, category *offer.Category) ([]*offer.Offer, error)
}

// DriverRepository defines the persistence contract for drivers.
type DriverRepository interface {
	Add(ctx context.Context, d *driver.Driver) error
	Update(ctx context.Context, d *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Add(ctx context.Context, c *customer.Customer) error
	Update(ctx context.Context, c *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	// GetByEmail expects a normalized address.
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
}

// AccountRepository defines the persistence contract for accounts.
type AccountRepository interface {
	Add(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
}
