package http

import (
	"time"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/account"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/customer"
	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferRequest struct {
	Name               string `json:"name"`
	RestaurantName     string `json:"restaurantName"`
	OfferName          string `json:"offerName"`
	ImageURL           string `json:"imageUrl"`
	LogoURL            string `json:"logoUrl"`
	DiscountPercentage int    `json:"discountPercentage"`
	Description        string `json:"description"`
	Category           string `json:"category"`
}

func (r OfferRequest) details() (offer.Details, error) {
	category, err := offer.ParseCategory(r.Category)
	if err != nil {
		return offer.Details{}, err
	}
	return offer.Details{
		Name:               r.Name,
		RestaurantName:     r.RestaurantName,
		OfferName:          r.OfferName,
		ImageURL:           r.ImageURL,
		LogoURL:            r.LogoURL,
		DiscountPercentage: r.DiscountPercentage,
		Description:        r.Description,
		Category:           category,
	}, nil
}

type Offer struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RestaurantName     string    `json:"restaurantName"`
	OfferName          string    `json:"offerName"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	LogoURL            string    `json:"logoUrl,omitempty"`
	DiscountPercentage int       `json:"discountPercentage"`
	Description        string    `json:"description,omitempty"`
	Category           string    `json:"category"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toOffer(o *offer.Offer) Offer {
	d := o.Details()
	return Offer{
		ID:                 o.ID().Bytes(),
		Name:               d.Name,
		RestaurantName:     d.RestaurantName,
		OfferName:          d.OfferName,
		ImageURL:           d.ImageURL,
		LogoURL:            d.LogoURL,
		DiscountPercentage: d.DiscountPercentage,
		Description:        d.Description,
		Category:           string(d.Category),
		CreatedAt:          o.CreatedAt(),
	}
}

type CustomerListItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	CouponsTotal int       `json:"couponsTotal"`
	CouponsUsed  int       `json:"couponsUsed"`
}

func toCustomerListItem(c queries.CustomerListItem) CustomerListItem {
	return CustomerListItem{
		ID:           c.ID.Bytes(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		CreatedAt:    c.CreatedAt,
		CouponsTotal: c.CouponsTotal,
		CouponsUsed:  c.CouponsUsed,
	}
}

type CustomerContact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type IssueCouponRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	OfferID string `json:"offerId"`
}

type CouponCodeRequest struct {
	Code         string `json:"code"`
	RestaurantID string `json:"restaurantId"`
}

type Coupon struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Status       string     `json:"status"`
	RestaurantID uuid.UUID  `json:"restaurantId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
}

func toCoupon(c *coupon.Coupon) Coupon {
	return Coupon{
		ID:           c.ID().Bytes(),
		Code:         c.Code().String(),
		Status:       c.Status().String(),
		RestaurantID: c.RestaurantID().Bytes(),
		CreatedAt:    c.CreatedAt(),
		UsedAt:       c.UsedAt(),
	}
}

type CouponValidation struct {
	Valid    bool             `json:"valid"`
	Exists   bool             `json:"exists"`
	Status   string           `json:"status,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Coupon   *Coupon          `json:"coupon,omitempty"`
	Customer *CustomerContact `json:"customer,omitempty"`
}

func toCouponValidation(v queries.CouponValidation) CouponValidation {
	out := CouponValidation{Valid: v.Valid, Exists: v.Exists, Reason: v.Reason}
	if v.Exists {
		out.Status = v.Status.String()
	}
	if v.Coupon != nil {
		c := toCoupon(v.Coupon)
		out.Coupon = &c
	}
	if v.Customer != nil {
		out.Customer = toCustomerContact(v.Customer)
	}
	return out
}

func toCustomerContact(c *customer.Customer) *CustomerContact {
	return &CustomerContact{Name: c.Name(), Email: c.Email(), Phone: c.Phone()}
}

type RestaurantCoupon struct {
	Coupon
	Customer CustomerContact `json:"customer"`
}

func toRestaurantCoupon(item queries.RestaurantCouponItem, restaurantID kernel.UUID) RestaurantCoupon {
	return RestaurantCoupon{
		Coupon: Coupon{
			ID:           item.ID.Bytes(),
			Code:         item.Code.String(),
			Status:       item.Status.String(),
			RestaurantID: restaurantID.Bytes(),
			CreatedAt:    item.CreatedAt,
			UsedAt:       item.UsedAt,
		},
		Customer: CustomerContact{Name: item.CustomerName, Email: item.CustomerEmail, Phone: item.CustomerPhone},
	}
}

type OrderCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItemRequest struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurantId"`
	Customer     OrderCustomer      `json:"customer"`
	Items        []OrderItemRequest `json:"items"`
	CouponCode   string             `json:"couponCode"`
}

type OrderItem struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type Totals struct {
	Subtotal           string          `json:"subtotal"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Discount           string          `json:"discount"`
	DeliveryFee        string          `json:"deliveryFee"`
	Tax                string          `json:"tax"`
	Total              string          `json:"total"`
}

type Progress struct {
	Step      int  `json:"step"`
	Cancelled bool `json:"cancelled"`
}

type OrderDriver struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
}

type Order struct {
	ID           uuid.UUID      `json:"id"`
	Number       string         `json:"number"`
	RestaurantID uuid.UUID      `json:"restaurantId"`
	Status       string         `json:"status"`
	Label        string         `json:"label"`
	Color        string         `json:"color"`
	Progress     Progress       `json:"progress"`
	Actions      []string       `json:"actions"`
	Customer     *OrderCustomer `json:"customer,omitempty"`
	Driver       *OrderDriver   `json:"driver,omitempty"`
	Items        []OrderItem    `json:"items"`
	Totals       Totals         `json:"totals"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeliveredAt  *time.Time     `json:"deliveredAt,omitempty"`
}

func toOrder(o *order.Order, view services.RoleView) Order {
	out := Order{
		ID:           o.ID().Bytes(),
		Number:       o.Number().String(),
		RestaurantID: o.RestaurantID().Bytes(),
		Status:       view.Status.String(),
		Label:        view.Label,
		Color:        view.Color,
		Progress:     Progress{Step: view.Progress.Step, Cancelled: view.Progress.Cancelled},
		Actions:      make([]string, len(view.Actions)),
		Items:        toItems(o.Items()),
		Totals:       toTotals(o.Totals()),
		CreatedAt:    o.CreatedAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
	for i, a := range view.Actions {
		out.Actions[i] = string(a)
	}
	if c := view.Customer; c != nil {
		out.Customer = &OrderCustomer{Name: c.Name(), Phone: c.Phone(), Address: c.Address()}
	}
	if d := view.Driver; d != nil {
		out.Driver = &OrderDriver{Name: d.Name, Phone: d.Phone, VehicleType: d.VehicleType.String()}
	}
	return out
}

func toItems(items []order.LineItem) []OrderItem {
	out := make([]OrderItem, len(items))
	for i, item := range items {
		out[i] = OrderItem{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			LineTotal: item.LineTotal().String(),
		}
	}
	return out
}

func toTotals(t order.Totals) Totals {
	return Totals{
		Subtotal:           t.Subtotal.String(),
		DiscountPercentage: t.DiscountPercentage,
		Discount:           t.Discount.String(),
		DeliveryFee:        t.DeliveryFee.String(),
		Tax:                t.Tax.String(),
		Total:              t.Total.String(),
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
	City     string `json:"city"`
}

type TrackedOrder struct {
	Number            string      `json:"number"`
	Status            string      `json:"status"`
	Label             string      `json:"label"`
	Color             string      `json:"color"`
	Progress          Progress    `json:"progress"`
	CustomerFirstName string      `json:"customerFirstName"`
	Items             []OrderItem `json:"items"`
	Totals            Totals      `json:"totals"`
	HasDriver         bool        `json:"hasDriver"`
	CreatedAt         time.Time   `json:"createdAt"`
	DeliveredAt       *time.Time  `json:"deliveredAt,omitempty"`
}

func toTrackedOrder(t queries.TrackedOrder) TrackedOrder {
	return TrackedOrder{
		Number:            t.Number.String(),
		Status:            t.Status.String(),
		Label:             t.Label,
		Color:             t.Color,
		Progress:          Progress{Step: t.Progress.Step, Cancelled: t.Progress.Cancelled},
		CustomerFirstName: t.CustomerFirstName,
		Items:             toItems(t.Items),
		Totals:            toTotals(t.Totals),
		HasDriver:         t.HasDriver,
		CreatedAt:         t.CreatedAt,
		DeliveredAt:       t.DeliveredAt,
	}
}

type RateDriverRequest struct {
	Rating int `json:"rating"`
}

type AvailabilityRequest struct {
	Status string `json:"status"`
}

type Driver struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	VehicleType     string          `json:"vehicleType"`
	Status          string          `json:"status"`
	City            string          `json:"city"`
	Rating          decimal.Decimal `json:"rating"`
	RatingCount     int             `json:"ratingCount"`
	TotalDeliveries int             `json:"totalDeliveries"`
}

func toDriver(d *driver.Driver) Driver {
	return Driver{
		ID:              d.ID().Bytes(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		VehicleType:     d.VehicleType().String(),
		Status:          d.Status().String(),
		City:            d.City(),
		Rating:          d.Rating(),
		RatingCount:     d.RatingCount(),
		TotalDeliveries: d.TotalDeliveries(),
	}
}

type Stats struct {
	OrdersByStatus   map[string]int  `json:"ordersByStatus"`
	TotalOrders      int             `json:"totalOrders"`
	ActiveOrders     int             `json:"activeOrders"`
	DeliveredToday   int             `json:"deliveredToday"`
	Revenue          decimal.Decimal `json:"revenue"`
	CouponsIssued    int             `json:"couponsIssued"`
	CouponsUsed      int             `json:"couponsUsed"`
	AvailableDrivers int             `json:"availableDrivers"`
	Estimated        bool            `json:"estimated"`
}

func toStats(s queries.DashboardStats) Stats {
	out := Stats{
		OrdersByStatus:   make(map[string]int, len(s.OrdersByStatus)),
		TotalOrders:      s.TotalOrders,
		ActiveOrders:     s.ActiveOrders,
		DeliveredToday:   s.DeliveredToday,
		Revenue:          s.Revenue,
		CouponsIssued:    s.CouponsIssued,
		CouponsUsed:      s.CouponsUsed,
		AvailableDrivers: s.AvailableDrivers,
		Estimated:        s.Estimated,
	}
	for status, n := range s.OrdersByStatus {
		out.OrdersByStatus[status.String()] = n
	}
	return out
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StaffRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	Role         string         `json:"role"`
	RestaurantID string         `json:"restaurantId"`
	Driver       *DriverProfile `json:"driver"`
}

type DriverProfile struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
	City        string `json:"city"`
}

// Session also answers getMerchantForUser and getDriverForUser through its bindings.
type Session struct {
	Token        string     `json:"token,omitempty"`
	AccountID    uuid.UUID  `json:"accountId"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	RestaurantID *uuid.UUID `json:"restaurantId,omitempty"`
	DriverID     *uuid.UUID `json:"driverId,omitempty"`
	CustomerID   *uuid.UUID `json:"customerId,omitempty"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

func toSession(token string, s ports.Session) Session {
	return Session{
		Token:        token,
		AccountID:    s.Actor.ID.Bytes(),
		Email:        s.Email,
		Role:         s.Actor.Role.String(),
		RestaurantID: optionalUUID(s.Actor.RestaurantID),
		DriverID:     optionalUUID(s.Actor.DriverID),
		CustomerID:   optionalUUID(s.Actor.CustomerID),
		ExpiresAt:    s.ExpiresAt,
	}
}

type Account struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	RestaurantID *uuid.UUID `json:"restaurantId,omitempty"`
	DriverID     *uuid.UUID `json:"driverId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toAccount(a *account.Account) Account {
	return Account{
		ID:           a.ID().Bytes(),
		Email:        a.Email(),
		Role:         a.Role().String(),
		RestaurantID: optionalUUID(a.RestaurantID()),
		DriverID:     optionalUUID(a.DriverID()),
		CreatedAt:    a.CreatedAt(),
	}
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
