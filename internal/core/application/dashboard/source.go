package dashboard

import (
	"context"

	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/coupon"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/offer"
	"discount/internal/core/domain/model/order"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"
)

var _ Source = QuerySource{}

// QuerySource reads a snapshot through the query handlers, as seen by viewer.
// Collections the viewer may not list come back empty.
type QuerySource struct {
	viewer    kernel.Actor
	offers    queries.ListOffersQueryHandler
	customers queries.ListCustomersQueryHandler
	orders    queries.GetOrdersByStatusQueryHandler
	coupons   ports.CouponRepository
}

func NewQuerySource(
	viewer kernel.Actor,
	offers queries.ListOffersQueryHandler,
	customers queries.ListCustomersQueryHandler,
	orders queries.GetOrdersByStatusQueryHandler,
	coupons ports.CouponRepository,
) QuerySource {
	return QuerySource{viewer: viewer, offers: offers, customers: customers, orders: orders, coupons: coupons}
}

func (s QuerySource) Offers(ctx context.Context) ([]*offer.Offer, error) {
	query, err := queries.NewListOffersQuery("")
	if err != nil {
		return nil, err
	}
	return s.offers.Handle(ctx, query)
}

func (s QuerySource) Customers(ctx context.Context) ([]queries.CustomerListItem, error) {
	if !services.ResolveCapabilities(s.viewer.Role).Has(services.CapListCustomers) {
		return nil, nil
	}
	query, err := queries.NewListCustomersQuery(s.viewer)
	if err != nil {
		return nil, err
	}
	return s.customers.Handle(ctx, query)
}

func (s QuerySource) Coupons(ctx context.Context) ([]*coupon.Coupon, error) {
	if !services.ResolveCapabilities(s.viewer.Role).Has(services.CapValidateCoupons) {
		return nil, nil
	}
	scope, err := services.RestaurantScope(s.viewer, nil)
	if err != nil {
		return nil, err
	}
	return s.coupons.List(ctx, scope)
}

func (s QuerySource) Orders(ctx context.Context) ([]*order.Order, error) {
	query, err := queries.NewGetOrdersByStatusQuery(s.viewer, "", nil, nil, order.LocaleEnglish)
	if err != nil {
		return nil, err
	}
	views, err := s.orders.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]*order.Order, len(views))
	for i, v := range views {
		out[i] = v.Order
	}
	return out, nil
}
