package queries

import (
	"context"

	"discount/internal/core/domain/model/driver"
	"discount/internal/core/domain/services"
	"discount/internal/core/ports"
)

type GetOrdersByStatusQueryHandler struct {
	orders    ports.OrderRepository
	drivers   ports.DriverRepository
	projector services.RoleViewProjector
}

func NewGetOrdersByStatusQueryHandler(orders ports.OrderRepository, drivers ports.DriverRepository) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{
		orders:    orders,
		drivers:   drivers,
		projector: services.NewRoleViewProjector(),
	}
}

// Handle returns the orders newest first, each projected for the viewer.
func (h GetOrdersByStatusQueryHandler) Handle(ctx context.Context, query GetOrdersByStatusQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.Find(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]*driver.Driver)
	views := make([]OrderView, 0, len(found))
	for _, o := range found {
		var d *driver.Driver
		if id := o.DriverID(); id != nil && h.projector.RevealsDriver(o, query.Viewer()) {
			key := id.String()
			if d = assigned[key]; d == nil {
				if d, err = h.drivers.Get(ctx, *id); err != nil {
					return nil, err
				}
				assigned[key] = d
			}
		}
		views = append(views, OrderView{
			Order: o,
			View:  h.projector.Project(o, d, query.Viewer(), query.Locale()),
		})
	}

	return views, nil
}
