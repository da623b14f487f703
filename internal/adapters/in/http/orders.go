package http

import (
	"errors"
	"net/http"
	"strings"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/kernel"
	"discount/internal/core/domain/model/order"
	"discount/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. Guests may order; a signed-in customer
// gets the order linked to their profile.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return err
	}
	snapshot, err := order.NewCustomerSnapshot(req.Customer.Name, req.Customer.Phone, req.Customer.Address)
	if err != nil {
		return err
	}
	items, err := toLineItems(req.Items)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrderCommand(optionalActor(c), restaurantID, snapshot, items, req.CouponCode)
	if err != nil {
		return err
	}

	created, err := s.commands.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.orderFor(c, created))
}

func toLineItems(reqs []OrderItemRequest) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(reqs))
	var problems []error
	for _, r := range reqs {
		price, err := kernel.MoneyFromString(r.UnitPrice)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		item, err := order.NewLineItem(r.Name, price, r.Quantity)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, item)
	}
	return items, errors.Join(problems...)
}

// GetOrdersByStatus handles GET /api/v1/orders?status=&restaurantId=&driverId=.
// The caller's role narrows the result further.
func (s *Server) GetOrdersByStatus(c echo.Context) error {
	restaurantID, err := optionalID(c.QueryParam("restaurantId"))
	if err != nil {
		return err
	}
	driverID, err := optionalID(c.QueryParam("driverId"))
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrdersByStatusQuery(actorOf(c), c.QueryParam("status"), restaurantID, driverID, localeOf(c))
	if err != nil {
		return err
	}

	views, err := s.queries.GetOrdersByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v.Order, v.View)
	}
	return c.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status with either a target
// status or an action name. Targets go through the optimistic transitioner so the
// shared dashboard shows the change at once.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ChangeStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	ctx := c.Request().Context()

	var changed *order.Order
	switch {
	case req.Action != "":
		cmd, cmdErr := commands.NewChangeOrderStatusCommandByAction(actorOf(c), orderID, order.Action(req.Action))
		if cmdErr != nil {
			return cmdErr
		}
		changed, err = s.commands.ChangeOrderStatus.Handle(ctx, cmd)
	case req.Status != "":
		target, parseErr := order.ParseStatus(req.Status)
		if parseErr != nil {
			return parseErr
		}
		changed, err = s.infra.Transitioner.Transition(ctx, actorOf(c), orderID, target)
	default:
		return errs.NewValueIsRequiredError("status")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, s.orderFor(c, changed))
}

// AssignDriver handles POST /api/v1/orders/:id/assign. Without driverId the best
// available driver is picked, preferring the given city.
func (s *Server) AssignDriver(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignDriverRequest
	if err = c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	driverID, err := optionalID(req.DriverID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignDriverCommand(actorOf(c), orderID, driverID, req.City)
	if err != nil {
		return err
	}

	assigned, err := s.commands.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.orderFor(c, assigned))
}

// SuggestDrivers handles GET /api/v1/orders/:id/driver-suggestions?city=.
func (s *Server) SuggestDrivers(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewSuggestDriversQuery(actorOf(c), orderID, c.QueryParam("city"))
	if err != nil {
		return err
	}

	drivers, err := s.queries.SuggestDrivers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = toDriver(d)
	}
	return c.JSON(http.StatusOK, response)
}

// TrackOrder handles GET /api/v1/track/:number. It is public and reveals only the
// customer's first name.
func (s *Server) TrackOrder(c echo.Context) error {
	query := queries.NewTrackOrderQuery(c.Param("number"), localeOf(c))

	tracked, err := s.queries.TrackOrder.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackedOrder(tracked))
}

// orderFor projects o for the caller. Only order placement is open to anonymous
// callers, and a guest gets back the contact details they just sent.
func (s *Server) orderFor(c echo.Context, o *order.Order) Order {
	session, ok := sessionOf(c)
	if !ok {
		view := s.projector.Project(o, nil, kernel.Actor{Role: kernel.RoleCustomer}, localeOf(c))
		snapshot := o.Customer()
		view.Customer = &snapshot
		return toOrder(o, view)
	}
	return toOrder(o, s.projector.Project(o, nil, session.Actor, localeOf(c)))
}

func localeOf(c echo.Context) order.Locale {
	lang := c.QueryParam("locale")
	if lang == "" {
		lang = c.Request().Header.Get("Accept-Language")
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), string(order.LocaleArabic)) {
		return order.LocaleArabic
	}
	return order.LocaleEnglish
}
