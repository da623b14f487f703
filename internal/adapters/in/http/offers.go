package http

import (
	"net/http"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListOffers handles GET /api/v1/offers?category=.
func (s *Server) ListOffers(c echo.Context) error {
	query, err := queries.NewListOffersQuery(c.QueryParam("category"))
	if err != nil {
		return err
	}

	offers, err := s.queries.ListOffers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Offer, len(offers))
	for i, o := range offers {
		response[i] = toOffer(o)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOffer handles GET /api/v1/offers/:id.
func (s *Server) GetOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOfferQuery(id)
	if err != nil {
		return err
	}

	o, err := s.queries.GetOffer.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOffer(o))
}

// CreateOffer handles POST /api/v1/offers.
func (s *Server) CreateOffer(c echo.Context) error {
	var req OfferRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	details, err := req.details()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOfferCommand(actorOf(c), details)
	if err != nil {
		return err
	}

	o, err := s.commands.CreateOffer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOffer(o))
}

// UpdateOffer handles PUT /api/v1/offers/:id.
func (s *Server) UpdateOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req OfferRequest
	if err = c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	details, err := req.details()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOfferCommand(actorOf(c), id, details)
	if err != nil {
		return err
	}

	o, err := s.commands.UpdateOffer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOffer(o))
}

// DeleteOffer handles DELETE /api/v1/offers/:id.
func (s *Server) DeleteOffer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOfferCommand(actorOf(c), id)
	if err != nil {
		return err
	}

	if err = s.commands.DeleteOffer.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCustomers handles GET /api/v1/customers.
func (s *Server) ListCustomers(c echo.Context) error {
	query, err := queries.NewListCustomersQuery(actorOf(c))
	if err != nil {
		return err
	}

	customers, err := s.queries.ListCustomers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]CustomerListItem, len(customers))
	for i, item := range customers {
		response[i] = toCustomerListItem(item)
	}
	return c.JSON(http.StatusOK, response)
}
