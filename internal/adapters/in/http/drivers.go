package http

import (
	"net/http"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// RateDriver handles POST /api/v1/drivers/:id/rating.
func (s *Server) RateDriver(c echo.Context) error {
	driverID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req RateDriverRequest
	if err = c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	cmd, err := commands.NewRateDriverCommand(actorOf(c), driverID, req.Rating)
	if err != nil {
		return err
	}

	rated, err := s.commands.RateDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDriver(rated))
}

// SetDriverAvailability handles PUT /api/v1/drivers/me/status for the signed-in driver.
func (s *Server) SetDriverAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	cmd, err := commands.NewSetDriverAvailabilityCommand(actorOf(c), req.Status)
	if err != nil {
		return err
	}

	updated, err := s.commands.SetDriverAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDriver(updated))
}

// GetStats handles GET /api/v1/stats. Numbers marked estimated come from the
// server's dashboard snapshot because the database could not answer.
func (s *Server) GetStats(c echo.Context) error {
	query, err := queries.NewGetDashboardStatsQuery(actorOf(c))
	if err != nil {
		return err
	}

	stats, err := s.infra.Stats.Stats(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStats(stats))
}
