package http

import (
	"net/http"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SignUp handles POST /api/v1/auth/signup. New accounts are customers and are signed
// in right away.
func (s *Server) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	cmd, err := commands.NewSignUpCommand(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if _, err = s.commands.SignUp.Handle(ctx, cmd); err != nil {
		return err
	}

	signIn, err := commands.NewSignInCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	result, err := s.commands.SignIn.Handle(ctx, signIn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSession(result.Token, result.Session))
}

// SignIn handles POST /api/v1/auth/signin.
func (s *Server) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	cmd, err := commands.NewSignInCommand(req.Email, req.Password)
	if err != nil {
		return err
	}

	result, err := s.commands.SignIn.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSession(result.Token, result.Session))
}

// SignOut handles POST /api/v1/auth/signout. The token stays unusable until it
// would have expired.
func (s *Server) SignOut(c echo.Context) error {
	session, _ := sessionOf(c)
	cmd, err := commands.NewSignOutCommand(session)
	if err != nil {
		return err
	}

	if err = s.commands.SignOut.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSession handles GET /api/v1/auth/session.
func (s *Server) GetSession(c echo.Context) error {
	session, _ := sessionOf(c)
	return c.JSON(http.StatusOK, toSession("", session))
}

// RegisterStaff handles POST /api/v1/staff.
func (s *Server) RegisterStaff(c echo.Context) error {
	var req StaffRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	role, err := kernel.ParseRole(req.Role)
	if err != nil {
		return err
	}
	restaurantID, err := optionalID(req.RestaurantID)
	if err != nil {
		return err
	}
	var profile *commands.DriverProfile
	if req.Driver != nil {
		profile = &commands.DriverProfile{
			Name:        req.Driver.Name,
			Phone:       req.Driver.Phone,
			VehicleType: req.Driver.VehicleType,
			City:        req.Driver.City,
		}
	}
	cmd, err := commands.NewRegisterStaffCommand(actorOf(c), req.Email, req.Password, role, restaurantID, profile)
	if err != nil {
		return err
	}

	registered, err := s.commands.RegisterStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAccount(registered))
}
