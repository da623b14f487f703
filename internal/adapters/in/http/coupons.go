package http

import (
	"net/http"

	"discount/internal/core/application/usecases/commands"
	"discount/internal/core/application/usecases/queries"
	"discount/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// IssueCoupon handles POST /api/v1/coupons. Anyone may claim a coupon for an offer.
func (s *Server) IssueCoupon(c echo.Context) error {
	var req IssueCouponRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	offerID, err := kernel.UUIDFromString(req.OfferID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewIssueCouponCommand(req.Name, req.Email, req.Phone, offerID)
	if err != nil {
		return err
	}

	issued, err := s.commands.IssueCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCoupon(issued))
}

// ValidateCoupon handles POST /api/v1/coupons/validate. Unknown codes are a normal
// answer, not a 404.
func (s *Server) ValidateCoupon(c echo.Context) error {
	var req CouponCodeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	restaurantID, err := optionalID(req.RestaurantID)
	if err != nil {
		return err
	}
	query, err := queries.NewValidateCouponQuery(actorOf(c), req.Code, restaurantID)
	if err != nil {
		return err
	}

	result, err := s.queries.ValidateCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCouponValidation(result))
}

// RedeemCoupon handles POST /api/v1/coupons/redeem.
func (s *Server) RedeemCoupon(c echo.Context) error {
	var req CouponCodeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	restaurantID, err := optionalID(req.RestaurantID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRedeemCouponCommand(actorOf(c), req.Code, restaurantID)
	if err != nil {
		return err
	}

	redeemed, err := s.commands.RedeemCoupon.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCoupon(redeemed))
}

// ListRestaurantCoupons handles GET /api/v1/restaurants/:id/coupons?status=.
func (s *Server) ListRestaurantCoupons(c echo.Context) error {
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListRestaurantCouponsQuery(actorOf(c), restaurantID, c.QueryParam("status"))
	if err != nil {
		return err
	}

	items, err := s.queries.ListRestaurantCoupons.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]RestaurantCoupon, len(items))
	for i, item := range items {
		response[i] = toRestaurantCoupon(item, restaurantID)
	}
	return c.JSON(http.StatusOK, response)
}
