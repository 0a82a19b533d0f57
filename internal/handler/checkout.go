package handler

import (
	"net/http"

	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Submit places the order. A COD result carries the clear outcome and the
// client moves on to order history; a VNPAY result carries payUrl and the
// browser must navigate there, leaving the shopfront entirely.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var form service.CheckoutForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkoutService.Submit(c.Request().Context(), sess, form)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}
