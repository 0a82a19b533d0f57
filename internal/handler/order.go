package handler

import (
	"net/http"
	"strconv"

	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	orders, err := h.orderService.ListPaged(c.Request().Context(), sess, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.orderService.Get(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
