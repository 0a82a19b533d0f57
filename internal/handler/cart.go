package handler

import (
	"net/http"
	"strconv"

	"apparel-shopfront/internal/dto"
	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	cart, err := h.cartService.Get(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID <= 0 || req.Size == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "productId and size are required")
	}

	if err := h.cartService.AddItem(c.Request().Context(), sess, req.ProductID, req.Size, req.Quantity); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a number")
	}

	if err := h.cartService.UpdateQuantity(c.Request().Context(), sess, itemID, quantity); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *CartHandler) ChangeSize(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	size := c.QueryParam("size")
	if size == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "size is required")
	}

	if err := h.cartService.ChangeSize(c.Request().Context(), sess, itemID, size); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), sess, itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Clear fans out one removal per item. A partial failure is still a 200;
// the body says which items survived so the cart view can re-render them.
func (h *CartHandler) Clear(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	result, err := h.cartService.Clear(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Sizes(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	sizes, err := h.cartService.Sizes(c.Request().Context(), sess, productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sizes)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive number")
	}
	return id, nil
}
