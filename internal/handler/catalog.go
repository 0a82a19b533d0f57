package handler

import (
	"net/http"
	"strconv"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) Home(c echo.Context) error {
	num, _ := strconv.Atoi(c.QueryParam("num"))

	groups, err := h.catalogService.Home(c.Request().Context(), num)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *CatalogHandler) Product(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogService.Product(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) Search(c echo.Context) error {
	query, err := productQuery(c)
	if err != nil {
		return err
	}

	page, err := h.catalogService.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.catalogService.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func productQuery(c echo.Context) (client.ProductQuery, error) {
	var q client.ProductQuery
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Size, _ = strconv.Atoi(c.QueryParam("size"))
	q.Keyword = c.QueryParam("keyword")
	q.SizeFilter = c.QueryParam("sizeFilter")
	q.MinStock, _ = strconv.Atoi(c.QueryParam("minStock"))
	q.MaxStock, _ = strconv.Atoi(c.QueryParam("maxStock"))

	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "categoryId must be a number")
		}
		q.CategoryID = id
	}
	return q, nil
}
