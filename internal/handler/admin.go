package handler

import (
	"net/http"
	"strconv"

	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// -------- orders --------

func (h *AdminHandler) ListOrders(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	orders, err := h.adminService.ListOrders(c.Request().Context(), sess, page, size, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) GetOrder(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.adminService.GetOrder(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	status := c.QueryParam("status")
	if status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	if err := h.adminService.UpdateOrderStatus(c.Request().Context(), sess, id, status); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteOrder(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// -------- products --------

func (h *AdminHandler) SearchProducts(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	query, err := productQuery(c)
	if err != nil {
		return err
	}

	page, err := h.adminService.SearchProducts(c.Request().Context(), sess, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var p model.Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.adminService.CreateProduct(c.Request().Context(), sess, &p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var p model.Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.UpdateProduct(c.Request().Context(), sess, id, &p); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteProduct(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) UpdateProductStatus(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	enabled, err := strconv.ParseBool(c.QueryParam("enabled"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "enabled must be true or false")
	}

	if err := h.adminService.SetProductEnabled(c.Request().Context(), sess, id, enabled); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// UploadProductImage relays the multipart file to the backend untouched.
func (h *AdminHandler) UploadProductImage(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	if err := h.adminService.UploadProductImage(c.Request().Context(), sess, id, fileHeader.Filename, file); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// -------- product sizes --------

func (h *AdminHandler) ProductSizes(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	sizes, err := h.adminService.ProductSizes(c.Request().Context(), sess, productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sizes)
}

func (h *AdminHandler) AddProductSize(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req struct {
		ProductID int64  `json:"productId"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	opt := model.SizeOption{Size: req.Size, Quantity: req.Quantity}
	if err := h.adminService.AddProductSize(c.Request().Context(), sess, req.ProductID, &opt); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *AdminHandler) UpdateProductSize(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	sizeID, err := pathID(c, "sizeId")
	if err != nil {
		return err
	}

	var opt model.SizeOption
	if err := c.Bind(&opt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.UpdateProductSize(c.Request().Context(), sess, sizeID, &opt); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) DeleteProductSize(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	sizeID, err := pathID(c, "sizeId")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteProductSize(c.Request().Context(), sess, sizeID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// -------- categories --------

func (h *AdminHandler) SearchCategories(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))

	cats, err := h.adminService.SearchCategories(c.Request().Context(), sess, page, c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var cat model.Category
	if err := c.Bind(&cat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.adminService.CreateCategory(c.Request().Context(), sess, &cat); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var cat model.Category
	if err := c.Bind(&cat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.adminService.UpdateCategory(c.Request().Context(), sess, id, &cat); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteCategory(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// -------- staff --------

func (h *AdminHandler) SearchStaffs(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))

	staffs, err := h.adminService.SearchStaffs(c.Request().Context(), sess, page, c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staffs)
}

func (h *AdminHandler) CreateStaff(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var st model.Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.adminService.CreateStaff(c.Request().Context(), sess, &st); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (h *AdminHandler) UpdateStaff(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var st model.Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.adminService.UpdateStaff(c.Request().Context(), sess, id, &st); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) DeleteStaff(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteStaff(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AdminHandler) StaffRoles(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	roles, err := h.adminService.StaffRoles(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// -------- users --------

func (h *AdminHandler) SearchUsers(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))

	users, err := h.adminService.SearchUsers(c.Request().Context(), sess, page, c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.adminService.DeleteUser(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// -------- stats --------

func (h *AdminHandler) StatsSummary(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	summary, err := h.adminService.StatsSummary(c.Request().Context(), sess, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) StatsSalesTrend(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	points, err := h.adminService.StatsSalesTrend(c.Request().Context(), sess, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, points)
}

func (h *AdminHandler) StatsTopProducts(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	tops, err := h.adminService.StatsTopProducts(c.Request().Context(), sess, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tops)
}
