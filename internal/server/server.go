package server

import (
	"errors"
	"net/http"
	"strings"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/dto"
	"apparel-shopfront/internal/handler"
	appmiddleware "apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	echo            *echo.Echo
	cfg             *config.Config
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	catalogHandler  *handler.CatalogHandler
	adminHandler    *handler.AdminHandler
	authService     service.AuthService
}

type Services struct {
	Auth     service.AuthService
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
	Payments service.PaymentService
	Catalog  service.CatalogService
	Admin    service.AdminService
}

func NewServer(cfg *config.Config, svcs Services) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		cfg:             cfg,
		authHandler:     handler.NewAuthHandler(svcs.Auth, cfg.Session.CookieName),
		cartHandler:     handler.NewCartHandler(svcs.Cart),
		checkoutHandler: handler.NewCheckoutHandler(svcs.Checkout),
		orderHandler:    handler.NewOrderHandler(svcs.Orders),
		paymentHandler:  handler.NewPaymentHandler(svcs.Payments),
		catalogHandler:  handler.NewCatalogHandler(svcs.Catalog),
		adminHandler:    handler.NewAdminHandler(svcs.Admin),
		authService:     svcs.Auth,
	}

	e.HTTPErrorHandler = s.handleError
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/staff-login", s.authHandler.StaffLogin)

	userArea := appmiddleware.RequireSession(s.authService, s.cfg.Session.CookieName, false)
	staffArea := appmiddleware.RequireSession(s.authService, s.cfg.Session.CookieName, true)

	auth.POST("/logout", s.authHandler.Logout, userArea)
	auth.GET("/me", s.authHandler.Me, userArea)

	// -------- profile --------
	users := api.Group("/users", userArea)
	users.GET("/me", s.authHandler.Profile)
	users.PUT("/me", s.authHandler.UpdateProfile)
	users.PUT("/me/password", s.authHandler.ChangePassword)

	// -------- catalog (public) --------
	api.GET("/products/home", s.catalogHandler.Home)
	api.GET("/products", s.catalogHandler.Search)
	api.GET("/products/:id", s.catalogHandler.Product)
	api.GET("/categories", s.catalogHandler.Categories)

	// -------- cart --------
	cart := api.Group("/cart", userArea)
	cart.GET("", s.cartHandler.Get)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PUT("/items/:itemId", s.cartHandler.UpdateQuantity)
	cart.PUT("/items/:itemId/size", s.cartHandler.ChangeSize)
	cart.DELETE("/items/:itemId", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.Clear)
	cart.GET("/sizes/:productId", s.cartHandler.Sizes)

	// -------- checkout & orders --------
	api.POST("/checkout", s.checkoutHandler.Submit, userArea)
	api.GET("/orders", s.orderHandler.List, userArea)
	api.GET("/orders/:id", s.orderHandler.Get, userArea)
	api.POST("/payments/pay-again/:orderId", s.paymentHandler.PayAgain, userArea)

	// -------- gateway landing pages --------
	// the gateway redirects here with its own query params; no session
	// is required to render the outcome
	s.echo.GET("/payments/vnpay/return", s.paymentHandler.HandleReturn)
	s.echo.GET("/payments/vnpay/result", s.paymentHandler.HandleResult)

	// -------- admin back-office --------
	admin := api.Group("/admin", staffArea)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.GET("/orders/:id", s.adminHandler.GetOrder)
	admin.PUT("/orders/:id/status", s.adminHandler.UpdateOrderStatus)
	admin.DELETE("/orders/:id", s.adminHandler.DeleteOrder)

	admin.GET("/products", s.adminHandler.SearchProducts)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.PUT("/products/:id/status", s.adminHandler.UpdateProductStatus)
	admin.POST("/products/:id/image", s.adminHandler.UploadProductImage)

	admin.GET("/product-sizes/by-product/:productId", s.adminHandler.ProductSizes)
	admin.POST("/product-sizes", s.adminHandler.AddProductSize)
	admin.PUT("/product-sizes/:sizeId", s.adminHandler.UpdateProductSize)
	admin.DELETE("/product-sizes/:sizeId", s.adminHandler.DeleteProductSize)

	admin.GET("/categories", s.adminHandler.SearchCategories)
	admin.POST("/categories", s.adminHandler.CreateCategory)
	admin.PUT("/categories/:id", s.adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", s.adminHandler.DeleteCategory)

	admin.GET("/staffs", s.adminHandler.SearchStaffs)
	admin.POST("/staffs", s.adminHandler.CreateStaff)
	admin.PUT("/staffs/:id", s.adminHandler.UpdateStaff)
	admin.DELETE("/staffs/:id", s.adminHandler.DeleteStaff)
	admin.GET("/staffs/roles", s.adminHandler.StaffRoles)

	admin.GET("/users", s.adminHandler.SearchUsers)
	admin.DELETE("/users/:id", s.adminHandler.DeleteUser)

	admin.GET("/stats/summary", s.adminHandler.StatsSummary)
	admin.GET("/stats/sales-trend", s.adminHandler.StatsSalesTrend)
	admin.GET("/stats/top-products", s.adminHandler.StatsTopProducts)
}

// handleError converts service and backend failures into the uniform
// error envelope. Backend 401s land here from any guarded handler; that
// keeps the forced-logout reaction in exactly one place.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		httpErr  *echo.HTTPError
		valErr   *service.ValidationError
		apiErr   *client.APIError
		status   int
		response dto.ErrorResponse
	)

	switch {
	case errors.Is(err, client.ErrAuthExpired):
		status = http.StatusUnauthorized
		response = dto.ErrorResponse{
			Message:  "session expired, please log in again",
			Redirect: loginPath(c),
		}
		s.dropSessionCookie(c)

	case errors.As(err, &valErr):
		status = http.StatusUnprocessableEntity
		response = dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "checkout form is invalid",
			Fields:  valErr.Fields,
		}

	case errors.Is(err, service.ErrEmptyCart):
		status = http.StatusBadRequest
		response = dto.ErrorResponse{Code: "EMPTY_CART", Message: "cart is empty"}

	case errors.Is(err, service.ErrNotRetryable):
		status = http.StatusConflict
		response = dto.ErrorResponse{Code: "NOT_RETRYABLE", Message: "this order cannot be paid again"}

	case errors.Is(err, client.ErrStockChanged):
		status = http.StatusConflict
		response = dto.ErrorResponse{Code: "STOCK_CHANGED", Message: client.UserMessage(err)}

	case errors.As(err, &apiErr):
		status = apiErr.Status
		response = dto.ErrorResponse{Code: apiErr.Code, Message: client.UserMessage(err)}

	case errors.As(err, &httpErr):
		status = httpErr.Code
		switch m := httpErr.Message.(type) {
		case string:
			response = dto.ErrorResponse{Message: m}
		case map[string]string:
			response = dto.ErrorResponse{Message: m["message"], Redirect: m["redirect"]}
		default:
			response = dto.ErrorResponse{Message: http.StatusText(status)}
		}

	default:
		status = http.StatusInternalServerError
		response = dto.ErrorResponse{Message: "internal error"}
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
	}

	if err := c.JSON(status, response); err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}

// loginPath picks the login page for the area the request hit: back-office
// calls go back to the staff login, everything else to the customer one.
func loginPath(c echo.Context) string {
	if strings.HasPrefix(c.Request().URL.Path, "/api/admin") {
		return "/admin/login"
	}
	return "/login"
}

func (s *Server) dropSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
