package handler

import (
	"context"
	"net/http"
	"time"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/dto"
	"apparel-shopfront/internal/middleware"
	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
	cookieName  string
}

func NewAuthHandler(authService service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, h.authService.LoginUser)
}

func (h *AuthHandler) StaffLogin(c echo.Context) error {
	return h.login(c, h.authService.LoginStaff)
}

func (h *AuthHandler) login(c echo.Context, doLogin func(ctx context.Context, creds client.Credentials) (*model.Session, error)) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sess, err := doLogin(c.Request().Context(), client.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setCookie(c, sess.ID, sess.ExpiresAt)

	return c.JSON(http.StatusOK, dto.SessionResponse{
		User:  sess.User(),
		Staff: sess.Staff,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.authService.Register(c.Request().Context(), client.Registration{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if err := h.authService.Logout(c.Request().Context(), sess); err != nil {
		return err
	}

	h.setCookie(c, "", time.Unix(0, 0))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, dto.SessionResponse{
		User:  sess.User(),
		Staff: sess.Staff,
	})
}

// Profile reads the account fresh from the backend, unlike Me which
// answers from the login-time snapshot.
func (h *AuthHandler) Profile(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	user, err := h.authService.Profile(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), sess, client.ProfileUpdate{
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.authService.ChangePassword(c.Request().Context(), sess, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *AuthHandler) setCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
