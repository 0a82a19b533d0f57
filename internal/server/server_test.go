package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/dto"
	"apparel-shopfront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleTestError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	return handleTestErrorAt(t, "/api/orders", err)
}

func handleTestErrorAt(t *testing.T, path string, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()

	s := &Server{cfg: &config.Config{
		Session: config.Session{CookieName: "shop_session"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	s.handleError(err, c)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleError_AuthExpiredLogsOutInOnePlace(t *testing.T) {
	rec, resp := handleTestError(t, fmt.Errorf("get cart: %w", client.ErrAuthExpired))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", resp.Redirect)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "shop_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestHandleError_AuthExpiredRedirectsPerArea(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantRedirect string
	}{
		{name: "customer_area", path: "/api/orders", wantRedirect: "/login"},
		{name: "staff_area", path: "/api/admin/orders", wantRedirect: "/admin/login"},
		{name: "staff_stats", path: "/api/admin/stats/summary", wantRedirect: "/admin/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := handleTestErrorAt(t, tt.path, client.ErrAuthExpired)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantRedirect, resp.Redirect)
		})
	}
}

func TestHandleError_ValidationCarriesFieldMessages(t *testing.T) {
	rec, resp := handleTestError(t, &service.ValidationError{
		Fields: map[string]string{"phoneNumber": "enter a valid phone number"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "VALIDATION", resp.Code)
	assert.Equal(t, "enter a valid phone number", resp.Fields["phoneNumber"])
}

func TestHandleError_DomainSentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "empty_cart", err: service.ErrEmptyCart, wantStatus: http.StatusBadRequest, wantCode: "EMPTY_CART"},
		{name: "not_retryable", err: service.ErrNotRetryable, wantStatus: http.StatusConflict, wantCode: "NOT_RETRYABLE"},
		{
			name:       "stock_changed",
			err:        fmt.Errorf("size M sold out: %w", client.ErrStockChanged),
			wantStatus: http.StatusConflict,
			wantCode:   "STOCK_CHANGED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := handleTestError(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleError_BackendErrorKeepsStatusAndMessage(t *testing.T) {
	rec, resp := handleTestError(t, &client.APIError{
		Status:  http.StatusNotFound,
		Code:    "ORDER_NOT_FOUND",
		Message: "order does not exist",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", resp.Code)
	assert.Equal(t, "order does not exist", resp.Message)
}

func TestHandleError_UnknownErrorIsOpaque(t *testing.T) {
	rec, resp := handleTestError(t, errors.New("sqlite locked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", resp.Message)
	assert.NotContains(t, resp.Message, "sqlite")
}
