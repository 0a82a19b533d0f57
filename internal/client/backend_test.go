package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/config"
	"apparel-shopfront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	auth   string
	body   map[string]any
}

// newTestBackend spins up a stub commerce API that records every request
// and answers with the given handler's body.
func newTestBackend(t *testing.T, status int, respond any) (client.Backend, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if respond != nil {
			_ = json.NewEncoder(w).Encode(respond)
		}
	}))
	t.Cleanup(srv.Close)

	backend := client.NewBackend(&config.Backend{
		BaseURL: srv.URL,
		Timeout: 15 * time.Second,
	})
	return backend, rec
}

func TestBackendClient_CartOperations(t *testing.T) {
	t.Run("get_cart", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, model.Cart{
			Items:      []model.CartItem{{ID: 1, ProductName: "Oversize Tee", Quantity: 2}},
			FinalPrice: decimal.NewFromInt(250000),
		})

		cart, err := backend.GetCart(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, rec.method)
		assert.Equal(t, "/cart/me", rec.path)
		assert.Equal(t, "Bearer tok-1", rec.auth)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Oversize Tee", cart.Items[0].ProductName)
	})

	t.Run("add_item_sends_query_params", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, nil)

		err := backend.AddCartItem(context.Background(), "tok-1", 15, "XL", 3)

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t, "/cart/me", rec.path)
		assert.Equal(t, "15", rec.query.Get("productId"))
		assert.Equal(t, "XL", rec.query.Get("size"))
		assert.Equal(t, "3", rec.query.Get("quantity"))
	})

	t.Run("update_quantity", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, nil)

		err := backend.UpdateCartItemQuantity(context.Background(), "tok-1", 7, 4)

		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, rec.method)
		assert.Equal(t, "/cart/me/7", rec.path)
		assert.Equal(t, "4", rec.query.Get("quantity"))
	})

	t.Run("change_size", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, nil)

		err := backend.ChangeCartItemSize(context.Background(), "tok-1", 7, "M")

		require.NoError(t, err)
		assert.Equal(t, "/cart/me/7/size", rec.path)
		assert.Equal(t, "M", rec.query.Get("size"))
	})

	t.Run("remove_item", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusNoContent, nil)

		err := backend.RemoveCartItem(context.Background(), "tok-1", 9)

		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, rec.method)
		assert.Equal(t, "/cart/me/9", rec.path)
	})
}

func TestBackendClient_Orders(t *testing.T) {
	t.Run("create_order", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusCreated, model.Order{ID: 42, Status: model.OrderStatusPending})

		order, err := backend.CreateOrder(context.Background(), "tok-1", client.CreateOrderRequest{
			ShippingAddress: "12 Hang Bai, Hanoi",
			PhoneNumber:     "0912345678",
			PaymentMethod:   model.PaymentMethodCOD,
		})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t, "/me/orders", rec.path)
		assert.Equal(t, "12 Hang Bai, Hanoi", rec.body["shippingAddress"])
		assert.Equal(t, "0912345678", rec.body["phoneNumber"])
		assert.Equal(t, "COD", rec.body["paymentMethod"])
		assert.Equal(t, int64(42), order.ID)
	})

	t.Run("orders_paged", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, model.OrderPage{TotalElements: 12})

		page, err := backend.GetMyOrdersPaged(context.Background(), "tok-1", 2, 10)

		require.NoError(t, err)
		assert.Equal(t, "/me/orders/paged", rec.path)
		assert.Equal(t, "2", rec.query.Get("page"))
		assert.Equal(t, "10", rec.query.Get("size"))
		assert.Equal(t, int64(12), page.TotalElements)
	})
}

func TestBackendClient_Payments(t *testing.T) {
	t.Run("create_vnpay_payment", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, map[string]string{
			"payUrl": "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?ref=77",
		})

		payURL, err := backend.CreateVnpayPayment(context.Background(), "tok-1", 77)

		require.NoError(t, err)
		assert.Equal(t, "/payments/vnpay/create", rec.path)
		assert.Equal(t, float64(77), rec.body["orderId"])
		assert.Contains(t, payURL, "vnpayment.vn")
	})

	t.Run("pay_again", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, map[string]string{"payUrl": "https://gateway/pay"})

		payURL, err := backend.PayAgainVnpay(context.Background(), "tok-1", 5)

		require.NoError(t, err)
		assert.Equal(t, "/payments/vnpay/pay-again/5", rec.path)
		assert.Equal(t, "https://gateway/pay", payURL)
	})

	t.Run("verify_return_forwards_raw_params", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, model.PaymentVerdict{Valid: true, ResponseCode: "00"})

		params := url.Values{}
		params.Set(model.VnpParamTxnRef, "77")
		params.Set(model.VnpParamResponseCode, "00")
		params.Set("vnp_SecureHash", "abcdef")

		verdict, err := backend.VerifyVnpayReturn(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, "/payments/vnpay/return", rec.path)
		assert.Equal(t, "77", rec.query.Get(model.VnpParamTxnRef))
		assert.Equal(t, "abcdef", rec.query.Get("vnp_SecureHash"))
		assert.Empty(t, rec.auth)
		assert.True(t, verdict.Valid)
	})
}

func TestBackendClient_ErrorMapping(t *testing.T) {
	t.Run("unauthorized_maps_to_auth_expired", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.StatusUnauthorized, nil)

		_, err := backend.GetCart(context.Background(), "stale-token")

		assert.ErrorIs(t, err, client.ErrAuthExpired)
	})

	t.Run("stock_changed_code_maps_to_sentinel", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.StatusConflict, map[string]string{
			"code":    "STOCK_CHANGED",
			"message": "requested size is no longer available",
		})

		err := backend.UpdateCartItemQuantity(context.Background(), "tok-1", 1, 99)

		assert.ErrorIs(t, err, client.ErrStockChanged)
	})

	t.Run("other_errors_carry_status_and_message", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.StatusBadRequest, map[string]string{
			"code":    "INVALID_ADDRESS",
			"message": "shipping address is required",
		})

		_, err := backend.CreateOrder(context.Background(), "tok-1", client.CreateOrderRequest{})

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "INVALID_ADDRESS", apiErr.Code)
		assert.Equal(t, "shipping address is required", apiErr.Message)
	})

	t.Run("unparseable_error_body_still_reports_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>upstream down</html>"))
		}))
		t.Cleanup(srv.Close)

		backend := client.NewBackend(&config.Backend{BaseURL: srv.URL, Timeout: time.Second})

		_, err := backend.GetCart(context.Background(), "tok-1")

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	})
}

func TestBackendClient_Auth(t *testing.T) {
	t.Run("login_user", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, client.LoginResult{
			AccessToken: "jwt-token",
			User:        model.User{ID: 1, Email: "a@example.com"},
		})

		result, err := backend.LoginUser(context.Background(), client.Credentials{Email: "a@example.com", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "/auth/users/login", rec.path)
		assert.Equal(t, "a@example.com", rec.body["email"])
		assert.Empty(t, rec.auth)
		assert.Equal(t, "jwt-token", result.AccessToken)
	})

	t.Run("login_staff", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, client.LoginResult{AccessToken: "staff-token"})

		_, err := backend.LoginStaff(context.Background(), client.Credentials{})

		require.NoError(t, err)
		assert.Equal(t, "/auth/staffs/login", rec.path)
	})
}

func TestBackendClient_Profile(t *testing.T) {
	t.Run("me", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, model.User{ID: 1, FullName: "Nguyen Van A"})

		user, err := backend.Me(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, rec.method)
		assert.Equal(t, "/users/me", rec.path)
		assert.Equal(t, "Bearer tok-1", rec.auth)
		assert.Equal(t, "Nguyen Van A", user.FullName)
	})

	t.Run("update_me", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, model.User{ID: 1, FullName: "Le Van C"})

		user, err := backend.UpdateMe(context.Background(), "tok-1", client.ProfileUpdate{FullName: "Le Van C"})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, rec.method)
		assert.Equal(t, "/users/me", rec.path)
		assert.Equal(t, "Le Van C", rec.body["fullName"])
		assert.Equal(t, "Le Van C", user.FullName)
	})

	t.Run("change_password", func(t *testing.T) {
		backend, rec := newTestBackend(t, http.StatusOK, nil)

		err := backend.ChangePassword(context.Background(), "tok-1", "old-secret", "new-secret")

		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, rec.method)
		assert.Equal(t, "/users/me/password", rec.path)
		assert.Equal(t, "old-secret", rec.body["oldPassword"])
		assert.Equal(t, "new-secret", rec.body["newPassword"])
	})
}

func TestBackendClient_UploadProductImage(t *testing.T) {
	var (
		gotPath        string
		gotAuth        string
		gotContentType string
		gotFilename    string
		gotContent     []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContent, _ = io.ReadAll(file)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	backend := client.NewBackend(&config.Backend{BaseURL: srv.URL, Timeout: time.Second})

	err := backend.UploadProductImage(context.Background(), "tok-1", 15, "tee.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/products/15/upload-image", gotPath)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "tee.png", gotFilename)
	assert.Equal(t, "png-bytes", string(gotContent))
}
