package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"apparel-shopfront/internal/model"
)

// CartAPI mirrors the backend's /cart/me surface. Mutations acknowledge
// only; callers re-fetch GetCart to observe the new state.
type CartAPI interface {
	GetCart(ctx context.Context, token string) (*model.Cart, error)
	AddCartItem(ctx context.Context, token string, productID int64, size string, quantity int) error
	UpdateCartItemQuantity(ctx context.Context, token string, itemID int64, quantity int) error
	ChangeCartItemSize(ctx context.Context, token string, itemID int64, size string) error
	RemoveCartItem(ctx context.Context, token string, itemID int64) error
	ProductSizes(ctx context.Context, token string, productID int64) ([]model.SizeOption, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*model.Order, error)
	GetMyOrdersPaged(ctx context.Context, token string, page, size int) (*model.OrderPage, error)
	GetMyOrder(ctx context.Context, token string, id int64) (*model.Order, error)
}

type PaymentAPI interface {
	CreateVnpayPayment(ctx context.Context, token string, orderID int64) (string, error)
	PayAgainVnpay(ctx context.Context, token string, orderID int64) (string, error)
	VerifyVnpayReturn(ctx context.Context, params url.Values) (*model.PaymentVerdict, error)
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	Note            string `json:"note"`
	PhoneNumber     string `json:"phoneNumber"`
	PaymentMethod   string `json:"paymentMethod"`
}

func (c *backendClient) GetCart(ctx context.Context, token string) (*model.Cart, error) {
	var cart model.Cart
	if err := c.get(ctx, token, "/cart/me", nil, &cart); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

func (c *backendClient) AddCartItem(ctx context.Context, token string, productID int64, size string, quantity int) error {
	q := url.Values{}
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("size", size)
	q.Set("quantity", strconv.Itoa(quantity))
	return c.post(ctx, token, "/cart/me", q, nil, nil)
}

func (c *backendClient) UpdateCartItemQuantity(ctx context.Context, token string, itemID int64, quantity int) error {
	q := url.Values{}
	q.Set("quantity", strconv.Itoa(quantity))
	return c.put(ctx, token, "/cart/me/"+strconv.FormatInt(itemID, 10), q, nil, nil)
}

func (c *backendClient) ChangeCartItemSize(ctx context.Context, token string, itemID int64, size string) error {
	q := url.Values{}
	q.Set("size", size)
	return c.put(ctx, token, "/cart/me/"+strconv.FormatInt(itemID, 10)+"/size", q, nil, nil)
}

func (c *backendClient) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	return c.delete(ctx, token, "/cart/me/"+strconv.FormatInt(itemID, 10), nil)
}

func (c *backendClient) ProductSizes(ctx context.Context, token string, productID int64) ([]model.SizeOption, error) {
	var sizes []model.SizeOption
	if err := c.get(ctx, token, "/product-sizes/by-product/"+strconv.FormatInt(productID, 10), nil, &sizes); err != nil {
		return nil, fmt.Errorf("get product sizes: %w", err)
	}
	return sizes, nil
}

func (c *backendClient) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.post(ctx, token, "/me/orders", nil, req, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

func (c *backendClient) GetMyOrdersPaged(ctx context.Context, token string, page, size int) (*model.OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var result model.OrderPage
	if err := c.get(ctx, token, "/me/orders/paged", q, &result); err != nil {
		return nil, fmt.Errorf("get my orders: %w", err)
	}
	return &result, nil
}

func (c *backendClient) GetMyOrder(ctx context.Context, token string, id int64) (*model.Order, error) {
	var order model.Order
	if err := c.get(ctx, token, "/me/orders/"+strconv.FormatInt(id, 10), nil, &order); err != nil {
		return nil, fmt.Errorf("get my order: %w", err)
	}
	return &order, nil
}

func (c *backendClient) CreateVnpayPayment(ctx context.Context, token string, orderID int64) (string, error) {
	var resp struct {
		PayURL string `json:"payUrl"`
	}
	body := map[string]int64{"orderId": orderID}
	if err := c.post(ctx, token, "/payments/vnpay/create", nil, body, &resp); err != nil {
		return "", fmt.Errorf("create vnpay payment: %w", err)
	}
	return resp.PayURL, nil
}

func (c *backendClient) PayAgainVnpay(ctx context.Context, token string, orderID int64) (string, error) {
	var resp struct {
		PayURL string `json:"payUrl"`
	}
	if err := c.post(ctx, token, "/payments/vnpay/pay-again/"+strconv.FormatInt(orderID, 10), nil, nil, &resp); err != nil {
		return "", fmt.Errorf("vnpay pay again: %w", err)
	}
	return resp.PayURL, nil
}

// VerifyVnpayReturn forwards the raw gateway query set untouched; the
// backend owns the secure-hash check and answers with its verdict.
func (c *backendClient) VerifyVnpayReturn(ctx context.Context, params url.Values) (*model.PaymentVerdict, error) {
	var verdict model.PaymentVerdict
	if err := c.get(ctx, "", "/payments/vnpay/return", params, &verdict); err != nil {
		return nil, fmt.Errorf("verify vnpay return: %w", err)
	}
	return &verdict, nil
}
