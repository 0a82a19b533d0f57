package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ErrEmptyCart blocks a checkout submission before any order request.
var ErrEmptyCart = errors.New("cart is empty")

// Local phone pattern: leading zero plus 9 or 10 digits.
var phonePattern = regexp.MustCompile(`^0\d{9,10}$`)

// CheckoutForm is the submit payload of the checkout screen.
type CheckoutForm struct {
	ShippingAddress string `json:"shippingAddress" validate:"required,notblank"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,vnphone"`
	Note            string `json:"note"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=COD VNPAY"`
}

// ValidationError maps field names to messages; it blocks submission
// without any network request being issued.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

// CheckoutResult reports where the submitted checkout ended up. For COD
// the order is placed and the cart cleared; for VNPAY the order is
// PENDING and PayURL carries the gateway redirect, cart untouched.
type CheckoutResult struct {
	OrderID int64        `json:"orderId"`
	PayURL  string       `json:"payUrl,omitempty"`
	Cleared *ClearResult `json:"cleared,omitempty"`
}

type CheckoutService interface {
	Submit(ctx context.Context, sess *model.Session, form CheckoutForm) (*CheckoutResult, error)
}

type checkoutServiceImpl struct {
	backend  client.OrderAPI
	payments client.PaymentAPI
	cart     CartService
	validate *validator.Validate
}

func NewCheckoutService(backend client.OrderAPI, payments client.PaymentAPI, cart CartService) CheckoutService {
	v := validator.New()

	// validator has no blank-string or local-phone rules built in
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &checkoutServiceImpl{
		backend:  backend,
		payments: payments,
		cart:     cart,
		validate: v,
	}
}

// Submit runs the checkout once: validate, create the order, then branch
// on payment method. Resubmission after a failure is not guarded against
// duplicate order creation; the submit control stays disabled while a
// request is in flight and that is the only guard.
func (s *checkoutServiceImpl) Submit(ctx context.Context, sess *model.Session, form CheckoutForm) (*CheckoutResult, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	cart, err := s.cart.Get(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := s.backend.CreateOrder(ctx, sess.Token, client.CreateOrderRequest{
		ShippingAddress: strings.TrimSpace(form.ShippingAddress),
		Note:            strings.TrimSpace(form.Note),
		PhoneNumber:     form.PhoneNumber,
		PaymentMethod:   form.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	result := &CheckoutResult{OrderID: order.ID}

	switch form.PaymentMethod {
	case model.PaymentMethodCOD:
		// Placed immediately. Clear failures do not undo the order; the
		// leftover items simply stay in the cart.
		cleared, err := s.cart.Clear(ctx, sess)
		if err != nil {
			if errors.Is(err, client.ErrAuthExpired) {
				return nil, err
			}
			log.Warn().Err(err).Int64("order_id", order.ID).Msg("cart clear after COD order failed")
			return result, nil
		}
		if !cleared.AllRemoved() {
			log.Warn().
				Int64("order_id", order.ID).
				Int("failed_items", len(cleared.Failed)).
				Msg("cart only partially cleared after COD order")
		}
		result.Cleared = cleared

	case model.PaymentMethodVnpay:
		// The order already exists as PENDING. If URL generation fails it
		// stays that way; no compensating cancellation is issued and the
		// user can pay again from the order list.
		payURL, err := s.payments.CreateVnpayPayment(ctx, sess.Token, order.ID)
		if err != nil {
			return nil, fmt.Errorf("create payment url for order %d: %w", order.ID, err)
		}
		result.PayURL = payURL
	}

	return result, nil
}

func (s *checkoutServiceImpl) validateForm(form CheckoutForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		switch fe.Field() {
		case "ShippingAddress":
			fields["shippingAddress"] = "shipping address is required"
		case "PhoneNumber":
			fields["phoneNumber"] = "phone number must start with 0 and have 10-11 digits"
		case "PaymentMethod":
			fields["paymentMethod"] = "payment method must be COD or VNPAY"
		}
	}
	return &ValidationError{Fields: fields}
}
