package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"

	"github.com/rs/zerolog/log"
)

// ErrNotRetryable rejects a pay-again attempt for an order that is no
// longer pending or was not placed through the gateway.
var ErrNotRetryable = errors.New("order payment cannot be retried")

type PaymentService interface {
	VerifyReturn(ctx context.Context, params url.Values) *model.PaymentVerdict
	PayAgain(ctx context.Context, sess *model.Session, orderID int64) (string, error)
}

type paymentServiceImpl struct {
	backend client.PaymentAPI
	orders  client.OrderAPI
}

func NewPaymentService(backend client.PaymentAPI, orders client.OrderAPI) PaymentService {
	return &paymentServiceImpl{
		backend: backend,
		orders:  orders,
	}
}

// VerifyReturn forwards the raw gateway parameters to the backend for
// signature verification. A failure to verify is never a hard error: the
// verdict falls back to the gateway's own response code, unverified, and
// the caller still renders a page with a retry path.
func (s *paymentServiceImpl) VerifyReturn(ctx context.Context, params url.Values) *model.PaymentVerdict {
	verdict, err := s.backend.VerifyVnpayReturn(ctx, params)
	if err != nil {
		log.Warn().Err(err).Msg("vnpay return verification unavailable, trusting raw response code")
		return &model.PaymentVerdict{
			Valid:        false,
			Verified:     false,
			ResponseCode: params.Get(model.VnpParamResponseCode),
			Params:       flattenParams(params),
		}
	}

	verdict.Verified = true
	if verdict.Params == nil {
		verdict.Params = flattenParams(params)
	}
	return verdict
}

// PayAgain requests a fresh gateway URL for an existing order. Only
// pending gateway orders qualify.
func (s *paymentServiceImpl) PayAgain(ctx context.Context, sess *model.Session, orderID int64) (string, error) {
	order, err := s.orders.GetMyOrder(ctx, sess.Token, orderID)
	if err != nil {
		return "", fmt.Errorf("load order %d: %w", orderID, err)
	}
	if !Retryable(order) {
		return "", ErrNotRetryable
	}

	payURL, err := s.backend.PayAgainVnpay(ctx, sess.Token, orderID)
	if err != nil {
		return "", fmt.Errorf("request new payment url for order %d: %w", orderID, err)
	}
	return payURL, nil
}

// Retryable reports whether an order may re-enter the gateway flow.
func Retryable(order *model.Order) bool {
	return order.Status == model.OrderStatusPending &&
		order.PaymentMethod == model.PaymentMethodVnpay
}

func flattenParams(params url.Values) map[string]string {
	flat := make(map[string]string, len(params))
	for key := range params {
		flat[key] = params.Get(key)
	}
	return flat
}
