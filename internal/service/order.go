package service

import (
	"context"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"
)

type OrderService interface {
	ListPaged(ctx context.Context, sess *model.Session, page, size int) (*model.OrderPage, error)
	Get(ctx context.Context, sess *model.Session, id int64) (*OrderDetail, error)
}

// OrderDetail decorates a backend order with the locally computed bits
// the detail view needs.
type OrderDetail struct {
	model.Order
	Retryable bool `json:"retryable"`
}

type orderServiceImpl struct {
	backend client.OrderAPI
}

func NewOrderService(backend client.OrderAPI) OrderService {
	return &orderServiceImpl{
		backend: backend,
	}
}

func (s *orderServiceImpl) ListPaged(ctx context.Context, sess *model.Session, page, size int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return s.backend.GetMyOrdersPaged(ctx, sess.Token, page, size)
}

func (s *orderServiceImpl) Get(ctx context.Context, sess *model.Session, id int64) (*OrderDetail, error) {
	order, err := s.backend.GetMyOrder(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:     *order,
		Retryable: Retryable(order),
	}, nil
}
