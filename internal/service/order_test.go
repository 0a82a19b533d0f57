package service_test

import (
	"context"
	"testing"

	"apparel-shopfront/internal/model"
	"apparel-shopfront/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_ListPaged_Clamping(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{name: "defaults_applied", page: 0, size: 0, wantPage: 1, wantSize: 10},
		{name: "negative_page_clamped", page: -3, size: 20, wantPage: 1, wantSize: 20},
		{name: "oversized_page_size_reset", page: 2, size: 500, wantPage: 2, wantSize: 10},
		{name: "in_range_passes_through", page: 4, size: 25, wantPage: 4, wantSize: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage, gotSize int
			orders := &fakeOrderAPI{
				listPagedFunc: func(ctx context.Context, token string, page, size int) (*model.OrderPage, error) {
					gotPage, gotSize = page, size
					return &model.OrderPage{}, nil
				},
			}

			_, err := service.NewOrderService(orders).ListPaged(context.Background(), testSession(), tt.page, tt.size)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, gotPage)
			assert.Equal(t, tt.wantSize, gotSize)
		})
	}
}

func TestOrderService_Get_DecoratesRetryable(t *testing.T) {
	tests := []struct {
		name      string
		order     model.Order
		retryable bool
	}{
		{
			name:      "pending_gateway_order",
			order:     model.Order{ID: 5, Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodVnpay},
			retryable: true,
		},
		{
			name:      "shipped_gateway_order",
			order:     model.Order{ID: 5, Status: model.OrderStatusShipped, PaymentMethod: model.PaymentMethodVnpay},
			retryable: false,
		},
		{
			name:      "pending_cod_order",
			order:     model.Order{ID: 5, Status: model.OrderStatusPending, PaymentMethod: model.PaymentMethodCOD},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &fakeOrderAPI{
				getOrderFunc: func(ctx context.Context, token string, id int64) (*model.Order, error) {
					o := tt.order
					return &o, nil
				},
			}

			detail, err := service.NewOrderService(orders).Get(context.Background(), testSession(), 5)

			require.NoError(t, err)
			assert.Equal(t, tt.order.ID, detail.ID)
			assert.Equal(t, tt.retryable, detail.Retryable)
		})
	}
}
