package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCOD   = "COD"
	PaymentMethodVnpay = "VNPAY"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCanceled   = "CANCELED"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCanceled,
}

type Order struct {
	ID              int64           `json:"id"`
	UserFullName    string          `json:"userFullName"`
	ShippingAddress string          `json:"shippingAddress"`
	PhoneNumber     string          `json:"phoneNumber"`
	Note            string          `json:"note"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	OrderTime       time.Time       `json:"orderTime"`
	Items           []OrderItem     `json:"items"`
}

type OrderItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is price multiplied by quantity, computed locally for display.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderPage is the backend's paged envelope for order listings.
type OrderPage struct {
	Content       []Order `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int64   `json:"totalElements"`
}
