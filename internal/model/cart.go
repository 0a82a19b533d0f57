package model

import "github.com/shopspring/decimal"

// Cart is the server-owned cart of the authenticated user. The shopfront
// holds a transient copy only; every mutation is followed by a re-fetch.
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	FinalPrice decimal.Decimal `json:"finalPrice"`
}

type CartItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Image       string          `json:"image"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// SizeOption is one size row of a product as reported by the backend.
// Only options with positive quantity are offered in the size picker;
// stock may still change before submit and the backend is the arbiter.
type SizeOption struct {
	ID       int64  `json:"id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (s SizeOption) InStock() bool { return s.Quantity > 0 }
