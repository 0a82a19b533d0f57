package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  int64           `json:"categoryId"`
	Enabled     bool            `json:"enabled"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryProducts groups a category with a slice of its products,
// as served for the storefront home page.
type CategoryProducts struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

type ProductPage struct {
	Content       []Product `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int64     `json:"totalElements"`
}
