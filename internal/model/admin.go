package model

import "github.com/shopspring/decimal"

type Staff struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type StaffPage struct {
	Content       []Staff `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int64   `json:"totalElements"`
}

type UserPage struct {
	Content       []User `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int64  `json:"totalElements"`
}

type CategoryPage struct {
	Content       []Category `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
}

type StatsSummary struct {
	Revenue       decimal.Decimal `json:"revenue"`
	OrderCount    int64           `json:"orderCount"`
	UserCount     int64           `json:"userCount"`
	PendingOrders int64           `json:"pendingOrders"`
}

type SalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type TopProduct struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Sold      int64           `json:"sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
