package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"apparel-shopfront/internal/model"
)

type AuthAPI interface {
	LoginUser(ctx context.Context, creds Credentials) (*LoginResult, error)
	LoginStaff(ctx context.Context, creds Credentials) (*LoginResult, error)
	RegisterUser(ctx context.Context, reg Registration) error
	Me(ctx context.Context, token string) (*model.User, error)
	UpdateMe(ctx context.Context, token string, upd ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string     `json:"accessToken"`
	User        model.User `json:"user"`
}

type ProfileUpdate struct {
	FullName string `json:"fullName"`
}

type CatalogAPI interface {
	HomeProducts(ctx context.Context, num int) ([]model.CategoryProducts, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	SearchProducts(ctx context.Context, token string, q ProductQuery) (*model.ProductPage, error)
	ProductCategories(ctx context.Context) ([]model.Category, error)
}

// ProductQuery is the product search filter set. Zero values are omitted
// from the query string.
type ProductQuery struct {
	Page       int
	Size       int
	Keyword    string
	CategoryID int64
	SizeFilter string
	MinStock   int
	MaxStock   int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.SizeFilter != "" {
		v.Set("sizeFilter", q.SizeFilter)
	}
	if q.MinStock > 0 {
		v.Set("minStock", strconv.Itoa(q.MinStock))
	}
	if q.MaxStock > 0 {
		v.Set("maxStock", strconv.Itoa(q.MaxStock))
	}
	return v
}

func (c *backendClient) LoginUser(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "", "/auth/users/login", nil, creds, &result); err != nil {
		return nil, fmt.Errorf("user login: %w", err)
	}
	return &result, nil
}

func (c *backendClient) LoginStaff(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "", "/auth/staffs/login", nil, creds, &result); err != nil {
		return nil, fmt.Errorf("staff login: %w", err)
	}
	return &result, nil
}

func (c *backendClient) RegisterUser(ctx context.Context, reg Registration) error {
	if err := c.post(ctx, "", "/auth/users/register", nil, reg, nil); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

func (c *backendClient) Me(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, token, "/users/me", nil, &u); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &u, nil
}

func (c *backendClient) UpdateMe(ctx context.Context, token string, upd ProfileUpdate) (*model.User, error) {
	var u model.User
	if err := c.put(ctx, token, "/users/me", nil, upd, &u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

func (c *backendClient) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	body := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	if err := c.put(ctx, token, "/users/me/password", nil, body, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (c *backendClient) HomeProducts(ctx context.Context, num int) ([]model.CategoryProducts, error) {
	q := url.Values{}
	q.Set("num", strconv.Itoa(num))

	var groups []model.CategoryProducts
	if err := c.get(ctx, "", "/products/by-category", q, &groups); err != nil {
		return nil, fmt.Errorf("home products: %w", err)
	}
	return groups, nil
}

func (c *backendClient) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := c.get(ctx, "", "/products/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (c *backendClient) SearchProducts(ctx context.Context, token string, q ProductQuery) (*model.ProductPage, error) {
	var page model.ProductPage
	if err := c.get(ctx, token, "/products", q.values(), &page); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return &page, nil
}

func (c *backendClient) ProductCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := c.get(ctx, "", "/products/categories", nil, &cats); err != nil {
		return nil, fmt.Errorf("product categories: %w", err)
	}
	return cats, nil
}
