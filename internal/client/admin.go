package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"apparel-shopfront/internal/model"
)

// AdminAPI is the back-office surface. All calls require a staff token;
// authorization itself is enforced by the backend.
type AdminAPI interface {
	AdminListOrders(ctx context.Context, token string, page, size int, status string) (*model.OrderPage, error)
	AdminGetOrder(ctx context.Context, token string, id int64) (*model.Order, error)
	AdminUpdateOrderStatus(ctx context.Context, token string, id int64, status string) error
	AdminDeleteOrder(ctx context.Context, token string, id int64) error

	CreateProduct(ctx context.Context, token string, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, p *model.Product) error
	DeleteProduct(ctx context.Context, token string, id int64) error
	UpdateProductStatus(ctx context.Context, token string, id int64, enabled bool) error
	UploadProductImage(ctx context.Context, token string, id int64, filename string, file io.Reader) error

	AddProductSize(ctx context.Context, token string, s *model.SizeOption, productID int64) error
	UpdateProductSize(ctx context.Context, token string, sizeID int64, s *model.SizeOption) error
	DeleteProductSize(ctx context.Context, token string, sizeID int64) error

	SearchCategories(ctx context.Context, token string, page int, keyword string) (*model.CategoryPage, error)
	CreateCategory(ctx context.Context, token string, c *model.Category) error
	UpdateCategory(ctx context.Context, token string, id int64, c *model.Category) error
	DeleteCategory(ctx context.Context, token string, id int64) error

	SearchStaffs(ctx context.Context, token string, page int, keyword string) (*model.StaffPage, error)
	CreateStaff(ctx context.Context, token string, s *model.Staff) error
	UpdateStaff(ctx context.Context, token string, id int64, s *model.Staff) error
	DeleteStaff(ctx context.Context, token string, id int64) error
	StaffRoles(ctx context.Context, token string) ([]string, error)

	SearchUsers(ctx context.Context, token string, page int, keyword string) (*model.UserPage, error)
	DeleteUser(ctx context.Context, token string, id int64) error

	StatsSummary(ctx context.Context, token string, from, to string) (*model.StatsSummary, error)
	StatsSalesTrend(ctx context.Context, token string, from, to string) ([]model.SalesPoint, error)
	StatsTopProducts(ctx context.Context, token string, from, to string) ([]model.TopProduct, error)
}

func pageQuery(page int, keyword string) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	return q
}

func rangeQuery(from, to string) url.Values {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q
}

func (c *backendClient) AdminListOrders(ctx context.Context, token string, page, size int, status string) (*model.OrderPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if status != "" {
		q.Set("status", status)
	}

	var result model.OrderPage
	if err := c.get(ctx, token, "/admin/orders", q, &result); err != nil {
		return nil, fmt.Errorf("admin list orders: %w", err)
	}
	return &result, nil
}

func (c *backendClient) AdminGetOrder(ctx context.Context, token string, id int64) (*model.Order, error) {
	var order model.Order
	if err := c.get(ctx, token, "/admin/orders/"+strconv.FormatInt(id, 10), nil, &order); err != nil {
		return nil, fmt.Errorf("admin get order: %w", err)
	}
	return &order, nil
}

func (c *backendClient) AdminUpdateOrderStatus(ctx context.Context, token string, id int64, status string) error {
	q := url.Values{}
	q.Set("status", status)
	return c.put(ctx, token, "/admin/orders/"+strconv.FormatInt(id, 10)+"/status", q, nil, nil)
}

func (c *backendClient) AdminDeleteOrder(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, token, "/admin/orders/"+strconv.FormatInt(id, 10), nil)
}

func (c *backendClient) CreateProduct(ctx context.Context, token string, p *model.Product) (*model.Product, error) {
	var created model.Product
	if err := c.post(ctx, token, "/products", nil, p, &created); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

func (c *backendClient) UpdateProduct(ctx context.Context, token string, id int64, p *model.Product) error {
	return c.put(ctx, token, "/products/"+strconv.FormatInt(id, 10), nil, p, nil)
}

func (c *backendClient) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, token, "/products/"+strconv.FormatInt(id, 10), nil)
}

func (c *backendClient) UpdateProductStatus(ctx context.Context, token string, id int64, enabled bool) error {
	q := url.Values{}
	q.Set("enabled", strconv.FormatBool(enabled))
	return c.put(ctx, token, "/products/"+strconv.FormatInt(id, 10)+"/status", q, nil, nil)
}

// UploadProductImage is the one non-JSON call: the image travels as a
// multipart form, field name "file", everything else as usual.
func (c *backendClient) UploadProductImage(ctx context.Context, token string, id int64, filename string, file io.Reader) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close upload form: %w", err)
	}

	u := c.baseURL + "/products/" + strconv.FormatInt(id, 10) + "/upload-image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload product image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	return nil
}

func (c *backendClient) AddProductSize(ctx context.Context, token string, s *model.SizeOption, productID int64) error {
	body := map[string]any{
		"productId": productID,
		"size":      s.Size,
		"quantity":  s.Quantity,
	}
	return c.post(ctx, token, "/product-sizes", nil, body, nil)
}

func (c *backendClient) UpdateProductSize(ctx context.Context, token string, sizeID int64, s *model.SizeOption) error {
	return c.put(ctx, token, "/product-sizes/"+strconv.FormatInt(sizeID, 10), nil, s, nil)
}

func (c *backendClient) DeleteProductSize(ctx context.Context, token string, sizeID int64) error {
	return c.delete(ctx, token, "/product-sizes/"+strconv.FormatInt(sizeID, 10), nil)
}

func (c *backendClient) SearchCategories(ctx context.Context, token string, page int, keyword string) (*model.CategoryPage, error) {
	var result model.CategoryPage
	if err := c.get(ctx, token, "/categories", pageQuery(page, keyword), &result); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return &result, nil
}

func (c *backendClient) CreateCategory(ctx context.Context, token string, cat *model.Category) error {
	return c.post(ctx, token, "/categories", nil, cat, nil)
}

func (c *backendClient) UpdateCategory(ctx context.Context, token string, id int64, cat *model.Category) error {
	return c.put(ctx, token, "/categories/"+strconv.FormatInt(id, 10), nil, cat, nil)
}

func (c *backendClient) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, token, "/categories/"+strconv.FormatInt(id, 10), nil)
}

func (c *backendClient) SearchStaffs(ctx context.Context, token string, page int, keyword string) (*model.StaffPage, error) {
	var result model.StaffPage
	if err := c.get(ctx, token, "/staffs", pageQuery(page, keyword), &result); err != nil {
		return nil, fmt.Errorf("search staffs: %w", err)
	}
	return &result, nil
}

func (c *backendClient) CreateStaff(ctx context.Context, token string, s *model.Staff) error {
	return c.post(ctx, token, "/staffs", nil, s, nil)
}

func (c *backendClient) UpdateStaff(ctx context.Context, token string, id int64, s *model.Staff) error {
	return c.put(ctx, token, "/staffs/"+strconv.FormatInt(id, 10), nil, s, nil)
}

func (c *backendClient) DeleteStaff(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, token, "/staffs/"+strconv.FormatInt(id, 10), nil)
}

func (c *backendClient) StaffRoles(ctx context.Context, token string) ([]string, error) {
	var roles []string
	if err := c.get(ctx, token, "/staffs/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("staff roles: %w", err)
	}
	return roles, nil
}

func (c *backendClient) SearchUsers(ctx context.Context, token string, page int, keyword string) (*model.UserPage, error) {
	var result model.UserPage
	if err := c.get(ctx, token, "/users", pageQuery(page, keyword), &result); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return &result, nil
}

func (c *backendClient) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.delete(ctx, token, "/users/"+strconv.FormatInt(id, 10), nil)
}

func (c *backendClient) StatsSummary(ctx context.Context, token string, from, to string) (*model.StatsSummary, error) {
	var s model.StatsSummary
	if err := c.get(ctx, token, "/admin/stats/summary", rangeQuery(from, to), &s); err != nil {
		return nil, fmt.Errorf("stats summary: %w", err)
	}
	return &s, nil
}

func (c *backendClient) StatsSalesTrend(ctx context.Context, token string, from, to string) ([]model.SalesPoint, error) {
	var points []model.SalesPoint
	if err := c.get(ctx, token, "/admin/stats/sales-trend", rangeQuery(from, to), &points); err != nil {
		return nil, fmt.Errorf("stats sales trend: %w", err)
	}
	return points, nil
}

func (c *backendClient) StatsTopProducts(ctx context.Context, token string, from, to string) ([]model.TopProduct, error) {
	var tops []model.TopProduct
	if err := c.get(ctx, token, "/admin/stats/top-products", rangeQuery(from, to), &tops); err != nil {
		return nil, fmt.Errorf("stats top products: %w", err)
	}
	return tops, nil
}
