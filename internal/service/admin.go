package service

import (
	"context"
	"errors"
	"io"
	"slices"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"
)

// ErrUnknownStatus rejects an order status outside the backend's set
// before the request goes out.
var ErrUnknownStatus = errors.New("unknown order status")

// AdminService is the back-office passthrough. Only order status gets a
// local sanity check; everything else delegates validation to the backend.
type AdminService interface {
	ListOrders(ctx context.Context, sess *model.Session, page, size int, status string) (*model.OrderPage, error)
	GetOrder(ctx context.Context, sess *model.Session, id int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, sess *model.Session, id int64, status string) error
	DeleteOrder(ctx context.Context, sess *model.Session, id int64) error

	SearchProducts(ctx context.Context, sess *model.Session, q client.ProductQuery) (*model.ProductPage, error)
	CreateProduct(ctx context.Context, sess *model.Session, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, sess *model.Session, id int64, p *model.Product) error
	DeleteProduct(ctx context.Context, sess *model.Session, id int64) error
	SetProductEnabled(ctx context.Context, sess *model.Session, id int64, enabled bool) error
	UploadProductImage(ctx context.Context, sess *model.Session, id int64, filename string, file io.Reader) error

	ProductSizes(ctx context.Context, sess *model.Session, productID int64) ([]model.SizeOption, error)
	AddProductSize(ctx context.Context, sess *model.Session, productID int64, opt *model.SizeOption) error
	UpdateProductSize(ctx context.Context, sess *model.Session, sizeID int64, opt *model.SizeOption) error
	DeleteProductSize(ctx context.Context, sess *model.Session, sizeID int64) error

	SearchCategories(ctx context.Context, sess *model.Session, page int, keyword string) (*model.CategoryPage, error)
	CreateCategory(ctx context.Context, sess *model.Session, c *model.Category) error
	UpdateCategory(ctx context.Context, sess *model.Session, id int64, c *model.Category) error
	DeleteCategory(ctx context.Context, sess *model.Session, id int64) error

	SearchStaffs(ctx context.Context, sess *model.Session, page int, keyword string) (*model.StaffPage, error)
	CreateStaff(ctx context.Context, sess *model.Session, st *model.Staff) error
	UpdateStaff(ctx context.Context, sess *model.Session, id int64, st *model.Staff) error
	DeleteStaff(ctx context.Context, sess *model.Session, id int64) error
	StaffRoles(ctx context.Context, sess *model.Session) ([]string, error)

	SearchUsers(ctx context.Context, sess *model.Session, page int, keyword string) (*model.UserPage, error)
	DeleteUser(ctx context.Context, sess *model.Session, id int64) error

	StatsSummary(ctx context.Context, sess *model.Session, from, to string) (*model.StatsSummary, error)
	StatsSalesTrend(ctx context.Context, sess *model.Session, from, to string) ([]model.SalesPoint, error)
	StatsTopProducts(ctx context.Context, sess *model.Session, from, to string) ([]model.TopProduct, error)
}

type adminServiceImpl struct {
	backend interface {
		client.AdminAPI
		client.CatalogAPI
		client.CartAPI
	}
}

func NewAdminService(backend client.Backend) AdminService {
	return &adminServiceImpl{
		backend: backend,
	}
}

func (s *adminServiceImpl) ListOrders(ctx context.Context, sess *model.Session, page, size int, status string) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return s.backend.AdminListOrders(ctx, sess.Token, page, size, status)
}

func (s *adminServiceImpl) GetOrder(ctx context.Context, sess *model.Session, id int64) (*model.Order, error) {
	return s.backend.AdminGetOrder(ctx, sess.Token, id)
}

func (s *adminServiceImpl) UpdateOrderStatus(ctx context.Context, sess *model.Session, id int64, status string) error {
	if !slices.Contains(model.OrderStatuses, status) {
		return ErrUnknownStatus
	}
	return s.backend.AdminUpdateOrderStatus(ctx, sess.Token, id, status)
}

func (s *adminServiceImpl) DeleteOrder(ctx context.Context, sess *model.Session, id int64) error {
	return s.backend.AdminDeleteOrder(ctx, sess.Token, id)
}

func (s *adminServiceImpl) SearchProducts(ctx context.Context, sess *model.Session, q client.ProductQuery) (*model.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 10
	}
	return s.backend.SearchProducts(ctx, sess.Token, q)
}

func (s *adminServiceImpl) CreateProduct(ctx context.Context, sess *model.Session, p *model.Product) (*model.Product, error) {
	return s.backend.CreateProduct(ctx, sess.Token, p)
}

func (s *adminServiceImpl) UpdateProduct(ctx context.Context, sess *model.Session, id int64, p *model.Product) error {
	return s.backend.UpdateProduct(ctx, sess.Token, id, p)
}

func (s *adminServiceImpl) DeleteProduct(ctx context.Context, sess *model.Session, id int64) error {
	return s.backend.DeleteProduct(ctx, sess.Token, id)
}

func (s *adminServiceImpl) SetProductEnabled(ctx context.Context, sess *model.Session, id int64, enabled bool) error {
	return s.backend.UpdateProductStatus(ctx, sess.Token, id, enabled)
}

func (s *adminServiceImpl) UploadProductImage(ctx context.Context, sess *model.Session, id int64, filename string, file io.Reader) error {
	return s.backend.UploadProductImage(ctx, sess.Token, id, filename, file)
}

func (s *adminServiceImpl) ProductSizes(ctx context.Context, sess *model.Session, productID int64) ([]model.SizeOption, error) {
	// admin sees all options, including out of stock
	return s.backend.ProductSizes(ctx, sess.Token, productID)
}

func (s *adminServiceImpl) AddProductSize(ctx context.Context, sess *model.Session, productID int64, opt *model.SizeOption) error {
	return s.backend.AddProductSize(ctx, sess.Token, opt, productID)
}

func (s *adminServiceImpl) UpdateProductSize(ctx context.Context, sess *model.Session, sizeID int64, opt *model.SizeOption) error {
	return s.backend.UpdateProductSize(ctx, sess.Token, sizeID, opt)
}

func (s *adminServiceImpl) DeleteProductSize(ctx context.Context, sess *model.Session, sizeID int64) error {
	return s.backend.DeleteProductSize(ctx, sess.Token, sizeID)
}

func (s *adminServiceImpl) SearchCategories(ctx context.Context, sess *model.Session, page int, keyword string) (*model.CategoryPage, error) {
	return s.backend.SearchCategories(ctx, sess.Token, max(page, 1), keyword)
}

func (s *adminServiceImpl) CreateCategory(ctx context.Context, sess *model.Session, c *model.Category) error {
	return s.backend.CreateCategory(ctx, sess.Token, c)
}

func (s *adminServiceImpl) UpdateCategory(ctx context.Context, sess *model.Session, id int64, c *model.Category) error {
	return s.backend.UpdateCategory(ctx, sess.Token, id, c)
}

func (s *adminServiceImpl) DeleteCategory(ctx context.Context, sess *model.Session, id int64) error {
	return s.backend.DeleteCategory(ctx, sess.Token, id)
}

func (s *adminServiceImpl) SearchStaffs(ctx context.Context, sess *model.Session, page int, keyword string) (*model.StaffPage, error) {
	return s.backend.SearchStaffs(ctx, sess.Token, max(page, 1), keyword)
}

func (s *adminServiceImpl) CreateStaff(ctx context.Context, sess *model.Session, st *model.Staff) error {
	return s.backend.CreateStaff(ctx, sess.Token, st)
}

func (s *adminServiceImpl) UpdateStaff(ctx context.Context, sess *model.Session, id int64, st *model.Staff) error {
	return s.backend.UpdateStaff(ctx, sess.Token, id, st)
}

func (s *adminServiceImpl) DeleteStaff(ctx context.Context, sess *model.Session, id int64) error {
	return s.backend.DeleteStaff(ctx, sess.Token, id)
}

func (s *adminServiceImpl) StaffRoles(ctx context.Context, sess *model.Session) ([]string, error) {
	return s.backend.StaffRoles(ctx, sess.Token)
}

func (s *adminServiceImpl) SearchUsers(ctx context.Context, sess *model.Session, page int, keyword string) (*model.UserPage, error) {
	return s.backend.SearchUsers(ctx, sess.Token, max(page, 1), keyword)
}

func (s *adminServiceImpl) DeleteUser(ctx context.Context, sess *model.Session, id int64) error {
	return s.backend.DeleteUser(ctx, sess.Token, id)
}

func (s *adminServiceImpl) StatsSummary(ctx context.Context, sess *model.Session, from, to string) (*model.StatsSummary, error) {
	return s.backend.StatsSummary(ctx, sess.Token, from, to)
}

func (s *adminServiceImpl) StatsSalesTrend(ctx context.Context, sess *model.Session, from, to string) ([]model.SalesPoint, error) {
	return s.backend.StatsSalesTrend(ctx, sess.Token, from, to)
}

func (s *adminServiceImpl) StatsTopProducts(ctx context.Context, sess *model.Session, from, to string) ([]model.TopProduct, error) {
	return s.backend.StatsTopProducts(ctx, sess.Token, from, to)
}
