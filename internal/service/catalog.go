package service

import (
	"context"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"
)

type CatalogService interface {
	Home(ctx context.Context, num int) ([]model.CategoryProducts, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, q client.ProductQuery) (*model.ProductPage, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type catalogServiceImpl struct {
	backend client.CatalogAPI
}

func NewCatalogService(backend client.CatalogAPI) CatalogService {
	return &catalogServiceImpl{
		backend: backend,
	}
}

func (s *catalogServiceImpl) Home(ctx context.Context, num int) ([]model.CategoryProducts, error) {
	if num < 1 {
		num = 10
	}
	return s.backend.HomeProducts(ctx, num)
}

func (s *catalogServiceImpl) Product(ctx context.Context, id int64) (*model.Product, error) {
	return s.backend.GetProduct(ctx, id)
}

func (s *catalogServiceImpl) Search(ctx context.Context, q client.ProductQuery) (*model.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 10
	}
	// catalog search is public, no token
	return s.backend.SearchProducts(ctx, "", q)
}

func (s *catalogServiceImpl) Categories(ctx context.Context) ([]model.Category, error) {
	return s.backend.ProductCategories(ctx)
}
