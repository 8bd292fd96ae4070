package rest

import (
	"context"
	"fmt"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/catalog"
)

var _ catalog.API = (*CatalogService)(nil)

// CatalogService implements catalog.API against the backend /products and
// /categories endpoints.
type CatalogService struct {
	c *Client
}

// NewCatalogService returns a CatalogService using the given client.
func NewCatalogService(c *Client) *CatalogService {
	return &CatalogService{c: c}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := s.c.get(ctx, apiV1+"/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req catalog.ProductRequest) (*catalog.Product, error) {
	var p catalog.Product
	if err := s.c.post(ctx, apiV1+"/products", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req catalog.ProductRequest) (*catalog.Product, error) {
	var p catalog.Product
	if err := s.c.put(ctx, fmt.Sprintf("%s/products/%d", apiV1, id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/products/%d", apiV1, id))
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := s.c.get(ctx, apiV1+"/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req catalog.CategoryRequest) (*catalog.Category, error) {
	var cat catalog.Category
	if err := s.c.post(ctx, apiV1+"/categories", req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, req catalog.CategoryRequest) (*catalog.Category, error) {
	var cat catalog.Category
	if err := s.c.put(ctx, fmt.Sprintf("%s/categories/%d", apiV1, id), req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/categories/%d", apiV1, id))
}
