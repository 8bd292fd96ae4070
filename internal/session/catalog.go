package session

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/catalog"
)

// CatalogCache mirrors the product and category lists for the menu grid.
type CatalogCache struct {
	api catalog.API
	lg  *zap.Logger

	mu         sync.RWMutex
	products   []catalog.Product
	categories []catalog.Category
}

// NewCatalogCache returns an empty cache.
func NewCatalogCache(api catalog.API, lg *zap.Logger) *CatalogCache {
	return &CatalogCache{api: api, lg: lg}
}

// Refresh replaces both cached lists with the backend's, sorted for display.
func (c *CatalogCache) Refresh(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch products")
	}
	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch categories")
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].SortOrder < products[j].SortOrder
	})
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].SortOrder < categories[j].SortOrder
	})

	c.mu.Lock()
	c.products = products
	c.categories = categories
	c.mu.Unlock()
	return nil
}

// Products returns a copy of the cached product list.
func (c *CatalogCache) Products() []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductsByCategory returns the cached products in one category.
func (c *CatalogCache) ProductsByCategory(categoryID int64) []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []catalog.Product
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Product returns a cached product by id.
func (c *CatalogCache) Product(id int64) (catalog.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Categories returns a copy of the cached category list.
func (c *CatalogCache) Categories() []catalog.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CreateProduct adds a product and refreshes the cache so sort order and
// availability come from the backend.
func (c *CatalogCache) CreateProduct(ctx context.Context, req catalog.ProductRequest) (*catalog.Product, error) {
	p, err := c.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	c.refreshQuiet(ctx)
	return p, nil
}

// UpdateProduct edits a product and refreshes the cache.
func (c *CatalogCache) UpdateProduct(ctx context.Context, id int64, req catalog.ProductRequest) (*catalog.Product, error) {
	p, err := c.api.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	c.refreshQuiet(ctx)
	return p, nil
}

// DeleteProduct removes a product and drops it from the cache.
func (c *CatalogCache) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.api.DeleteProduct(ctx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}

	c.mu.Lock()
	kept := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	c.mu.Unlock()
	return nil
}

// CreateCategory adds a category and refreshes the cache.
func (c *CatalogCache) CreateCategory(ctx context.Context, req catalog.CategoryRequest) (*catalog.Category, error) {
	cat, err := c.api.CreateCategory(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "create category")
	}
	c.refreshQuiet(ctx)
	return cat, nil
}

// UpdateCategory edits a category and refreshes the cache.
func (c *CatalogCache) UpdateCategory(ctx context.Context, id int64, req catalog.CategoryRequest) (*catalog.Category, error) {
	cat, err := c.api.UpdateCategory(ctx, id, req)
	if err != nil {
		return nil, errors.Wrap(err, "update category")
	}
	c.refreshQuiet(ctx)
	return cat, nil
}

// DeleteCategory removes a category and drops it and its cached products.
func (c *CatalogCache) DeleteCategory(ctx context.Context, id int64) error {
	if err := c.api.DeleteCategory(ctx, id); err != nil {
		return errors.Wrap(err, "delete category")
	}

	c.mu.Lock()
	keptCategories := c.categories[:0]
	for _, cat := range c.categories {
		if cat.ID != id {
			keptCategories = append(keptCategories, cat)
		}
	}
	c.categories = keptCategories

	keptProducts := c.products[:0]
	for _, p := range c.products {
		if p.CategoryID != id {
			keptProducts = append(keptProducts, p)
		}
	}
	c.products = keptProducts
	c.mu.Unlock()
	return nil
}

// refreshQuiet reloads the cache after an admin write; the write already
// succeeded, so a failed reload is only logged.
func (c *CatalogCache) refreshQuiet(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.lg.Warn("Catalog refresh after write failed", zap.Error(err))
	}
}
