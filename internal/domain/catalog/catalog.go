// Package catalog holds the product and category models shown on the menu
// grid, plus the contract for the backend catalog endpoints.
package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/KaanCaman/simple-pos-full-stack/pkg/money"
)

// ErrProductNotFound is returned when a requested product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Category groups products on the menu.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a sellable item. Price is in minor currency units.
type Product struct {
	ID          int64        `json:"id"`
	CategoryID  int64        `json:"category_id"`
	Name        string       `json:"name"`
	Price       money.Amount `json:"price"`
	ImageURL    string       `json:"image_url,omitempty"`
	Description string       `json:"description,omitempty"`
	IsAvailable bool         `json:"is_available"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	CategoryID  int64        `json:"category_id"`
	Name        string       `json:"name"`
	Price       money.Amount `json:"price"`
	ImageURL    string       `json:"image_url,omitempty"`
	Description string       `json:"description,omitempty"`
	IsAvailable bool         `json:"is_available"`
	SortOrder   int          `json:"sort_order"`
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// API defines the backend catalog operations.
type API interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
