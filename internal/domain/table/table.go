// Package table holds the dining table model. Table status is a server-side
// projection of live order state and is never set by the client.
package table

import (
	"context"
	"time"
)

// Status is the occupancy state of a table.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
)

// Table is a physical seating unit.
type Table struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Status         Status    `json:"status"`
	Section        string    `json:"section,omitempty"`
	OpenOrderCount int       `json:"open_order_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Request is the create/update payload for a table.
type Request struct {
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// API defines the backend table operations.
type API interface {
	List(ctx context.Context) ([]Table, error)
	Create(ctx context.Context, req Request) (*Table, error)
	Update(ctx context.Context, id int64, req Request) (*Table, error)
	Delete(ctx context.Context, id int64) error
}
