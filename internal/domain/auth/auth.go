// Package auth holds the authenticated user model, the login contract, and
// role capability resolution for navigation gating.
package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrUnauthenticated indicates no valid session is present.
var ErrUnauthenticated = errors.New("not authenticated")

// Role is the access level of an operator.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWaiter Role = "waiter"
)

// User is an operator of the terminal.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is what the backend returns on a successful login. The token
// is opaque; the client only stores and attaches it.
type LoginResult struct {
	Token     string `json:"token"`
	Role      Role   `json:"role"`
	UserID    int64  `json:"userID"`
	IsDayOpen bool   `json:"is_day_open"`
}

// API defines the backend authentication operations.
type API interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Me(ctx context.Context) (*User, error)
}

// UserRequest is the create/update payload for a user.
type UserRequest struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	PinCode  string `json:"pin_code,omitempty"`
	IsActive bool   `json:"is_active"`
}

// UsersAPI defines the administrative user management operations.
type UsersAPI interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, req UserRequest) (*User, error)
	Update(ctx context.Context, id int64, req UserRequest) (*User, error)
	UpdatePin(ctx context.Context, id int64, pin string) error
	Delete(ctx context.Context, id int64) error
}
