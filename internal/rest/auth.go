package rest

import (
	"context"
	"fmt"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/auth"
)

var _ auth.API = (*AuthService)(nil)

// AuthService implements auth.API against the backend /auth endpoints.
type AuthService struct {
	c *Client
}

// NewAuthService returns an AuthService using the given client.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// Login exchanges credentials for a bearer token. The caller decides when to
// attach the token to the client; this keeps session teardown in one place.
func (s *AuthService) Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	var result auth.LoginResult
	if err := s.c.post(ctx, "/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the identity behind the current bearer token.
func (s *AuthService) Me(ctx context.Context) (*auth.User, error) {
	var user auth.User
	if err := s.c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ auth.UsersAPI = (*UserService)(nil)

// UserService implements auth.UsersAPI (administrative user management).
type UserService struct {
	c *Client
}

// NewUserService returns a UserService using the given client.
func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

func (s *UserService) List(ctx context.Context) ([]auth.User, error) {
	var users []auth.User
	if err := s.c.get(ctx, apiV1+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, req auth.UserRequest) (*auth.User, error) {
	var user auth.User
	if err := s.c.post(ctx, apiV1+"/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, req auth.UserRequest) (*auth.User, error) {
	var user auth.User
	if err := s.c.put(ctx, fmt.Sprintf("%s/users/%d", apiV1, id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdatePin(ctx context.Context, id int64, pin string) error {
	body := struct {
		PinCode string `json:"pin_code"`
	}{PinCode: pin}
	return s.c.put(ctx, fmt.Sprintf("%s/users/%d/pin", apiV1, id), body, nil)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/users/%d", apiV1, id))
}
