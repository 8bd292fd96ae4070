package rest

import (
	"context"
	"fmt"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/table"
)

var _ table.API = (*TableService)(nil)

// TableService implements table.API against the backend /tables endpoints.
type TableService struct {
	c *Client
}

// NewTableService returns a TableService using the given client.
func NewTableService(c *Client) *TableService {
	return &TableService{c: c}
}

func (s *TableService) List(ctx context.Context) ([]table.Table, error) {
	var tables []table.Table
	if err := s.c.get(ctx, apiV1+"/tables", &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *TableService) Create(ctx context.Context, req table.Request) (*table.Table, error) {
	var t table.Table
	if err := s.c.post(ctx, apiV1+"/tables", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TableService) Update(ctx context.Context, id int64, req table.Request) (*table.Table, error) {
	var t table.Table
	if err := s.c.put(ctx, fmt.Sprintf("%s/tables/%d", apiV1, id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TableService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("%s/tables/%d", apiV1, id))
}
