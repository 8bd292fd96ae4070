package rest

import (
	"context"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/shift"
)

var _ shift.API = (*ManagementService)(nil)

// ManagementService implements shift.API against the backend /management
// endpoints.
type ManagementService struct {
	c *Client
}

// NewManagementService returns a ManagementService using the given client.
func NewManagementService(c *Client) *ManagementService {
	return &ManagementService{c: c}
}

func (s *ManagementService) Status(ctx context.Context) (*shift.DayStatus, error) {
	var status shift.DayStatus
	if err := s.c.get(ctx, apiV1+"/management/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *ManagementService) StartDay(ctx context.Context, userID int64) (*shift.DayStatus, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{UserID: userID}

	var status shift.DayStatus
	if err := s.c.post(ctx, apiV1+"/management/start-day", body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// EndDay closes the work period. The backend finalizes and returns the
// day's report snapshot.
func (s *ManagementService) EndDay(ctx context.Context, userID int64) (*finance.DailyReport, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{UserID: userID}

	var payload struct {
		Report finance.DailyReport `json:"report"`
	}
	if err := s.c.post(ctx, apiV1+"/management/end-day", body, &payload); err != nil {
		return nil, err
	}
	return &payload.Report, nil
}
