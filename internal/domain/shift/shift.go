// Package shift models the operational day (work period) bounded by explicit
// start and end actions. All orders and expenses are scoped to the open day.
package shift

import (
	"context"
	"time"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/finance"
)

// DayStatus is the backend's view of the current work period.
type DayStatus struct {
	IsDayOpen bool       `json:"is_day_open"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

// API defines the backend day management operations. EndDay finalizes and
// returns the day's report snapshot.
type API interface {
	Status(ctx context.Context) (*DayStatus, error)
	StartDay(ctx context.Context, userID int64) (*DayStatus, error)
	EndDay(ctx context.Context, userID int64) (*finance.DailyReport, error)
}
