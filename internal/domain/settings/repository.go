package settings

import (
	"context"
)

// Repository - interface for the leave_settings singleton row.
type Repository interface {
	Get(ctx context.Context) (LeaveSettings, error)
	Create(ctx context.Context, s LeaveSettings) (LeaveSettings, error)
	Update(ctx context.Context, s LeaveSettings) error
}
