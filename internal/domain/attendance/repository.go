package attendance

import (
	"context"
	"time"
)

// Repository - interface for the attendance table. Create returns
// ErrAlreadyCheckedIn when the unique (employee_id, date) constraint fires.
type Repository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	Update(ctx context.Context, record Attendance) error
	List(ctx context.Context, filter RecordFilter) ([]Attendance, int64, error)
	GetByEmployeeID(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
