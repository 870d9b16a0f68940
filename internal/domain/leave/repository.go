package leave

import (
	"context"
	"time"
)

// RecordRepository - interface for the leave_records table.
type RecordRepository interface {
	Create(ctx context.Context, record LeaveRecord) (LeaveRecord, error)
	GetByID(ctx context.Context, id string) (LeaveRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]LeaveRecord, int64, error)
	GetByEmployeeID(ctx context.Context, employeeID string, filter RecordFilter) ([]LeaveRecord, int64, error)
	GetPendingByManagerID(ctx context.Context, managerID string, limit int) ([]LeaveRecord, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, actorID *string, comment *string) error
	HasApprovedOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) (LeaveRecord, error)
	ListApprovedCovering(ctx context.Context, date time.Time) ([]LeaveRecord, error)
	UsageByMonth(ctx context.Context, employeeID string, year int) (map[string]map[int]float64, error)
}

// BalanceRepository - interface for the leave_balances yearly ledger.
type BalanceRepository interface {
	Get(ctx context.Context, employeeID, leaveType string, year int) (Balance, error)
	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]Balance, error)
	// AddUsage upserts the ledger row and adds days to used_days.
	AddUsage(ctx context.Context, employeeID, leaveType string, year int, yearlyQuota, days float64) error
}
