package leave

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether the status can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// LeaveRecord is one leave request. ManagerID is snapshotted at submission
// and is the only approver besides admins, even if the employee is later
// reassigned.
type LeaveRecord struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Days       float64   `json:"days"`
	Reason     string    `json:"reason"`
	Status     Status    `json:"status"`
	ManagerID  string    `json:"manager_id"`

	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ManagerComments *string    `json:"manager_comments,omitempty"`
	RejectedBy      *string    `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined for responses
	EmployeeName *string `json:"employee_name,omitempty"`
	TeamName     *string `json:"team_name,omitempty"`
}

// Balance is the per-employee yearly ledger row for one leave type.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveType   string
	Year        int
	YearlyQuota float64
	UsedDays    float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MonthBalance is one month of the derived accrual timeline.
type MonthBalance struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Accrued   float64 `json:"accrued"`
	Rollover  float64 `json:"rollover"`
	Available float64 `json:"available"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
	Note      string  `json:"note,omitempty"`
}

// TypeBalance is the derived balance for one leave type up to the
// reference month.
type TypeBalance struct {
	LeaveType       string         `json:"leave_type"`
	MonthlyQuota    float64        `json:"monthly_quota"`
	YearlyQuota     float64        `json:"yearly_quota"`
	YearlyUsed      float64        `json:"yearly_used"`
	YearlyRemaining float64        `json:"yearly_remaining"`
	Remaining       float64        `json:"remaining"`
	Months          []MonthBalance `json:"months"`
}
