package leave

import (
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	Reason     string  `json:"reason"`
	ManagerID  *string `json:"manager_id,omitempty"` // overrides the reporting manager
}

func (r CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "Leave type is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Start date must be a valid YYYY-MM-DD date"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "End date must be a valid YYYY-MM-DD date"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveLeaveRequest struct {
	Comments string `json:"comments"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

// RecordFilter narrows leave listings.
type RecordFilter struct {
	EmployeeID *string
	TeamName   *string
	Status     *string
	StartDate  *time.Time
	EndDate    *time.Time
	Year       *int
	Page       int
	Limit      int
}

// ManagerInbox is the pending-approvals view for one manager.
type ManagerInbox struct {
	PendingCount int64         `json:"pending_count"`
	Latest       []LeaveRecord `json:"latest"`
}

// EmployeeLeaveInfo is the employee leave profile response.
type EmployeeLeaveInfo struct {
	EmployeeID string                 `json:"employee_id"`
	Balances   map[string]TypeBalance `json:"balances"`
	Pending    []LeaveRecord          `json:"pending"`
	History    []LeaveRecord          `json:"history"`
}
