package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrCrossMonthRequest    = errors.New("leave request must fall within a single calendar month")
	ErrBeforeJoiningMonth   = errors.New("leave cannot start in or before the joining month")
	ErrNoWorkingDays        = errors.New("leave range contains no working days")
	ErrUnknownLeaveType     = errors.New("leave type is not configured")
	ErrNoReportingManager   = errors.New("employee has no reporting manager")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrNotAuthorizedManager = errors.New("not authorized to act on this leave request")
	ErrStartDatePassed      = errors.New("leave start date has already passed")
	ErrStartBeforeJoining   = errors.New("leave starts before the employee joining date")
	ErrOverlappingLeave     = errors.New("an approved leave already covers part of this range")
	ErrNotRequestOwner      = errors.New("only the requesting employee can cancel this leave")
)

// InsufficientBalanceError carries the numeric breakdown shown to the
// employee when a request exceeds the current month balance.
type InsufficientBalanceError struct {
	LeaveType string
	Requested float64
	Accrued   float64
	Rollover  float64
	Used      float64
	Remaining float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %.1f, remaining %.1f",
		e.LeaveType, e.Requested, e.Remaining)
}

// Details returns the breakdown for the error response body.
func (e *InsufficientBalanceError) Details() map[string]string {
	return map[string]string{
		"leave_type": e.LeaveType,
		"requested":  fmt.Sprintf("%.1f", e.Requested),
		"accrued":    fmt.Sprintf("%.1f", e.Accrued),
		"rollover":   fmt.Sprintf("%.1f", e.Rollover),
		"used":       fmt.Sprintf("%.1f", e.Used),
		"remaining":  fmt.Sprintf("%.1f", e.Remaining),
	}
}
