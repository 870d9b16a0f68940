package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no open check-in found for today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNotWorkingDay      = errors.New("today is not a working day")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OnLeaveError rejects a check-in on a day covered by an approved leave.
type OnLeaveError struct {
	LeaveType string
}

func (e *OnLeaveError) Error() string {
	return fmt.Sprintf("cannot check in: on approved %s today", e.LeaveType)
}
