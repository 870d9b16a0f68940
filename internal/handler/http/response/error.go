package response

import (
	"errors"
	"net/http"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/attendance"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/auth"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/notification"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var insufficientErr *leave.InsufficientBalanceError
	if errors.As(err, &insufficientErr) {
		BadRequest(w, "Insufficient leave balance", insufficientErr.Details())
		return
	}

	var onLeaveErr *attendance.OnLeaveError
	if errors.As(err, &onLeaveErr) {
		Conflict(w, onLeaveErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Reporting manager not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrCrossMonthRequest),
		errors.Is(err, leave.ErrBeforeJoiningMonth),
		errors.Is(err, leave.ErrNoWorkingDays),
		errors.Is(err, leave.ErrUnknownLeaveType),
		errors.Is(err, leave.ErrNoReportingManager),
		errors.Is(err, leave.ErrStartDatePassed),
		errors.Is(err, leave.ErrStartBeforeJoining):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrNotAuthorizedManager),
		errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrNotWorkingDay):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Leave settings not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
