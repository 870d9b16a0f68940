package settings

import (
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest is a partial update. Nil fields keep the stored
// value, empty lists keep the stored list, and maps are merged key by key.
type UpdateSettingsRequest struct {
	WorkingDays              []int                 `json:"working_days,omitempty"`
	WorkingHours             *string               `json:"working_hours,omitempty"`
	LateThresholdMinutes     *int                  `json:"late_threshold_minutes,omitempty"`
	OvertimeThresholdMinutes *int                  `json:"overtime_threshold_minutes,omitempty"`
	LeaveTypes               []string              `json:"leave_types,omitempty"`
	CustomLeaves             []string              `json:"custom_leaves,omitempty"`
	SelectedLeaves           []string              `json:"selected_leaves,omitempty"`
	LeaveStatus              map[string]bool       `json:"leave_status,omitempty"`
	LeaveQuotas              map[string]LeaveQuota `json:"leave_quotas,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, day := range r.WorkingDays {
		if day < 1 || day > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "Working days must be ISO weekday numbers between 1 and 7",
			})
			break
		}
	}

	if r.WorkingHours != nil {
		if _, err := ParseWorkingHours(*r.WorkingHours); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "working_hours",
				Message: "Working hours must be a valid HH:MM-HH:MM window",
			})
		}
	}

	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "Late threshold must not be negative",
		})
	}

	if r.OvertimeThresholdMinutes != nil && *r.OvertimeThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_threshold_minutes",
			Message: "Overtime threshold must not be negative",
		})
	}

	for name, quota := range r.LeaveQuotas {
		if quota.Monthly < 0 || quota.Yearly < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_quotas." + name,
				Message: "Quotas must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
