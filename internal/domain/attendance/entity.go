package attendance

import (
	"time"
)

const (
	StatusPresent    = "present"
	StatusLate       = "late"
	StatusLeftEarly  = "left_early"
	StatusLeftOnTime = "left_on_time"
	StatusOvertime   = "overtime"
	StatusOnLeave    = "on-leave"
)

// Attendance is one employee-day record. The (employee_id, date) pair is
// unique at the storage level.
type Attendance struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       time.Time  `json:"date"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Status     string     `json:"status"`
	LeaveType  *string    `json:"leave_type,omitempty"`
	TeamName   *string    `json:"team_name,omitempty"`

	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckInPhotoURL   *string  `json:"check_in_photo_url,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	CheckOutPhotoURL  *string  `json:"check_out_photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined for responses
	EmployeeName *string `json:"employee_name,omitempty"`
}
