package attendance

import (
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PhotoURL   *string  `json:"photo_url,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string   `json:"employee_id"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PhotoURL   *string  `json:"photo_url,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordFilter narrows attendance listings.
type RecordFilter struct {
	EmployeeID *string
	TeamName   *string
	Status     *string
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// Summary aggregates one employee's records over a window.
type Summary struct {
	Days      int `json:"days"`
	Present   int `json:"present"`
	Late      int `json:"late"`
	OnLeave   int `json:"on_leave"`
	LeftEarly int `json:"left_early"`
	Overtime  int `json:"overtime"`
}

// EmployeeHistory is the per-employee attendance view.
type EmployeeHistory struct {
	EmployeeID string       `json:"employee_id"`
	Weekly     Summary      `json:"weekly"`
	Monthly    Summary      `json:"monthly"`
	Records    []Attendance `json:"records"`
}
