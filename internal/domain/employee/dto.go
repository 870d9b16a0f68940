package employee

import (
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	TeamName           string  `json:"team_name"`
	Position           *string `json:"position,omitempty"`
	Level              string  `json:"level"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	JoiningDate        string  `json:"joining_date"` // YYYY-MM-DD
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "A valid email is required"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.TeamName) {
		errs = append(errs, validator.ValidationError{Field: "team_name", Message: "Team name is required"})
	}
	if !validator.IsInSlice(r.Level, []string{string(LevelAdmin), string(LevelManager), string(LevelEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "level", Message: "Level must be admin, manager or employee"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "Joining date must be a valid YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName           *string `json:"full_name,omitempty"`
	Email              *string `json:"email,omitempty"`
	TeamName           *string `json:"team_name,omitempty"`
	Position           *string `json:"position,omitempty"`
	Level              *string `json:"level,omitempty"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
}

// EmployeeResponse omits the password hash.
type EmployeeResponse struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	TeamName           string  `json:"team_name"`
	Position           *string `json:"position,omitempty"`
	Level              string  `json:"level"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	JoiningDate        string  `json:"joining_date"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		FullName:           e.FullName,
		Email:              e.Email,
		TeamName:           e.TeamName,
		Position:           e.Position,
		Level:              string(e.Level),
		ReportingManagerID: e.ReportingManagerID,
		JoiningDate:        e.JoiningDate.Format("2006-01-02"),
	}
}
