package employee

import (
	"time"
)

type Employee struct {
	ID                 string
	FullName           string
	Email              string
	PasswordHash       string
	TeamName           string
	Position           *string
	Level              Level
	ReportingManagerID *string
	JoiningDate        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

type Level string

const (
	LevelAdmin    Level = "admin"
	LevelManager  Level = "manager"
	LevelEmployee Level = "employee"
)

// IsAdmin reports whether the employee can act on any pending leave request.
func (e Employee) IsAdmin() bool {
	return e.Level == LevelAdmin
}
