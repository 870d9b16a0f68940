package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	employees employee.Repository
}

func NewEmployeeService(employees employee.Repository) *Service {
	return &Service{employees: employees}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if req.ReportingManagerID != nil && *req.ReportingManagerID != "" {
		if _, err := s.employees.GetByID(ctx, *req.ReportingManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.Employee{}, employee.ErrManagerNotFound
			}
			return employee.Employee{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to parse joining date: %w", err)
	}

	emp := employee.Employee{
		ID:                 id.String(),
		FullName:           req.FullName,
		Email:              req.Email,
		PasswordHash:       string(hash),
		TeamName:           req.TeamName,
		Position:           req.Position,
		Level:              employee.Level(req.Level),
		ReportingManagerID: req.ReportingManagerID,
		JoiningDate:        joiningDate,
	}

	return s.employees.Create(ctx, emp)
}

func (s *Service) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employees.GetActive(ctx)
}

func (s *Service) GetByTeam(ctx context.Context, teamName string) ([]employee.Employee, error) {
	return s.employees.GetByTeam(ctx, teamName)
}

func (s *Service) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.TeamName != nil {
		emp.TeamName = *req.TeamName
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.Level != nil {
		emp.Level = employee.Level(*req.Level)
	}
	if req.ReportingManagerID != nil {
		if *req.ReportingManagerID != "" {
			if _, err := s.employees.GetByID(ctx, *req.ReportingManagerID); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return employee.Employee{}, employee.ErrManagerNotFound
				}
				return employee.Employee{}, err
			}
			emp.ReportingManagerID = req.ReportingManagerID
		} else {
			emp.ReportingManagerID = nil
		}
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.employees.SoftDelete(ctx, id)
}
