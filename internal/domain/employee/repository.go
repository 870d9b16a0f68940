package employee

import (
	"context"
)

// Repository - interface for the employees table. Soft-deleted rows are
// never returned.
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	GetByTeam(ctx context.Context, teamName string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	SoftDelete(ctx context.Context, id string) error
}
