package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID, leaveType string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, yearly_quota, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.YearlyQuota, &b.UsedDays,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrLeaveNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, yearly_quota, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year, &b.YearlyQuota, &b.UsedDays,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return balances, nil
}

// AddUsage upserts the yearly ledger row and adds days to used_days. Runs
// inside the approval transaction via GetQuerier.
func (r *leaveBalanceRepositoryImpl) AddUsage(ctx context.Context, employeeID, leaveType string, year int, yearlyQuota, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, year, yearly_quota, used_days, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type, year)
		DO UPDATE SET used_days = leave_balances.used_days + EXCLUDED.used_days,
					  yearly_quota = EXCLUDED.yearly_quota,
					  updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, employeeID, leaveType, year, yearlyQuota, days); err != nil {
		return fmt.Errorf("failed to add leave usage: %w", err)
	}
	return nil
}
