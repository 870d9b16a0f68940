package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/database"
)

type leaveRecordRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRecordRepository(db *database.DB) leave.RecordRepository {
	return &leaveRecordRepositoryImpl{db: db}
}

const leaveRecordColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.days,
	lr.reason, lr.status, lr.manager_id, lr.approved_by, lr.approved_at,
	lr.manager_comments, lr.rejected_by, lr.rejected_at, lr.rejection_reason,
	lr.cancelled_at, lr.created_at, lr.updated_at
`

func scanLeaveRecord(row pgx.Row) (leave.LeaveRecord, error) {
	var lr leave.LeaveRecord
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Days,
		&lr.Reason, &lr.Status, &lr.ManagerID, &lr.ApprovedBy, &lr.ApprovedAt,
		&lr.ManagerComments, &lr.RejectedBy, &lr.RejectedAt, &lr.RejectionReason,
		&lr.CancelledAt, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func (r *leaveRecordRepositoryImpl) Create(ctx context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (
			id, employee_id, leave_type, start_date, end_date, days,
			reason, status, manager_id, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.LeaveType, record.StartDate, record.EndDate, record.Days,
		record.Reason, record.Status, record.ManagerID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	return record, nil
}

func (r *leaveRecordRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRecordColumns + `,
			   e.full_name AS employee_name,
			   e.team_name AS team_name
		FROM leave_records lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var lr leave.LeaveRecord
	var employeeName, teamName string
	err := q.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Days,
		&lr.Reason, &lr.Status, &lr.ManagerID, &lr.ApprovedBy, &lr.ApprovedAt,
		&lr.ManagerComments, &lr.RejectedBy, &lr.RejectedAt, &lr.RejectionReason,
		&lr.CancelledAt, &lr.CreatedAt, &lr.UpdatedAt,
		&employeeName, &teamName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRecord{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRecord{}, err
	}

	lr.EmployeeName = &employeeName
	lr.TeamName = &teamName

	return lr, nil
}

func (r *leaveRecordRepositoryImpl) List(ctx context.Context, filter leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM leave_records lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE e.deleted_at IS NULL
	`

	args := []interface{}{}
	argIdx := 1
	whereClauses := []string{}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.TeamName != nil && *filter.TeamName != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("e.team_name = $%d", argIdx))
		args = append(args, *filter.TeamName)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	if len(whereClauses) > 0 {
		baseQuery += " AND " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave records: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := `
		SELECT ` + leaveRecordColumns + `,
			   e.full_name AS employee_name,
			   e.team_name AS team_name
	` + baseQuery + fmt.Sprintf(`
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	records, err := collectLeaveRecordsWithNames(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *leaveRecordRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	employeeFilter := filter
	employeeFilter.EmployeeID = &employeeID
	return r.List(ctx, employeeFilter)
}

func (r *leaveRecordRepositoryImpl) GetPendingByManagerID(ctx context.Context, managerID string, limit int) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(*)
		FROM leave_records lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.manager_id = $1 AND lr.status = 'pending' AND e.deleted_at IS NULL
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, managerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending leave records: %w", err)
	}

	if limit == 0 {
		limit = 5
	}

	query := `
		SELECT ` + leaveRecordColumns + `,
			   e.full_name AS employee_name,
			   e.team_name AS team_name
		FROM leave_records lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.manager_id = $1 AND lr.status = 'pending' AND e.deleted_at IS NULL
		ORDER BY lr.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, managerID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query pending leave records: %w", err)
	}
	defer rows.Close()

	records, err := collectLeaveRecordsWithNames(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func collectLeaveRecordsWithNames(rows pgx.Rows) ([]leave.LeaveRecord, error) {
	var records []leave.LeaveRecord
	for rows.Next() {
		var lr leave.LeaveRecord
		var employeeName, teamName string

		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Days,
			&lr.Reason, &lr.Status, &lr.ManagerID, &lr.ApprovedBy, &lr.ApprovedAt,
			&lr.ManagerComments, &lr.RejectedBy, &lr.RejectedAt, &lr.RejectionReason,
			&lr.CancelledAt, &lr.CreatedAt, &lr.UpdatedAt,
			&employeeName, &teamName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}

		lr.EmployeeName = &employeeName
		lr.TeamName = &teamName
		records = append(records, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

func (r *leaveRecordRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, actorID *string, comment *string) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{"status = $1", "updated_at = $2"}
	args := []interface{}{status, time.Now()}
	argIdx := 3

	switch status {
	case leave.StatusApproved:
		updates = append(updates,
			fmt.Sprintf("approved_by = $%d", argIdx),
			fmt.Sprintf("approved_at = $%d", argIdx+1),
			fmt.Sprintf("manager_comments = $%d", argIdx+2),
		)
		args = append(args, actorID, time.Now(), comment)
		argIdx += 3
	case leave.StatusRejected:
		updates = append(updates,
			fmt.Sprintf("rejected_by = $%d", argIdx),
			fmt.Sprintf("rejected_at = $%d", argIdx+1),
			fmt.Sprintf("rejection_reason = $%d", argIdx+2),
		)
		args = append(args, actorID, time.Now(), comment)
		argIdx += 3
	case leave.StatusCancelled:
		updates = append(updates, fmt.Sprintf("cancelled_at = $%d", argIdx))
		args = append(args, time.Now())
		argIdx++
	}

	args = append(args, id)
	sql := "UPDATE leave_records SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update status for leave record with id %s: %w", id, err)
	}
	return nil
}

func (r *leaveRecordRepositoryImpl) HasApprovedOverlap(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_records
			WHERE employee_id = $1
			AND id::text <> $2
			AND status = 'approved'
			AND (
				(start_date <= $3 AND end_date >= $3) OR
				(start_date <= $4 AND end_date >= $4) OR
				(start_date >= $3 AND end_date <= $4)
			)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, excludeID, startDate, endDate).Scan(&exists)

	return exists, err
}

func (r *leaveRecordRepositoryImpl) GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRecordColumns + `
		FROM leave_records lr
		WHERE lr.employee_id = $1
		AND lr.status = 'approved'
		AND lr.start_date <= $2 AND lr.end_date >= $2
		LIMIT 1
	`

	lr, err := scanLeaveRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRecord{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRecord{}, err
	}
	return lr, nil
}

func (r *leaveRecordRepositoryImpl) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRecordColumns + `
		FROM leave_records lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'approved'
		AND lr.start_date <= $1 AND lr.end_date >= $1
		AND e.deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		lr, err := scanLeaveRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

func (r *leaveRecordRepositoryImpl) UsageByMonth(ctx context.Context, employeeID string, year int) (map[string]map[int]float64, error) {
	q := GetQuerier(ctx, r.db)

	// Requests never span months, so the start month owns the whole range.
	query := `
		SELECT leave_type, EXTRACT(MONTH FROM start_date)::int AS month, SUM(days)
		FROM leave_records
		WHERE employee_id = $1
		AND status = 'approved'
		AND EXTRACT(YEAR FROM start_date) = $2
		GROUP BY leave_type, month
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[string]map[int]float64)
	for rows.Next() {
		var leaveType string
		var month int
		var days float64
		if err := rows.Scan(&leaveType, &month, &days); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		if usage[leaveType] == nil {
			usage[leaveType] = make(map[int]float64)
		}
		usage[leaveType][month] = days
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return usage, nil
}
