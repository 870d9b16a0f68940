package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.LeaveSettings, error) {
	q := GetQuerier(ctx, r.db)

	// Singleton row: the latest write wins if more than one ever exists.
	query := `
		SELECT id, working_days, working_hours, late_threshold_minutes, overtime_threshold_minutes,
			   leave_types, custom_leaves, selected_leaves, leave_status, leave_quotas,
			   created_at, updated_at
		FROM leave_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s settings.LeaveSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.WorkingDays, &s.WorkingHours, &s.LateThresholdMinutes, &s.OvertimeThresholdMinutes,
		&s.LeaveTypes, &s.CustomLeaves, &s.SelectedLeaves, &s.LeaveStatus, &s.LeaveQuotas,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.LeaveSettings{}, settings.ErrSettingsNotFound
		}
		return settings.LeaveSettings{}, err
	}
	return s, nil
}

func (r *settingsRepositoryImpl) Create(ctx context.Context, s settings.LeaveSettings) (settings.LeaveSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_settings (
			id, working_days, working_hours, late_threshold_minutes, overtime_threshold_minutes,
			leave_types, custom_leaves, selected_leaves, leave_status, leave_quotas,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.WorkingDays, s.WorkingHours, s.LateThresholdMinutes, s.OvertimeThresholdMinutes,
		s.LeaveTypes, s.CustomLeaves, s.SelectedLeaves, s.LeaveStatus, s.LeaveQuotas,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.LeaveSettings{}, fmt.Errorf("failed to create leave settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepositoryImpl) Update(ctx context.Context, s settings.LeaveSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_settings
		SET working_days = $1, working_hours = $2, late_threshold_minutes = $3,
			overtime_threshold_minutes = $4, leave_types = $5, custom_leaves = $6,
			selected_leaves = $7, leave_status = $8, leave_quotas = $9, updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.WorkingDays, s.WorkingHours, s.LateThresholdMinutes,
		s.OvertimeThresholdMinutes, s.LeaveTypes, s.CustomLeaves,
		s.SelectedLeaves, s.LeaveStatus, s.LeaveQuotas, time.Now(), s.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.ErrSettingsNotFound
		}
		return fmt.Errorf("failed to update leave settings with id %s: %w", s.ID, err)
	}
	return nil
}
