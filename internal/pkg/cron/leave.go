package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/attendance"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
)

// LeaveJobs materializes attendance rows for employees on approved leave.
type LeaveJobs struct {
	leaveRepo      leave.RecordRepository
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
	now            func() time.Time
}

func NewLeaveJobs(
	leaveRepo leave.RecordRepository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
) *LeaveJobs {
	return &LeaveJobs{
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	// Hourly and idempotent: the unique (employee_id, date) constraint makes
	// re-runs no-ops, so a late server start still fills today's rows.
	scheduler.AddJob("materialize_leave_attendance", 1*time.Hour, j.MaterializeLeaveAttendance)
}

// MaterializeLeaveAttendance inserts an on-leave attendance row for every
// employee whose approved leave covers today. Per-employee failures are
// logged and skipped.
func (j *LeaveJobs) MaterializeLeaveAttendance(ctx context.Context) error {
	today := j.today()

	records, err := j.leaveRepo.ListApprovedCovering(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list approved leaves covering today: %w", err)
	}

	if len(records) == 0 {
		slog.Debug("Cron: No approved leaves covering today")
		return nil
	}

	created := 0
	for _, record := range records {
		emp, err := j.employeeRepo.GetByID(ctx, record.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				continue
			}
			slog.Error("Cron: Failed to load employee for leave record",
				"leave_id", record.ID,
				"employee_id", record.EmployeeID,
				"error", err)
			continue
		}

		leaveType := record.LeaveType
		row := attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       today,
			Status:     attendance.StatusOnLeave,
			LeaveType:  &leaveType,
			TeamName:   &emp.TeamName,
		}

		if _, err := j.attendanceRepo.Create(ctx, row); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				// Row already exists for today, nothing to do.
				continue
			}
			slog.Error("Cron: Failed to materialize on-leave attendance",
				"leave_id", record.ID,
				"employee_id", emp.ID,
				"error", err)
			continue
		}
		created++
	}

	slog.Info("Cron: Materialized on-leave attendance", "count", created, "date", today.Format("2006-01-02"))
	return nil
}

func (j *LeaveJobs) today() time.Time {
	now := j.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
