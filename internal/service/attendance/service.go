package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/attendance"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
)

// SettingsProvider yields the current working-day and shift policy.
type SettingsProvider interface {
	Get(ctx context.Context) (settings.LeaveSettings, error)
}

type Service struct {
	attendances attendance.Repository
	employees   employee.Repository
	leaves      leave.RecordRepository
	settings    SettingsProvider

	now func() time.Time
}

func NewAttendanceService(
	attendances attendance.Repository,
	employees employee.Repository,
	leaves leave.RecordRepository,
	settingsProvider SettingsProvider,
) *Service {
	return &Service{
		attendances: attendances,
		employees:   employees,
		leaves:      leaves,
		settings:    settingsProvider,
		now:         time.Now,
	}
}

// CheckIn opens today's attendance session. The status is late when the
// check-in lands after shift start plus the configured threshold.
func (s *Service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := s.now()
	today := truncateToDay(now)

	covering, err := s.leaves.GetApprovedCovering(ctx, emp.ID, today)
	if err == nil {
		return attendance.Attendance{}, &attendance.OnLeaveError{LeaveType: covering.LeaveType}
	}
	if !errors.Is(err, leave.ErrLeaveNotFound) {
		return attendance.Attendance{}, fmt.Errorf("failed to check approved leaves: %w", err)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if !isWorkingDay(cfg.WorkingDays, now) {
		return attendance.Attendance{}, attendance.ErrNotWorkingDay
	}

	window, err := settings.ParseWorkingHours(cfg.WorkingHours)
	if err != nil {
		return attendance.Attendance{}, err
	}

	status := attendance.StatusPresent
	lateCutoff := window.Start(now).Add(time.Duration(cfg.LateThresholdMinutes) * time.Minute)
	if now.After(lateCutoff) {
		status = attendance.StatusLate
	}

	checkIn := now
	record := attendance.Attendance{
		EmployeeID:       emp.ID,
		Date:             today,
		CheckIn:          &checkIn,
		Status:           status,
		TeamName:         &emp.TeamName,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInPhotoURL:  req.PhotoURL,
	}

	// The unique (employee_id, date) constraint rejects the duplicate, so
	// two concurrent check-ins cannot both succeed.
	created, err := s.attendances.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return created, nil
}

// CheckOut closes today's open session in place. Leaving after shift end
// plus the overtime threshold is overtime; before shift end is left_early.
func (s *Service) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := s.now()
	today := truncateToDay(now)

	record, err := s.attendances.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, err
	}
	if record.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}
	window, err := settings.ParseWorkingHours(cfg.WorkingHours)
	if err != nil {
		return attendance.Attendance{}, err
	}

	shiftEnd := window.End(now)
	overtimeCutoff := shiftEnd.Add(time.Duration(cfg.OvertimeThresholdMinutes) * time.Minute)

	switch {
	case now.After(overtimeCutoff):
		record.Status = attendance.StatusOvertime
	case now.Before(shiftEnd):
		record.Status = attendance.StatusLeftEarly
	default:
		record.Status = attendance.StatusLeftOnTime
	}

	checkOut := now
	record.CheckOut = &checkOut
	record.CheckOutLatitude = req.Latitude
	record.CheckOutLongitude = req.Longitude
	record.CheckOutPhotoURL = req.PhotoURL

	if err := s.attendances.Update(ctx, record); err != nil {
		return attendance.Attendance{}, err
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	return s.attendances.List(ctx, filter)
}

// GetEmployeeHistory returns the last month of records with weekly and
// monthly summaries.
func (s *Service) GetEmployeeHistory(ctx context.Context, employeeID string) (attendance.EmployeeHistory, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeHistory{}, err
	}

	today := truncateToDay(s.now())
	monthStart := today.AddDate(0, -1, 0)
	weekStart := today.AddDate(0, 0, -6)

	records, err := s.attendances.GetByEmployeeID(ctx, emp.ID, monthStart, today)
	if err != nil {
		return attendance.EmployeeHistory{}, err
	}

	history := attendance.EmployeeHistory{
		EmployeeID: emp.ID,
		Records:    records,
		Monthly:    summarize(records),
	}

	var weekly []attendance.Attendance
	for _, r := range records {
		if !r.Date.Before(weekStart) {
			weekly = append(weekly, r)
		}
	}
	history.Weekly = summarize(weekly)

	return history, nil
}

// GetTeamAttendance lists today's records for one team.
func (s *Service) GetTeamAttendance(ctx context.Context, teamName string) ([]attendance.Attendance, int64, error) {
	today := truncateToDay(s.now())
	return s.attendances.List(ctx, attendance.RecordFilter{
		TeamName: &teamName,
		Date:     &today,
		Limit:    100,
	})
}

func summarize(records []attendance.Attendance) attendance.Summary {
	var sum attendance.Summary
	for _, r := range records {
		sum.Days++
		switch r.Status {
		case attendance.StatusPresent, attendance.StatusLeftOnTime:
			sum.Present++
		case attendance.StatusLate:
			sum.Late++
		case attendance.StatusOnLeave:
			sum.OnLeave++
		case attendance.StatusLeftEarly:
			sum.LeftEarly++
		case attendance.StatusOvertime:
			sum.Overtime++
		}
	}
	return sum
}

func isWorkingDay(workingDays settings.IntList, t time.Time) bool {
	iso := int(t.Weekday())
	if iso == 0 {
		iso = 7
	}
	for _, day := range workingDays {
		if day == iso {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
