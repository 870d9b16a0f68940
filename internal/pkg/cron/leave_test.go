package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/attendance"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
)

type stubLeaveRepo struct {
	covering []leave.LeaveRecord
}

func (s *stubLeaveRepo) Create(_ context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	return record, nil
}

func (s *stubLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (s *stubLeaveRepo) List(_ context.Context, _ leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubLeaveRepo) GetByEmployeeID(_ context.Context, _ string, _ leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubLeaveRepo) GetPendingByManagerID(_ context.Context, _ string, _ int) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubLeaveRepo) UpdateStatus(_ context.Context, _ string, _ leave.Status, _ *string, _ *string) error {
	return nil
}

func (s *stubLeaveRepo) HasApprovedOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return false, nil
}

func (s *stubLeaveRepo) GetApprovedCovering(_ context.Context, _ string, _ time.Time) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (s *stubLeaveRepo) ListApprovedCovering(_ context.Context, _ time.Time) ([]leave.LeaveRecord, error) {
	return s.covering, nil
}

func (s *stubLeaveRepo) UsageByMonth(_ context.Context, _ string, _ int) (map[string]map[int]float64, error) {
	return nil, nil
}

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) GetByTeam(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (s *stubEmployeeRepo) SoftDelete(_ context.Context, _ string) error { return nil }

type stubAttendanceRepo struct {
	existing map[string]bool
	created  []attendance.Attendance
	nextID   int
}

func (s *stubAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	key := record.EmployeeID + "|" + record.Date.Format("2006-01-02")
	if s.existing[key] {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	if s.existing == nil {
		s.existing = make(map[string]bool)
	}
	s.existing[key] = true
	s.nextID++
	record.ID = fmt.Sprintf("att-%d", s.nextID)
	s.created = append(s.created, record)
	return record, nil
}

func (s *stubAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }

func (s *stubAttendanceRepo) List(_ context.Context, _ attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) GetByEmployeeID(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func newLeaveJobsFixture(covering []leave.LeaveRecord, employees map[string]employee.Employee) (*LeaveJobs, *stubAttendanceRepo) {
	attendances := &stubAttendanceRepo{existing: make(map[string]bool)}
	jobs := NewLeaveJobs(&stubLeaveRepo{covering: covering}, &stubEmployeeRepo{employees: employees}, attendances)
	jobs.now = func() time.Time {
		return time.Date(2026, time.August, 3, 2, 15, 0, 0, time.UTC)
	}
	return jobs, attendances
}

func TestMaterializeLeaveAttendance_CreatesOnLeaveRows(t *testing.T) {
	covering := []leave.LeaveRecord{
		{ID: "rec-1", EmployeeID: "emp-1", LeaveType: "Casual Leave", Status: leave.StatusApproved},
		{ID: "rec-2", EmployeeID: "emp-2", LeaveType: "Sick Leave", Status: leave.StatusApproved},
	}
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", TeamName: "Engineering"},
		"emp-2": {ID: "emp-2", TeamName: "Design"},
	}
	jobs, attendances := newLeaveJobsFixture(covering, employees)

	require.NoError(t, jobs.MaterializeLeaveAttendance(context.Background()))

	require.Len(t, attendances.created, 2)
	row := attendances.created[0]
	assert.Equal(t, attendance.StatusOnLeave, row.Status)
	assert.Equal(t, time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), row.Date)
	require.NotNil(t, row.LeaveType)
	assert.Equal(t, "Casual Leave", *row.LeaveType)
	require.NotNil(t, row.TeamName)
	assert.Equal(t, "Engineering", *row.TeamName)
}

func TestMaterializeLeaveAttendance_Idempotent(t *testing.T) {
	covering := []leave.LeaveRecord{
		{ID: "rec-1", EmployeeID: "emp-1", LeaveType: "Casual Leave", Status: leave.StatusApproved},
	}
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", TeamName: "Engineering"},
	}
	jobs, attendances := newLeaveJobsFixture(covering, employees)

	require.NoError(t, jobs.MaterializeLeaveAttendance(context.Background()))
	require.NoError(t, jobs.MaterializeLeaveAttendance(context.Background()))

	// The second run hits the existing row and creates nothing new.
	assert.Len(t, attendances.created, 1)
}

func TestMaterializeLeaveAttendance_SkipsMissingEmployees(t *testing.T) {
	covering := []leave.LeaveRecord{
		{ID: "rec-1", EmployeeID: "ghost", LeaveType: "Casual Leave", Status: leave.StatusApproved},
		{ID: "rec-2", EmployeeID: "emp-1", LeaveType: "Sick Leave", Status: leave.StatusApproved},
	}
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", TeamName: "Engineering"},
	}
	jobs, attendances := newLeaveJobsFixture(covering, employees)

	require.NoError(t, jobs.MaterializeLeaveAttendance(context.Background()))

	// The deleted employee is skipped without failing the run.
	require.Len(t, attendances.created, 1)
	assert.Equal(t, "emp-1", attendances.created[0].EmployeeID)
}

func TestMaterializeLeaveAttendance_NoApprovedLeaves(t *testing.T) {
	jobs, attendances := newLeaveJobsFixture(nil, nil)

	require.NoError(t, jobs.MaterializeLeaveAttendance(context.Background()))
	assert.Empty(t, attendances.created)
}
