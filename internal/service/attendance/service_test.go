package attendance

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
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetByTeam(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(_ context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey(record.EmployeeID, record.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	record.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[key] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	record, ok := f.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Attendance) error {
	f.records[dayKey(record.EmployeeID, record.Date)] = record
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.RecordFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeID(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range f.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

type fakeLeaveRepo struct {
	covering *leave.LeaveRecord
}

func (f *fakeLeaveRepo) Create(_ context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	return record, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, _ string) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) List(_ context.Context, _ leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) GetByEmployeeID(_ context.Context, _ string, _ leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) GetPendingByManagerID(_ context.Context, _ string, _ int) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, _ string, _ leave.Status, _ *string, _ *string) error {
	return nil
}

func (f *fakeLeaveRepo) HasApprovedOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) GetApprovedCovering(_ context.Context, _ string, _ time.Time) (leave.LeaveRecord, error) {
	if f.covering == nil {
		return leave.LeaveRecord{}, leave.ErrLeaveNotFound
	}
	return *f.covering, nil
}

func (f *fakeLeaveRepo) ListApprovedCovering(_ context.Context, _ time.Time) ([]leave.LeaveRecord, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) UsageByMonth(_ context.Context, _ string, _ int) (map[string]map[int]float64, error) {
	return nil, nil
}

type fakeSettingsProvider struct {
	cfg settings.LeaveSettings
}

func (f *fakeSettingsProvider) Get(_ context.Context) (settings.LeaveSettings, error) {
	return f.cfg, nil
}

type attendanceFixture struct {
	svc         *Service
	attendances *fakeAttendanceRepo
	leaves      *fakeLeaveRepo
}

// 2026-08-03 is a Monday.
func workday(hour, minute int) time.Time {
	return time.Date(2026, time.August, 3, hour, minute, 0, 0, time.UTC)
}

func newAttendanceFixture(now time.Time) *attendanceFixture {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:          "emp-1",
			FullName:    "Dina Putri",
			TeamName:    "Engineering",
			Level:       employee.LevelEmployee,
			JoiningDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
	}}
	attendances := newFakeAttendanceRepo()
	leaves := &fakeLeaveRepo{}
	provider := &fakeSettingsProvider{cfg: settings.Defaults()}

	svc := NewAttendanceService(attendances, employees, leaves, provider)
	svc.now = func() time.Time { return now }

	return &attendanceFixture{svc: svc, attendances: attendances, leaves: leaves}
}

func TestAttendanceService_CheckIn_Present(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(9, 10))

	record, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	require.NotNil(t, record.CheckIn)
	assert.Equal(t, workday(9, 10), *record.CheckIn)
	require.NotNil(t, record.TeamName)
	assert.Equal(t, "Engineering", *record.TeamName)
}

func TestAttendanceService_CheckIn_LateAfterThreshold(t *testing.T) {
	ctx := context.Background()
	// Shift starts 09:00 with a 15 minute grace window.
	fx := newAttendanceFixture(workday(9, 30))

	record, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, record.Status)
}

func TestAttendanceService_CheckIn_ExactlyAtGraceBoundary(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(9, 15))

	record, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, record.Status)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(9, 0))

	_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_OnApprovedLeave(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(9, 0))
	fx.leaves.covering = &leave.LeaveRecord{LeaveType: "Casual Leave", Status: leave.StatusApproved}

	_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})

	var onLeaveErr *attendance.OnLeaveError
	require.ErrorAs(t, err, &onLeaveErr)
	assert.Equal(t, "Casual Leave", onLeaveErr.LeaveType)
}

func TestAttendanceService_CheckIn_NonWorkingDay(t *testing.T) {
	ctx := context.Background()
	// 2026-08-08 is a Saturday.
	fx := newAttendanceFixture(time.Date(2026, time.August, 8, 9, 0, 0, 0, time.UTC))

	_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrNotWorkingDay)
}

func TestAttendanceService_CheckOut_Decisions(t *testing.T) {
	tests := []struct {
		name       string
		checkOutAt time.Time
		want       string
	}{
		{"before shift end", workday(16, 0), attendance.StatusLeftEarly},
		{"at shift end", workday(17, 0), attendance.StatusLeftOnTime},
		{"within overtime threshold", workday(17, 30), attendance.StatusLeftOnTime},
		{"past overtime threshold", workday(18, 30), attendance.StatusOvertime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			fx := newAttendanceFixture(workday(9, 0))

			_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
			require.NoError(t, err)

			fx.svc.now = func() time.Time { return tt.checkOutAt }
			record, err := fx.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Status)
			require.NotNil(t, record.CheckOut)
			assert.Equal(t, tt.checkOutAt, *record.CheckOut)
		})
	}
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(17, 0))

	_, err := fx.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(9, 0))

	_, err := fx.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	fx.svc.now = func() time.Time { return workday(17, 10) }
	_, err = fx.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = fx.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_GetEmployeeHistory_Summaries(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(workday(12, 0))

	seed := func(daysAgo int, status string) {
		day := time.Date(2026, time.August, 3-daysAgo, 0, 0, 0, 0, time.UTC)
		_, err := fx.attendances.Create(ctx, attendance.Attendance{
			EmployeeID: "emp-1",
			Date:       day,
			Status:     status,
		})
		require.NoError(t, err)
	}

	seed(1, attendance.StatusPresent)
	seed(2, attendance.StatusLate)
	seed(3, attendance.StatusOnLeave)
	seed(10, attendance.StatusLeftOnTime)
	seed(12, attendance.StatusOvertime)

	history, err := fx.svc.GetEmployeeHistory(ctx, "emp-1")

	require.NoError(t, err)
	assert.Equal(t, 5, history.Monthly.Days)
	assert.Equal(t, 2, history.Monthly.Present)
	assert.Equal(t, 1, history.Monthly.Late)
	assert.Equal(t, 1, history.Monthly.OnLeave)
	assert.Equal(t, 1, history.Monthly.Overtime)

	// Only the last seven days count toward the weekly summary.
	assert.Equal(t, 3, history.Weekly.Days)
	assert.Equal(t, 1, history.Weekly.Present)
}
