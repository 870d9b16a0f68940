package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/notification"
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

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
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

type statusUpdate struct {
	id      string
	status  leave.Status
	actorID *string
	comment *string
}

type fakeRecordRepo struct {
	records       map[string]leave.LeaveRecord
	usage         map[string]map[int]float64
	overlap       bool
	nextID        int
	statusUpdates []statusUpdate
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]leave.LeaveRecord)}
}

func (f *fakeRecordRepo) Create(_ context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (leave.LeaveRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return leave.LeaveRecord{}, leave.ErrLeaveNotFound
	}
	return record, nil
}

func (f *fakeRecordRepo) List(_ context.Context, _ leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeRecordRepo) GetByEmployeeID(_ context.Context, employeeID string, filter leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, record := range f.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) GetPendingByManagerID(_ context.Context, managerID string, _ int) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, record := range f.records {
		if record.ManagerID == managerID && record.Status == leave.StatusPending {
			out = append(out, record)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) UpdateStatus(_ context.Context, id string, status leave.Status, actorID *string, comment *string) error {
	record, ok := f.records[id]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	record.Status = status
	f.records[id] = record
	f.statusUpdates = append(f.statusUpdates, statusUpdate{id, status, actorID, comment})
	return nil
}

func (f *fakeRecordRepo) HasApprovedOverlap(_ context.Context, _ string, _, _ time.Time, _ string) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRecordRepo) GetApprovedCovering(_ context.Context, _ string, _ time.Time) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (f *fakeRecordRepo) ListApprovedCovering(_ context.Context, _ time.Time) ([]leave.LeaveRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) UsageByMonth(_ context.Context, _ string, _ int) (map[string]map[int]float64, error) {
	return f.usage, nil
}

type usageCharge struct {
	employeeID  string
	leaveType   string
	year        int
	yearlyQuota float64
	days        float64
}

type fakeBalanceRepo struct {
	charges []usageCharge
}

func (f *fakeBalanceRepo) Get(_ context.Context, _, _ string, _ int) (leave.Balance, error) {
	return leave.Balance{}, nil
}

func (f *fakeBalanceRepo) GetByEmployeeAndYear(_ context.Context, _ string, _ int) ([]leave.Balance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) AddUsage(_ context.Context, employeeID, leaveType string, year int, yearlyQuota, days float64) error {
	f.charges = append(f.charges, usageCharge{employeeID, leaveType, year, yearlyQuota, days})
	return nil
}

type fakeSettingsProvider struct {
	cfg settings.LeaveSettings
}

func (f *fakeSettingsProvider) Get(_ context.Context) (settings.LeaveSettings, error) {
	return f.cfg, nil
}

type fakeNotificationService struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotificationService) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotificationService) GetNotifications(_ context.Context, _ string, _, _ int, _ bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotificationService) GetUnreadCount(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func (f *fakeNotificationService) MarkAsRead(_ context.Context, _ string, _ notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotificationService) MarkAllAsRead(_ context.Context, _ string) error {
	return nil
}

func (f *fakeNotificationService) Stop() {}

type leaveFixture struct {
	svc       *Service
	employees *fakeEmployeeRepo
	records   *fakeRecordRepo
	balances  *fakeBalanceRepo
	notifier  *fakeNotificationService
}

func newLeaveFixture(now time.Time) *leaveFixture {
	managerID := "mgr-1"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:                 "emp-1",
			FullName:           "Dina Putri",
			Email:              "dina@example.com",
			TeamName:           "Engineering",
			Level:              employee.LevelEmployee,
			ReportingManagerID: &managerID,
			JoiningDate:        date(2025, time.June, 10),
		},
		"mgr-1": {
			ID:          "mgr-1",
			FullName:    "Raka Wijaya",
			Email:       "raka@example.com",
			TeamName:    "Engineering",
			Level:       employee.LevelManager,
			JoiningDate: date(2024, time.January, 2),
		},
		"adm-1": {
			ID:          "adm-1",
			FullName:    "Sari Admin",
			Email:       "sari@example.com",
			TeamName:    "HR",
			Level:       employee.LevelAdmin,
			JoiningDate: date(2023, time.January, 2),
		},
	}}

	records := newFakeRecordRepo()
	balances := &fakeBalanceRepo{}
	notifier := &fakeNotificationService{}
	provider := &fakeSettingsProvider{cfg: settings.LeaveSettings{
		LeaveQuotas: settings.QuotaMap{
			"Casual Leave": {Monthly: 2, Yearly: 24},
			"Sick Leave":   {Monthly: 1, Yearly: 12},
		},
	}}

	svc := NewLeaveService(nil, records, balances, employees, provider, notifier)
	svc.now = func() time.Time { return now }
	svc.runInTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}

	return &leaveFixture{svc: svc, employees: employees, records: records, balances: balances, notifier: notifier}
}

func TestLeaveService_Create_Success(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	record, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		Reason:     "Family event",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, record.Status)
	assert.Equal(t, "mgr-1", record.ManagerID)
	assert.Equal(t, 2.0, record.Days)

	require.Len(t, fx.notifier.queued, 1)
	assert.Equal(t, "mgr-1", fx.notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveSubmitted, fx.notifier.queued[0].Type)
}

func TestLeaveService_Create_InvalidDateRange(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-05",
		EndDate:    "2026-03-02",
		Reason:     "Trip",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Create_CrossMonthRejected(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-30",
		EndDate:    "2026-04-02",
		Reason:     "Trip",
	})

	assert.ErrorIs(t, err, leave.ErrCrossMonthRequest)
}

func TestLeaveService_Create_BeforeJoiningMonth(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2025, time.June, 1))

	// Joining 2025-06-10: nothing in or before June 2025 is requestable.
	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-17",
		Reason:     "Trip",
	})

	assert.ErrorIs(t, err, leave.ErrBeforeJoiningMonth)
}

func TestLeaveService_Create_WeekendOnly(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-07",
		EndDate:    "2026-03-08",
		Reason:     "Weekend",
	})

	assert.ErrorIs(t, err, leave.ErrNoWorkingDays)
}

func TestLeaveService_Create_UnknownLeaveType(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Sabbatical",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		Reason:     "Long break",
	})

	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
}

func TestLeaveService_Create_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	// Sick Leave accrues 1/month with rollover capped at 2; by March at
	// most 3 days are spendable.
	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Sick Leave",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
		Reason:     "Recovery",
	})

	var insufficientErr *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 5.0, insufficientErr.Requested)
	assert.Equal(t, 3.0, insufficientErr.Remaining)
}

func TestLeaveService_Create_NoReportingManager(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	emp := fx.employees.employees["emp-1"]
	emp.ReportingManagerID = nil
	fx.employees.employees["emp-1"] = emp

	_, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		Reason:     "Trip",
	})

	assert.ErrorIs(t, err, leave.ErrNoReportingManager)
}

func TestLeaveService_Create_ManagerOverride(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	override := "adm-1"
	record, err := fx.svc.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		Reason:     "Trip",
		ManagerID:  &override,
	})

	require.NoError(t, err)
	assert.Equal(t, "adm-1", record.ManagerID)
}

func submitPendingRequest(t *testing.T, fx *leaveFixture) leave.LeaveRecord {
	t.Helper()
	record, err := fx.svc.Create(context.Background(), leave.CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Casual Leave",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-03",
		Reason:     "Family event",
	})
	require.NoError(t, err)
	fx.notifier.queued = nil
	return record
}

func TestLeaveService_Approve_Success(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	approved, err := fx.svc.Approve(ctx, record.ID, "mgr-1", "Enjoy your leave")

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr-1", *approved.ApprovedBy)
	require.NotNil(t, approved.ManagerComments)
	assert.Equal(t, "Enjoy your leave", *approved.ManagerComments)

	// The yearly ledger is charged with the raw days and the configured
	// yearly quota.
	require.Len(t, fx.balances.charges, 1)
	charge := fx.balances.charges[0]
	assert.Equal(t, "emp-1", charge.employeeID)
	assert.Equal(t, "Casual Leave", charge.leaveType)
	assert.Equal(t, 2026, charge.year)
	assert.Equal(t, 24.0, charge.yearlyQuota)
	assert.Equal(t, 2.0, charge.days)

	require.Len(t, fx.notifier.queued, 1)
	assert.Equal(t, "emp-1", fx.notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveApproved, fx.notifier.queued[0].Type)
}

func TestLeaveService_Approve_AdminBypassesManagerCheck(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	approved, err := fx.svc.Approve(ctx, record.ID, "adm-1", "")

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
}

func TestLeaveService_Approve_NotAssignedManager(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	_, err := fx.svc.Approve(ctx, record.ID, "emp-1", "")

	assert.ErrorIs(t, err, leave.ErrNotAuthorizedManager)
	assert.Empty(t, fx.balances.charges)
}

func TestLeaveService_Approve_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	_, err := fx.svc.Approve(ctx, record.ID, "mgr-1", "")
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, record.ID, "mgr-1", "")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// The yearly ledger is never charged twice for the same request.
	require.Len(t, fx.balances.charges, 1)
}

func TestLeaveService_Approve_StartDatePassed(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	// Time moves past the requested window before the manager acts.
	fx.svc.now = func() time.Time { return date(2026, time.March, 10) }

	_, err := fx.svc.Approve(ctx, record.ID, "mgr-1", "")
	assert.ErrorIs(t, err, leave.ErrStartDatePassed)
}

func TestLeaveService_Approve_OverlappingLeave(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	fx.records.overlap = true

	_, err := fx.svc.Approve(ctx, record.ID, "mgr-1", "")
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.Empty(t, fx.balances.charges)
}

func TestLeaveService_Reject_Success(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	rejected, err := fx.svc.Reject(ctx, record.ID, "mgr-1", "Team is at capacity")

	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedBy)
	assert.Equal(t, "mgr-1", *rejected.RejectedBy)
	assert.NotNil(t, rejected.RejectedAt)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Team is at capacity", *rejected.RejectionReason)
	// A rejection never carries approval fields.
	assert.Nil(t, rejected.ApprovedBy)
	assert.Nil(t, rejected.ApprovedAt)
	assert.Empty(t, fx.balances.charges)

	require.Len(t, fx.notifier.queued, 1)
	assert.Equal(t, notification.TypeLeaveRejected, fx.notifier.queued[0].Type)
}

func TestLeaveService_Reject_AdminCannotRejectForManager(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	_, err := fx.svc.Reject(ctx, record.ID, "adm-1", "No")

	assert.ErrorIs(t, err, leave.ErrNotAuthorizedManager)
}

func TestLeaveService_Cancel_Success(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	cancelled, err := fx.svc.Cancel(ctx, record.ID, "emp-1")

	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	require.Len(t, fx.notifier.queued, 1)
	assert.Equal(t, "mgr-1", fx.notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypeLeaveCancelled, fx.notifier.queued[0].Type)
}

func TestLeaveService_Cancel_NotOwner(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	_, err := fx.svc.Cancel(ctx, record.ID, "mgr-1")

	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestLeaveService_Cancel_AfterApproval(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	record := submitPendingRequest(t, fx)

	_, err := fx.svc.Approve(ctx, record.ID, "mgr-1", "")
	require.NoError(t, err)

	_, err = fx.svc.Cancel(ctx, record.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveService_GetBalances_EmptyQuotas(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	fx.svc.settings = &fakeSettingsProvider{cfg: settings.LeaveSettings{}}

	balances, err := fx.svc.GetBalances(ctx, "emp-1")

	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestLeaveService_GetBalances_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))

	_, err := fx.svc.GetBalances(ctx, "ghost")

	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestLeaveService_ManagerInbox(t *testing.T) {
	ctx := context.Background()
	fx := newLeaveFixture(date(2026, time.February, 2))
	submitPendingRequest(t, fx)

	inbox, err := fx.svc.ManagerInbox(ctx, "mgr-1")

	require.NoError(t, err)
	assert.Equal(t, int64(1), inbox.PendingCount)
	require.Len(t, inbox.Latest, 1)
}
