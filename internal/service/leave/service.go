package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/employee"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/notification"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
	"github.com/talenthub-hr/hr-backend-go/internal/pkg/database"
	"github.com/talenthub-hr/hr-backend-go/internal/repository/postgresql"
)

// SettingsProvider yields the current leave policy, falling back to
// defaults when nothing has been saved.
type SettingsProvider interface {
	Get(ctx context.Context) (settings.LeaveSettings, error)
}

type Service struct {
	db            *database.DB
	records       leave.RecordRepository
	balances      leave.BalanceRepository
	employees     employee.Repository
	settings      SettingsProvider
	notifications notification.Service

	now     func() time.Time
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewLeaveService(
	db *database.DB,
	records leave.RecordRepository,
	balances leave.BalanceRepository,
	employees employee.Repository,
	settingsProvider SettingsProvider,
	notifications notification.Service,
) *Service {
	return &Service{
		db:            db,
		records:       records,
		balances:      balances,
		employees:     employees,
		settings:      settingsProvider,
		notifications: notifications,
		now:           time.Now,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Create validates and submits a pending leave request. The reporting
// manager is snapshotted onto the record at this point.
func (s *Service) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRecord, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRecord{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if startDate.After(endDate) {
		return leave.LeaveRecord{}, leave.ErrInvalidDateRange
	}
	if startDate.Year() != endDate.Year() || startDate.Month() != endDate.Month() {
		return leave.LeaveRecord{}, leave.ErrCrossMonthRequest
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	// Accrual starts the month after joining; the joining month itself is
	// only prorated, never spendable in advance.
	joiningMonthEnd := endOfMonth(emp.JoiningDate)
	if !startDate.After(joiningMonthEnd) {
		return leave.LeaveRecord{}, leave.ErrBeforeJoiningMonth
	}

	days := CountWeekdays(startDate, endDate)
	if days == 0 {
		return leave.LeaveRecord{}, leave.ErrNoWorkingDays
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return leave.LeaveRecord{}, err
	}
	quota, ok := cfg.LeaveQuotas[req.LeaveType]
	if !ok {
		return leave.LeaveRecord{}, leave.ErrUnknownLeaveType
	}

	usage, err := s.records.UsageByMonth(ctx, emp.ID, startDate.Year())
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to load leave usage: %w", err)
	}

	balance := computeTypeBalance(req.LeaveType, quota, usage[req.LeaveType], emp.JoiningDate, startDate)
	if float64(days) > balance.Remaining {
		last := balance.Months[len(balance.Months)-1]
		return leave.LeaveRecord{}, &leave.InsufficientBalanceError{
			LeaveType: req.LeaveType,
			Requested: float64(days),
			Accrued:   last.Accrued,
			Rollover:  last.Rollover,
			Used:      last.Used,
			Remaining: last.Remaining,
		}
	}

	managerID := emp.ReportingManagerID
	if req.ManagerID != nil && *req.ManagerID != "" {
		managerID = req.ManagerID
	}
	if managerID == nil || *managerID == "" {
		return leave.LeaveRecord{}, leave.ErrNoReportingManager
	}
	if _, err := s.employees.GetByID(ctx, *managerID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRecord{}, employee.ErrManagerNotFound
		}
		return leave.LeaveRecord{}, err
	}

	record := leave.LeaveRecord{
		EmployeeID: emp.ID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       float64(days),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
		ManagerID:  *managerID,
	}

	created, err := s.records.Create(ctx, record)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	s.notify(ctx, *managerID, notification.TypeLeaveSubmitted,
		"Leave request submitted",
		fmt.Sprintf("%s requested %s from %s to %s",
			emp.FullName, req.LeaveType,
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return created, nil
}

// Approve moves a pending request to approved and charges the yearly
// ledger in the same transaction.
func (s *Service) Approve(ctx context.Context, requestID, approverID, comments string) (leave.LeaveRecord, error) {
	approver, err := s.employees.GetByID(ctx, approverID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	record, err := s.records.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	if record.Status != leave.StatusPending {
		return leave.LeaveRecord{}, leave.ErrAlreadyProcessed
	}

	if record.ManagerID != approverID && !approver.IsAdmin() {
		return leave.LeaveRecord{}, leave.ErrNotAuthorizedManager
	}

	if record.StartDate.Before(s.today()) {
		return leave.LeaveRecord{}, leave.ErrStartDatePassed
	}

	emp, err := s.employees.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}
	if record.StartDate.Before(truncateToDay(emp.JoiningDate)) {
		return leave.LeaveRecord{}, leave.ErrStartBeforeJoining
	}

	overlap, err := s.records.HasApprovedOverlap(ctx, record.EmployeeID, record.StartDate, record.EndDate, record.ID)
	if err != nil {
		return leave.LeaveRecord{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	if overlap {
		return leave.LeaveRecord{}, leave.ErrOverlappingLeave
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return leave.LeaveRecord{}, err
	}
	quota := cfg.LeaveQuotas[record.LeaveType]

	var comment *string
	if comments != "" {
		comment = &comments
	}

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.records.UpdateStatus(txCtx, record.ID, leave.StatusApproved, &approverID, comment); err != nil {
			return err
		}
		return s.balances.AddUsage(txCtx, record.EmployeeID, record.LeaveType, record.StartDate.Year(), quota.Yearly, record.Days)
	})
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	now := s.now()
	record.Status = leave.StatusApproved
	record.ApprovedBy = &approverID
	record.ApprovedAt = &now
	record.ManagerComments = comment

	s.notify(ctx, record.EmployeeID, notification.TypeLeaveApproved,
		"Leave request approved",
		fmt.Sprintf("Your %s from %s to %s was approved",
			record.LeaveType,
			record.StartDate.Format("2006-01-02"), record.EndDate.Format("2006-01-02")))

	return record, nil
}

// Reject declines a pending request. Only the snapshotted manager may
// reject; admins cannot reject on their behalf.
func (s *Service) Reject(ctx context.Context, requestID, rejecterID, reason string) (leave.LeaveRecord, error) {
	if _, err := s.employees.GetByID(ctx, rejecterID); err != nil {
		return leave.LeaveRecord{}, err
	}

	record, err := s.records.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	if record.Status != leave.StatusPending {
		return leave.LeaveRecord{}, leave.ErrAlreadyProcessed
	}

	if record.ManagerID != rejecterID {
		return leave.LeaveRecord{}, leave.ErrNotAuthorizedManager
	}

	if err := s.records.UpdateStatus(ctx, record.ID, leave.StatusRejected, &rejecterID, &reason); err != nil {
		return leave.LeaveRecord{}, err
	}

	now := s.now()
	record.Status = leave.StatusRejected
	record.RejectedBy = &rejecterID
	record.RejectedAt = &now
	record.RejectionReason = &reason

	s.notify(ctx, record.EmployeeID, notification.TypeLeaveRejected,
		"Leave request rejected",
		fmt.Sprintf("Your %s from %s to %s was rejected",
			record.LeaveType,
			record.StartDate.Format("2006-01-02"), record.EndDate.Format("2006-01-02")))

	return record, nil
}

// Cancel withdraws a pending request. Only the requesting employee may
// cancel, and only before any manager action.
func (s *Service) Cancel(ctx context.Context, requestID, employeeID string) (leave.LeaveRecord, error) {
	record, err := s.records.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRecord{}, err
	}

	if record.EmployeeID != employeeID {
		return leave.LeaveRecord{}, leave.ErrNotRequestOwner
	}

	if record.Status != leave.StatusPending {
		return leave.LeaveRecord{}, leave.ErrAlreadyProcessed
	}

	if err := s.records.UpdateStatus(ctx, record.ID, leave.StatusCancelled, nil, nil); err != nil {
		return leave.LeaveRecord{}, err
	}

	now := s.now()
	record.Status = leave.StatusCancelled
	record.CancelledAt = &now

	s.notify(ctx, record.ManagerID, notification.TypeLeaveCancelled,
		"Leave request cancelled",
		fmt.Sprintf("A pending %s from %s to %s was cancelled by the employee",
			record.LeaveType,
			record.StartDate.Format("2006-01-02"), record.EndDate.Format("2006-01-02")))

	return record, nil
}

// GetBalances derives the accrual timeline for every configured leave
// type as of today.
func (s *Service) GetBalances(ctx context.Context, employeeID string) (map[string]leave.TypeBalance, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(cfg.LeaveQuotas) == 0 {
		return map[string]leave.TypeBalance{}, nil
	}

	ref := s.now()
	usage, err := s.records.UsageByMonth(ctx, emp.ID, ref.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to load leave usage: %w", err)
	}

	return ComputeBalances(cfg.LeaveQuotas, usage, emp.JoiningDate, ref), nil
}

// GetEmployeeLeaveInfo assembles the employee leave profile: balances,
// pending requests, and recent history.
func (s *Service) GetEmployeeLeaveInfo(ctx context.Context, employeeID string) (leave.EmployeeLeaveInfo, error) {
	balances, err := s.GetBalances(ctx, employeeID)
	if err != nil {
		return leave.EmployeeLeaveInfo{}, err
	}

	pendingStatus := string(leave.StatusPending)
	pending, _, err := s.records.GetByEmployeeID(ctx, employeeID, leave.RecordFilter{Status: &pendingStatus, Limit: 50})
	if err != nil {
		return leave.EmployeeLeaveInfo{}, err
	}

	history, _, err := s.records.GetByEmployeeID(ctx, employeeID, leave.RecordFilter{Limit: 10})
	if err != nil {
		return leave.EmployeeLeaveInfo{}, err
	}

	return leave.EmployeeLeaveInfo{
		EmployeeID: employeeID,
		Balances:   balances,
		Pending:    pending,
		History:    history,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (leave.LeaveRecord, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	return s.records.List(ctx, filter)
}

func (s *Service) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.RecordFilter) ([]leave.LeaveRecord, int64, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, 0, err
	}
	return s.records.GetByEmployeeID(ctx, employeeID, filter)
}

// ManagerInbox returns the latest pending requests assigned to a manager
// with the total pending count.
func (s *Service) ManagerInbox(ctx context.Context, managerID string) (leave.ManagerInbox, error) {
	if _, err := s.employees.GetByID(ctx, managerID); err != nil {
		return leave.ManagerInbox{}, err
	}

	latest, total, err := s.records.GetPendingByManagerID(ctx, managerID, 5)
	if err != nil {
		return leave.ManagerInbox{}, err
	}

	return leave.ManagerInbox{
		PendingCount: total,
		Latest:       latest,
	}, nil
}

// notify enqueues fire-and-forget; delivery failure never fails the
// operation that triggered it.
func (s *Service) notify(ctx context.Context, recipientID string, t notification.Type, title, message string) {
	if s.notifications == nil {
		return
	}
	err := s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: recipientID,
		Type:        t,
		Title:       title,
		Message:     message,
	})
	if err != nil {
		slog.Error("Failed to queue leave notification", "recipient_id", recipientID, "type", t, "error", err)
	}
}

func (s *Service) today() time.Time {
	return truncateToDay(s.now())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
