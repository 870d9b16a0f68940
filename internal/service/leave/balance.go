package leave

import (
	"math"
	"time"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/leave"
	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
)

const (
	noteBeforeJoining     = "Before joining date"
	noteProratedJoining   = "Prorated for joining month"
	noteJoiningNotReached = "Joining date not yet reached"
)

// ComputeBalances derives the per-type accrual timeline from policy and
// approved usage, walking January through the reference month. Rollover
// carried into a month is capped at twice the monthly quota. The yearly
// figure accumulates raw usage and ignores the rollover cap.
func ComputeBalances(
	quotas settings.QuotaMap,
	usage map[string]map[int]float64,
	joiningDate time.Time,
	ref time.Time,
) map[string]leave.TypeBalance {
	balances := make(map[string]leave.TypeBalance, len(quotas))

	for leaveType, quota := range quotas {
		balances[leaveType] = computeTypeBalance(leaveType, quota, usage[leaveType], joiningDate, ref)
	}

	return balances
}

func computeTypeBalance(
	leaveType string,
	quota settings.LeaveQuota,
	usedByMonth map[int]float64,
	joiningDate time.Time,
	ref time.Time,
) leave.TypeBalance {
	refMonth := int(ref.Month())
	months := make([]leave.MonthBalance, 0, refMonth)

	var rollover float64
	var yearlyUsed float64
	var lastRemaining float64

	for month := 1; month <= refMonth; month++ {
		mb := leave.MonthBalance{
			Month:     month,
			MonthName: time.Month(month).String(),
		}
		used := usedByMonth[month]

		switch {
		case beforeJoining(month, joiningDate, ref):
			mb.Note = noteBeforeJoining
		case joiningNotReached(month, joiningDate, ref):
			mb.Note = noteJoiningNotReached
		case isJoiningMonth(month, joiningDate, ref):
			mb.Accrued = prorate(quota.Monthly, joiningDate)
			mb.Note = noteProratedJoining
		default:
			mb.Accrued = quota.Monthly
		}

		if mb.Note == noteBeforeJoining || mb.Note == noteJoiningNotReached {
			months = append(months, mb)
			yearlyUsed += used
			continue
		}

		mb.Rollover = rollover
		mb.Available = mb.Accrued + rollover
		mb.Used = math.Min(used, mb.Available)
		mb.Remaining = mb.Available - mb.Used

		// Carry-over into the next month is capped at twice the base
		// monthly quota, not the prorated one.
		rollover = math.Min(mb.Remaining, quota.Monthly*2)

		yearlyUsed += used
		lastRemaining = mb.Remaining
		months = append(months, mb)
	}

	yearlyRemaining := quota.Yearly - yearlyUsed
	if yearlyRemaining < 0 {
		yearlyRemaining = 0
	}

	return leave.TypeBalance{
		LeaveType:       leaveType,
		MonthlyQuota:    quota.Monthly,
		YearlyQuota:     quota.Yearly,
		YearlyUsed:      yearlyUsed,
		YearlyRemaining: yearlyRemaining,
		Remaining:       lastRemaining,
		Months:          months,
	}
}

// beforeJoining reports whether the whole month precedes the joining month.
func beforeJoining(month int, joiningDate, ref time.Time) bool {
	if joiningDate.Year() > ref.Year() {
		return true
	}
	if joiningDate.Year() < ref.Year() {
		return false
	}
	return month < int(joiningDate.Month())
}

// joiningNotReached reports whether this is the joining month but the
// joining day is still in the future.
func joiningNotReached(month int, joiningDate, ref time.Time) bool {
	if !isJoiningMonth(month, joiningDate, ref) {
		return false
	}
	return int(ref.Month()) == month && ref.Day() < joiningDate.Day()
}

func isJoiningMonth(month int, joiningDate, ref time.Time) bool {
	return joiningDate.Year() == ref.Year() && month == int(joiningDate.Month())
}

// prorate scales the monthly quota by the fraction of the joining month the
// employee was present for, floored to one decimal.
func prorate(monthly float64, joiningDate time.Time) float64 {
	daysInMonth := daysIn(joiningDate.Year(), joiningDate.Month())
	factor := float64(daysInMonth-joiningDate.Day()+1) / float64(daysInMonth)
	return math.Floor(monthly*factor*10) / 10
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CountWeekdays counts Monday through Friday days in the inclusive range.
func CountWeekdays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
