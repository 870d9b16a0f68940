package settings

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LeaveQuota is the per-type accrual policy. Monthly is the accrual rate,
// Yearly the annual entitlement.
type LeaveQuota struct {
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// QuotaMap maps leave type name to its quota policy. Stored as JSONB.
type QuotaMap map[string]LeaveQuota

func (m QuotaMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *QuotaMap) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan QuotaMap: invalid type")
	}
	return json.Unmarshal(bytes, m)
}

// StatusMap maps leave type name to whether it is enabled. Stored as JSONB.
type StatusMap map[string]bool

func (m StatusMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *StatusMap) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StatusMap: invalid type")
	}
	return json.Unmarshal(bytes, m)
}

// StringList is a JSONB-backed list of leave type names.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan StringList: invalid type")
	}
	return json.Unmarshal(bytes, l)
}

// IntList is a JSONB-backed list of ISO weekday numbers (Monday=1 .. Sunday=7).
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan IntList: invalid type")
	}
	return json.Unmarshal(bytes, l)
}

// LeaveSettings is the single organisation-wide policy record.
type LeaveSettings struct {
	ID                       string     `json:"id"`
	WorkingDays              IntList    `json:"working_days"`
	WorkingHours             string     `json:"working_hours"` // "HH:MM-HH:MM"
	LateThresholdMinutes     int        `json:"late_threshold_minutes"`
	OvertimeThresholdMinutes int        `json:"overtime_threshold_minutes"`
	LeaveTypes               StringList `json:"leave_types"`
	CustomLeaves             StringList `json:"custom_leaves"`
	SelectedLeaves           StringList `json:"selected_leaves"`
	LeaveStatus              StatusMap  `json:"leave_status"`
	LeaveQuotas              QuotaMap   `json:"leave_quotas"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// DefaultLeaveTypes are seeded with zero quotas when no settings row exists.
var DefaultLeaveTypes = []string{
	"Sick Leave",
	"Casual Leave",
	"Earned Leave",
	"Maternity Leave",
	"Paternity Leave",
	"Compensatory Leave",
}

// Defaults returns the policy used before an admin saves anything.
func Defaults() LeaveSettings {
	quotas := make(QuotaMap, len(DefaultLeaveTypes))
	status := make(StatusMap, len(DefaultLeaveTypes))
	for _, name := range DefaultLeaveTypes {
		quotas[name] = LeaveQuota{}
		status[name] = true
	}
	return LeaveSettings{
		WorkingDays:              IntList{1, 2, 3, 4, 5},
		WorkingHours:             "09:00-17:00",
		LateThresholdMinutes:     15,
		OvertimeThresholdMinutes: 60,
		LeaveTypes:               append(StringList{}, DefaultLeaveTypes...),
		LeaveStatus:              status,
		LeaveQuotas:              quotas,
	}
}

// ShiftWindow is the parsed working-hours window, in minutes from midnight.
type ShiftWindow struct {
	StartMinutes int
	EndMinutes   int
}

// Start returns the shift start on the given day.
func (w ShiftWindow) Start(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(w.StartMinutes) * time.Minute)
}

// End returns the shift end on the given day.
func (w ShiftWindow) End(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(w.EndMinutes) * time.Minute)
}

// ParseWorkingHours parses a "HH:MM-HH:MM" window. The end must be after
// the start; overnight shifts are not supported.
func ParseWorkingHours(s string) (ShiftWindow, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return ShiftWindow{}, fmt.Errorf("invalid working hours %q: expected HH:MM-HH:MM", s)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return ShiftWindow{}, fmt.Errorf("invalid working hours %q: %w", s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return ShiftWindow{}, fmt.Errorf("invalid working hours %q: %w", s, err)
	}
	if end <= start {
		return ShiftWindow{}, fmt.Errorf("invalid working hours %q: end must be after start", s)
	}
	return ShiftWindow{StartMinutes: start, EndMinutes: end}, nil
}

func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	return hour*60 + minute, nil
}
