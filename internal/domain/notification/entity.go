package notification

import (
	"time"
)

type Type string

const (
	TypeLeaveSubmitted Type = "leave_submitted"
	TypeLeaveApproved  Type = "leave_approved"
	TypeLeaveRejected  Type = "leave_rejected"
	TypeLeaveCancelled Type = "leave_cancelled"
)

type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
