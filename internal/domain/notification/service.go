package notification

import (
	"context"
)

// Service queues notifications for async persistence and serves read APIs.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Stop()
}
