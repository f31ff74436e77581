package notification

import (
	"context"
)

// Event describes a lifecycle transition to notify an employee about.
type Event struct {
	EmployeeID string
	Type       Type
	Title      string
	Message    string
	RelatedID  *string
}

type Service interface {
	// Notify persists the notification synchronously and sends the email
	// best-effort in the background. A failed email never fails the caller.
	Notify(ctx context.Context, event Event) error

	List(ctx context.Context, employeeID string, filter ListFilter) ([]NotificationResponse, int, error)
	UnreadCount(ctx context.Context, employeeID string) (int, error)
	MarkAsRead(ctx context.Context, employeeID string, notificationID string) error
	MarkAllAsRead(ctx context.Context, employeeID string) (int, error)
	Delete(ctx context.Context, employeeID string, notificationID string) error
}
