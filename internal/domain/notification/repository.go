package notification

import "context"

type ListFilter struct {
	UnreadOnly bool
	Page       int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	GetByID(ctx context.Context, id string) (Notification, error)
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Notification, int, error)
	UnreadCount(ctx context.Context, employeeID string) (int, error)
	MarkAsRead(ctx context.Context, id string) error
	// MarkAllAsRead returns the number of rows flipped; zero when nothing
	// was unread.
	MarkAllAsRead(ctx context.Context, employeeID string) (int, error)
	MarkEmailSent(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
