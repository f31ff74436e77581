package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
)

type ServiceImpl struct {
	notification.Repository
	employees employee.Repository
	sender    Sender
}

// Sender delivers a notification email. Delivery is best-effort.
type Sender interface {
	Send(to, subject, body string) error
}

func NewService(repo notification.Repository, employees employee.Repository, sender Sender) notification.Service {
	return &ServiceImpl{
		Repository: repo,
		employees:  employees,
		sender:     sender,
	}
}

// Notify implements notification.Service. The record is persisted in the
// caller's transaction; the email goes out in the background and must not
// hold the transaction open or fail the caller.
func (s *ServiceImpl) Notify(ctx context.Context, event notification.Event) error {
	created, err := s.Repository.Create(ctx, notification.Notification{
		EmployeeID: event.EmployeeID,
		Type:       event.Type,
		Title:      event.Title,
		Message:    event.Message,
		RelatedID:  event.RelatedID,
	})
	if err != nil {
		slog.Error("Failed to persist notification", "employee_id", event.EmployeeID, "type", event.Type, "error", err)
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	emp, err := s.employees.GetByID(ctx, event.EmployeeID)
	if err != nil {
		slog.Warn("Skipping notification email, employee lookup failed", "employee_id", event.EmployeeID, "error", err)
		return nil
	}
	if emp.Email == nil {
		return nil
	}

	go s.sendEmail(created.ID, *emp.Email, event.Title, event.Message)
	return nil
}

func (s *ServiceImpl) sendEmail(notificationID, to, subject, body string) {
	if err := s.sender.Send(to, subject, body); err != nil {
		slog.Warn("Failed to send notification email", "notification_id", notificationID, "error", err)
		return
	}
	if err := s.Repository.MarkEmailSent(context.Background(), notificationID); err != nil {
		slog.Warn("Failed to mark notification email as sent", "notification_id", notificationID, "error", err)
	}
}

// List implements notification.Service.
func (s *ServiceImpl) List(ctx context.Context, employeeID string, filter notification.ListFilter) ([]notification.NotificationResponse, int, error) {
	notifications, total, err := s.Repository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notification.ToResponses(notifications), total, nil
}

// UnreadCount implements notification.Service.
func (s *ServiceImpl) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	count, err := s.Repository.UnreadCount(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead implements notification.Service. Marking an already read
// notification is a no-op.
func (s *ServiceImpl) MarkAsRead(ctx context.Context, employeeID string, notificationID string) error {
	n, err := s.Repository.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if n.EmployeeID != employeeID {
		return notification.ErrNotRecipient
	}
	if n.Read {
		return nil
	}
	if err := s.Repository.MarkAsRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead implements notification.Service. Idempotent: a second call
// flips nothing and returns zero.
func (s *ServiceImpl) MarkAllAsRead(ctx context.Context, employeeID string) (int, error) {
	updated, err := s.Repository.MarkAllAsRead(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return updated, nil
}

// Delete implements notification.Service.
func (s *ServiceImpl) Delete(ctx context.Context, employeeID string, notificationID string) error {
	n, err := s.Repository.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if n.EmployeeID != employeeID {
		return notification.ErrNotRecipient
	}
	if err := s.Repository.Delete(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
