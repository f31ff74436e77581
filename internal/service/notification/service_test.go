package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
)

type fakeNotificationRepo struct {
	notification.Repository
	mu            sync.Mutex
	notifications []notification.Notification
	seq           int
	markReadCalls int
}

func (r *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = fmt.Sprintf("ntf-%d", r.seq)
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return notification.Notification{}, notification.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.EmployeeID == employeeID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markReadCalls++
	for i := range r.notifications {
		if r.notifications[i].ID == id && !r.notifications[i].Read {
			now := time.Now()
			r.notifications[i].Read = true
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for i := range r.notifications {
		if r.notifications[i].EmployeeID == employeeID && !r.notifications[i].Read {
			now := time.Now()
			r.notifications[i].Read = true
			r.notifications[i].ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) MarkEmailSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].EmailSent = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) emailSent(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			return n.EmailSent
		}
	}
	return false
}

type fakeEmployeeRepo struct {
	employee.Repository
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	if s.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (s *fakeSender) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func strPtr(s string) *string {
	return &s
}

func newNotificationEnv() (notification.Service, *fakeNotificationRepo, *fakeSender) {
	repo := &fakeNotificationRepo{}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID: "emp-1", EmployeeNumber: "EMP-0001",
			FirstName: "Dana", LastName: "Reed",
			Email: strPtr("dana.reed@example.com"),
		},
		"emp-2": {
			ID: "emp-2", EmployeeNumber: "EMP-0002",
			FirstName: "Lee", LastName: "Chan",
		},
	}}
	sender := &fakeSender{}
	return NewService(repo, employees, sender), repo, sender
}

func TestNotificationService_Notify_PersistsAndEmails(t *testing.T) {
	ctx := context.Background()
	svc, repo, sender := newNotificationEnv()

	err := svc.Notify(ctx, notification.Event{
		EmployeeID: "emp-1",
		Type:       notification.TypeShiftAssignment,
		Title:      "New shift assignment",
		Message:    "You were assigned a shift.",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)
	assert.False(t, repo.notifications[0].Read)

	assert.Eventually(t, func() bool {
		return sender.attempts() == 1 && repo.emailSent("ntf-1")
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationService_Notify_EmailFailureDoesNotFailCaller(t *testing.T) {
	ctx := context.Background()
	svc, repo, sender := newNotificationEnv()
	sender.fail = true

	err := svc.Notify(ctx, notification.Event{
		EmployeeID: "emp-1",
		Type:       notification.TypeVacationApproved,
		Title:      "Vacation request approved",
		Message:    "Your vacation was approved.",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)

	assert.Eventually(t, func() bool {
		return sender.attempts() == 1
	}, time.Second, 10*time.Millisecond)
	assert.False(t, repo.emailSent("ntf-1"))
}

func TestNotificationService_Notify_NoEmailAddress(t *testing.T) {
	ctx := context.Background()
	svc, repo, sender := newNotificationEnv()

	err := svc.Notify(ctx, notification.Event{
		EmployeeID: "emp-2",
		Type:       notification.TypeShiftUpdated,
		Title:      "Shift updated",
		Message:    "Your shift changed.",
	})

	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, 0, sender.attempts())
}

func TestNotificationService_MarkAsRead_OwnershipRequired(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newNotificationEnv()
	repo.notifications = append(repo.notifications, notification.Notification{
		ID: "ntf-1", EmployeeID: "emp-1",
	})

	err := svc.MarkAsRead(ctx, "emp-2", "ntf-1")
	assert.ErrorIs(t, err, notification.ErrNotRecipient)

	err = svc.MarkAsRead(ctx, "emp-1", "ntf-1")
	assert.NoError(t, err)
}

func TestNotificationService_MarkAsRead_AlreadyReadIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newNotificationEnv()
	repo.notifications = append(repo.notifications, notification.Notification{
		ID: "ntf-1", EmployeeID: "emp-1",
	})

	require.NoError(t, svc.MarkAsRead(ctx, "emp-1", "ntf-1"))
	require.NoError(t, svc.MarkAsRead(ctx, "emp-1", "ntf-1"))

	// The second call short-circuits on the already read flag.
	assert.Equal(t, 1, repo.markReadCalls)
}

func TestNotificationService_MarkAllAsRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newNotificationEnv()
	for i := 1; i <= 3; i++ {
		repo.notifications = append(repo.notifications, notification.Notification{
			ID: fmt.Sprintf("ntf-%d", i), EmployeeID: "emp-1",
		})
	}
	repo.notifications = append(repo.notifications, notification.Notification{
		ID: "ntf-4", EmployeeID: "emp-2",
	})

	updated, err := svc.MarkAllAsRead(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	unread, err := svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	updated, err = svc.MarkAllAsRead(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	// The other employee's notification is untouched.
	otherUnread, err := svc.UnreadCount(ctx, "emp-2")
	require.NoError(t, err)
	assert.Equal(t, 1, otherUnread)
}
