package vacation

import (
	"context"
	"fmt"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/timerange"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type fakeVacationRepo struct {
	vacation.Repository
	requests []vacation.Request
	seq      int
}

func (r *fakeVacationRepo) Create(_ context.Context, req vacation.Request) (vacation.Request, error) {
	r.seq++
	req.ID = fmt.Sprintf("vac-%d", r.seq)
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *fakeVacationRepo) GetByID(_ context.Context, id string) (vacation.Request, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return vacation.Request{}, vacation.ErrRequestNotFound
}

func (r *fakeVacationRepo) FindOverlapping(_ context.Context, employeeID string, startDate, endDate time.Time, excludeID string) ([]vacation.Request, error) {
	var overlapping []vacation.Request
	for _, req := range r.requests {
		if req.EmployeeID != employeeID || req.ID == excludeID || !req.Blocks() {
			continue
		}
		if timerange.DatesOverlap(req.StartDate, req.EndDate, startDate, endDate) {
			overlapping = append(overlapping, req)
		}
	}
	return overlapping, nil
}

func (r *fakeVacationRepo) Update(_ context.Context, req vacation.Request) error {
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = req
			return nil
		}
	}
	return vacation.ErrRequestNotFound
}

func (r *fakeVacationRepo) Delete(_ context.Context, id string) error {
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}
	return vacation.ErrRequestNotFound
}

type fakeAssignmentRepo struct {
	shift.AssignmentRepository
	assignments []shift.AssignmentWithShift
}

func (r *fakeAssignmentRepo) ListActiveForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]shift.AssignmentWithShift, error) {
	var active []shift.AssignmentWithShift
	for _, a := range r.assignments {
		if a.EmployeeID != employeeID || !a.IsActive() {
			continue
		}
		if timerange.Overlaps(a.Shift.StartTime, a.Shift.EndTime, from, to) {
			active = append(active, a)
		}
	}
	return active, nil
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

type recordingNotifier struct {
	notification.Service
	events []notification.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notification.Event) error {
	n.events = append(n.events, event)
	return nil
}

type vacationTestEnv struct {
	svc         vacation.Service
	repo        *fakeVacationRepo
	assignments *fakeAssignmentRepo
	notifier    *recordingNotifier
	mock        pgxmock.PgxPoolIface
	clk         *stubClock
}

func strPtr(s string) *string {
	return &s
}

func newVacationTestEnv(t *testing.T) *vacationTestEnv {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	managerID := "mgr-1"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID: "emp-1", EmployeeNumber: "EMP-0001",
			FirstName: "Dana", LastName: "Reed",
			Email: strPtr("dana.reed@example.com"), ManagerID: &managerID,
			Role: employee.RoleEmployee,
		},
		"mgr-1": {
			ID: "mgr-1", EmployeeNumber: "EMP-0002",
			FirstName: "Sam", LastName: "Ortiz",
			Role: employee.RoleManager,
		},
		"mgr-2": {
			ID: "mgr-2", EmployeeNumber: "EMP-0003",
			FirstName: "Kim", LastName: "Walsh",
			Role: employee.RoleManager,
		},
	}}

	repo := &fakeVacationRepo{}
	assignments := &fakeAssignmentRepo{}
	notifier := &recordingNotifier{}
	clk := &stubClock{now: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)}

	svc := NewService(&database.DB{Pool: mock}, repo, assignments, employees, notifier, clk)
	return &vacationTestEnv{
		svc:         svc,
		repo:        repo,
		assignments: assignments,
		notifier:    notifier,
		mock:        mock,
		clk:         clk,
	}
}

func expectCommit(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectRollback(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

func seedRequest(env *vacationTestEnv, id string, status vacation.Status, start, end time.Time) {
	env.repo.requests = append(env.repo.requests, vacation.Request{
		ID:         id,
		EmployeeID: "emp-1",
		StartDate:  start,
		EndDate:    end,
		Status:     status,
	})
}

func TestVacationService_Create_Success(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	expectCommit(env.mock)

	resp, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-05",
		Notes:     "summer trip",
	})

	require.NoError(t, err)
	assert.Equal(t, vacation.StatusPending, resp.Status)
	assert.Equal(t, 5, resp.Days)
	assert.Equal(t, "2024-07-01", resp.StartDate)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "mgr-1", env.notifier.events[0].EmployeeID)
	assert.Equal(t, notification.TypeVacationRequest, env.notifier.events[0].Type)

	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestVacationService_Create_InvalidDateOrder(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)

	_, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-07-10",
		EndDate:   "2024-07-01",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "end_date", verrs[0].Field)
}

func TestVacationService_Create_StartDateInPast(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)

	_, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-05-20",
		EndDate:   "2024-05-25",
	})

	assert.ErrorIs(t, err, vacation.ErrStartDateInPast)
	assert.Empty(t, env.repo.requests)
}

func TestVacationService_Create_SharedDayConflicts(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-approved", vacation.StatusApproved,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	// July 5 is still covered by the approved request.
	expectRollback(env.mock)
	_, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-07-05",
		EndDate:   "2024-07-10",
	})
	require.ErrorIs(t, err, vacation.ErrOverlappingVacation)

	var conflict *vacation.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "vac-approved", conflict.ConflictingID)

	// Starting the day after the approved range is fine.
	expectCommit(env.mock)
	resp, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-07-06",
		EndDate:   "2024-07-10",
	})
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusPending, resp.Status)

	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestVacationService_Create_ShiftConflict(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	env.assignments.assignments = []shift.AssignmentWithShift{{
		Assignment: shift.Assignment{
			ID: "as-1", EmployeeID: "emp-1", ShiftID: "shift-1",
			Status: shift.AssignmentStatusConfirmed,
		},
		Shift: shift.Shift{
			ID:        "shift-1",
			StartTime: time.Date(2024, time.July, 3, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, time.July, 3, 17, 0, 0, 0, time.UTC),
		},
	}}

	expectRollback(env.mock)
	_, err := env.svc.Create(ctx, "emp-1", vacation.CreateRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-05",
	})

	require.ErrorIs(t, err, vacation.ErrOverlappingShift)
	var conflict *vacation.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "shift-1", conflict.ConflictingID)
}

func TestVacationService_Approve_Success(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	expectCommit(env.mock)
	resp, err := env.svc.Approve(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{Notes: "enjoy"})

	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, "mgr-1", *resp.ReviewerID)
	require.NotNil(t, resp.ReviewedAt)
	assert.Equal(t, env.clk.now, *resp.ReviewedAt)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "emp-1", env.notifier.events[0].EmployeeID)
	assert.Equal(t, notification.TypeVacationApproved, env.notifier.events[0].Type)
}

func TestVacationService_Approve_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	expectCommit(env.mock)
	_, err := env.svc.Approve(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{})
	require.NoError(t, err)

	expectRollback(env.mock)
	_, err = env.svc.Approve(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{})
	assert.ErrorIs(t, err, vacation.ErrRequestNotPending)
}

func TestVacationService_Approve_NotEmployeesManager(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	expectRollback(env.mock)
	_, err := env.svc.Approve(ctx, "vac-1", "mgr-2", vacation.ReviewRequest{})

	assert.ErrorIs(t, err, vacation.ErrNotEmployeesManager)
	assert.Empty(t, env.notifier.events)
}

func TestVacationService_Approve_OverlapApprovedSince(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))
	seedRequest(env, "vac-2", vacation.StatusApproved,
		time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC))

	expectRollback(env.mock)
	_, err := env.svc.Approve(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{})

	assert.ErrorIs(t, err, vacation.ErrOverlappingVacation)
}

func TestVacationService_Reject_RequiresNotes(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	_, err := env.svc.Reject(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{Notes: "   "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "notes", verrs[0].Field)

	expectCommit(env.mock)
	resp, err := env.svc.Reject(ctx, "vac-1", "mgr-1", vacation.ReviewRequest{Notes: "short staffed that week"})
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusRejected, resp.Status)
	require.NotNil(t, resp.ReviewNotes)
	assert.Equal(t, "short staffed that week", *resp.ReviewNotes)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notification.TypeVacationRejected, env.notifier.events[0].Type)
}

func TestVacationService_Cancel_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-1", vacation.StatusPending,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))

	expectRollback(env.mock)
	_, err := env.svc.Cancel(ctx, "vac-1", "mgr-1")
	assert.ErrorIs(t, err, vacation.ErrNotRequestOwner)

	expectCommit(env.mock)
	resp, err := env.svc.Cancel(ctx, "vac-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusCancelled, resp.Status)

	expectRollback(env.mock)
	_, err = env.svc.Cancel(ctx, "vac-1", "emp-1")
	assert.ErrorIs(t, err, vacation.ErrRequestNotCancelable)
}

func TestVacationService_Cancel_ApprovedNotifiesReviewer(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	reviewerID := "mgr-1"
	env.repo.requests = append(env.repo.requests, vacation.Request{
		ID:         "vac-1",
		EmployeeID: "emp-1",
		StartDate:  time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC),
		Status:     vacation.StatusApproved,
		ReviewerID: &reviewerID,
	})

	expectCommit(env.mock)
	resp, err := env.svc.Cancel(ctx, "vac-1", "emp-1")

	require.NoError(t, err)
	assert.Equal(t, vacation.StatusCancelled, resp.Status)
	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "mgr-1", env.notifier.events[0].EmployeeID)
	assert.Equal(t, notification.TypeVacationCancelled, env.notifier.events[0].Type)
}

func TestVacationService_Delete_PendingOnly(t *testing.T) {
	ctx := context.Background()
	env := newVacationTestEnv(t)
	seedRequest(env, "vac-approved", vacation.StatusApproved,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC))
	seedRequest(env, "vac-pending", vacation.StatusPending,
		time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.August, 5, 0, 0, 0, 0, time.UTC))

	err := env.svc.Delete(ctx, "vac-approved")
	assert.ErrorIs(t, err, vacation.ErrRequestNotPending)
	require.Len(t, env.repo.requests, 2)

	require.NoError(t, env.svc.Delete(ctx, "vac-pending"))
	require.Len(t, env.repo.requests, 1)
	assert.Equal(t, "vac-approved", env.repo.requests[0].ID)
}
