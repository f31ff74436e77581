package shift

import (
	"context"
	"fmt"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
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

type fakeShiftRepo struct {
	shift.Repository
	shifts map[string]shift.Shift
	seq    int
}

func (r *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	r.seq++
	s.ID = fmt.Sprintf("shift-%d", r.seq)
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) Update(_ context.Context, s shift.Shift) error {
	if _, ok := r.shifts[s.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}

type fakeTypeRepo struct {
	shift.TypeRepository
	types map[string]shift.ShiftType
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (shift.ShiftType, error) {
	st, ok := r.types[id]
	if !ok {
		return shift.ShiftType{}, shift.ErrShiftTypeNotFound
	}
	return st, nil
}

type fakeLocationRepo struct {
	location.Repository
	locations map[string]location.Location
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id string) (location.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return location.Location{}, location.ErrLocationNotFound
	}
	return loc, nil
}

type fakeAssignmentRepo struct {
	shift.AssignmentRepository
	shifts      *fakeShiftRepo
	assignments []shift.Assignment
	seq         int
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a shift.Assignment) (shift.Assignment, error) {
	r.seq++
	a.ID = fmt.Sprintf("as-%d", r.seq)
	r.assignments = append(r.assignments, a)
	return a, nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (shift.Assignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return shift.Assignment{}, shift.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetActiveByEmployeeAndShift(_ context.Context, employeeID, shiftID string) (shift.Assignment, error) {
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID && a.ShiftID == shiftID && a.IsActive() {
			return a, nil
		}
	}
	return shift.Assignment{}, shift.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) ListActiveForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]shift.AssignmentWithShift, error) {
	var active []shift.AssignmentWithShift
	for _, a := range r.assignments {
		if a.EmployeeID != employeeID || !a.IsActive() {
			continue
		}
		sh := r.shifts.shifts[a.ShiftID]
		if timerange.Overlaps(sh.StartTime, sh.EndTime, from, to) {
			active = append(active, shift.AssignmentWithShift{Assignment: a, Shift: sh})
		}
	}
	return active, nil
}

func (r *fakeAssignmentRepo) ListActiveForShift(_ context.Context, shiftID string) ([]shift.Assignment, error) {
	var active []shift.Assignment
	for _, a := range r.assignments {
		if a.ShiftID == shiftID && a.IsActive() {
			active = append(active, a)
		}
	}
	return active, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, a shift.Assignment) error {
	for i := range r.assignments {
		if r.assignments[i].ID == a.ID {
			r.assignments[i] = a
			return nil
		}
	}
	return shift.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) DeleteByShift(_ context.Context, shiftID string) error {
	kept := r.assignments[:0]
	for _, a := range r.assignments {
		if a.ShiftID != shiftID {
			kept = append(kept, a)
		}
	}
	r.assignments = kept
	return nil
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

type shiftTestEnv struct {
	svc         shift.Service
	shifts      *fakeShiftRepo
	assignments *fakeAssignmentRepo
	notifier    *recordingNotifier
	mock        pgxmock.PgxPoolIface
	clk         *stubClock
}

func strPtr(s string) *string {
	return &s
}

func newShiftTestEnv(t *testing.T) *shiftTestEnv {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	shifts := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	types := &fakeTypeRepo{types: map[string]shift.ShiftType{
		"type-1": {ID: "type-1", Name: "Morning"},
	}}
	locations := &fakeLocationRepo{locations: map[string]location.Location{
		"loc-1": {ID: "loc-1", Name: "Main Store"},
	}}
	assignments := &fakeAssignmentRepo{shifts: shifts}
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
	}}
	notifier := &recordingNotifier{}
	clk := &stubClock{now: time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)}

	svc := NewService(&database.DB{Pool: mock}, shifts, types, assignments, employees, locations, notifier, clk)
	return &shiftTestEnv{
		svc:         svc,
		shifts:      shifts,
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

// seedShift registers a shift on March 15 2024 between the given hours.
func seedShift(env *shiftTestEnv, id string, fromHour, toHour int) {
	env.shifts.shifts[id] = shift.Shift{
		ID:          id,
		ShiftDate:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2024, time.March, 15, fromHour, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, time.March, 15, toHour, 0, 0, 0, time.UTC),
		LocationID:  "loc-1",
		ShiftTypeID: "type-1",
		CreatedBy:   "mgr-1",
	}
}

func assign(t *testing.T, env *shiftTestEnv, shiftID string) shift.AssignmentResponse {
	t.Helper()
	expectCommit(env.mock)
	resp, err := env.svc.Assign(context.Background(), shiftID, "mgr-1", shift.AssignRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	return resp
}

func TestShiftService_CreateShift(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)

	resp, err := env.svc.CreateShift(ctx, "mgr-1", shift.CreateShiftRequest{
		ShiftDate:   "2024-03-15",
		StartTime:   "2024-03-15T09:00:00Z",
		EndTime:     "2024-03-15T17:00:00Z",
		LocationID:  "loc-1",
		ShiftTypeID: "type-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "loc-1", resp.LocationID)
}

func TestShiftService_CreateShift_EndBeforeStart(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)

	_, err := env.svc.CreateShift(ctx, "mgr-1", shift.CreateShiftRequest{
		ShiftDate:   "2024-03-15",
		StartTime:   "2024-03-15T17:00:00Z",
		EndTime:     "2024-03-15T09:00:00Z",
		LocationID:  "loc-1",
		ShiftTypeID: "type-1",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "end_time", verrs[0].Field)
}

func TestShiftService_CreateShift_CrossesMidnight(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)

	_, err := env.svc.CreateShift(ctx, "mgr-1", shift.CreateShiftRequest{
		ShiftDate:   "2024-03-15",
		StartTime:   "2024-03-15T22:00:00Z",
		EndTime:     "2024-03-16T06:00:00Z",
		LocationID:  "loc-1",
		ShiftTypeID: "type-1",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "shift must start and end on the same day", verrs[0].Message)
}

func TestShiftService_Assign_Success(t *testing.T) {
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)

	resp := assign(t, env, "shift-a")

	assert.Equal(t, shift.AssignmentStatusAssigned, resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, env.clk.now, resp.AssignedAt)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, "emp-1", env.notifier.events[0].EmployeeID)
	assert.Equal(t, notification.TypeShiftAssignment, env.notifier.events[0].Type)

	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestShiftService_Assign_OverlapConflict(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	seedShift(env, "shift-b", 16, 20)
	assign(t, env, "shift-a")

	expectRollback(env.mock)
	_, err := env.svc.Assign(ctx, "shift-b", "mgr-1", shift.AssignRequest{EmployeeID: "emp-1"})

	require.ErrorIs(t, err, shift.ErrOverlappingAssignment)
	var conflict *shift.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "shift-a", conflict.ShiftID)
}

func TestShiftService_Assign_BackToBackAllowed(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	seedShift(env, "shift-b", 17, 21)
	assign(t, env, "shift-a")

	// A shift starting exactly when the previous one ends does not conflict.
	expectCommit(env.mock)
	resp, err := env.svc.Assign(ctx, "shift-b", "mgr-1", shift.AssignRequest{EmployeeID: "emp-1"})

	require.NoError(t, err)
	assert.Equal(t, shift.AssignmentStatusAssigned, resp.Status)
}

func TestShiftService_Assign_Twice(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	assign(t, env, "shift-a")

	expectRollback(env.mock)
	_, err := env.svc.Assign(ctx, "shift-a", "mgr-1", shift.AssignRequest{EmployeeID: "emp-1"})

	assert.ErrorIs(t, err, shift.ErrAlreadyAssigned)
}

func TestShiftService_ConfirmThenComplete(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	expectCommit(env.mock)
	confirmed, err := env.svc.Confirm(ctx, created.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, shift.AssignmentStatusConfirmed, confirmed.Status)

	env.clk.now = time.Date(2024, time.March, 15, 9, 2, 0, 0, time.UTC)
	clockedIn, err := env.svc.ClockIn(ctx, created.ID, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, clockedIn.ClockIn)

	env.clk.now = time.Date(2024, time.March, 15, 17, 5, 0, 0, time.UTC)
	completed, err := env.svc.ClockOut(ctx, created.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, shift.AssignmentStatusCompleted, completed.Status)
	require.NotNil(t, completed.ClockOut)
	assert.Equal(t, env.clk.now, *completed.ClockOut)
}

func TestShiftService_Confirm_OnlyFromAssigned(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	expectCommit(env.mock)
	_, err := env.svc.Confirm(ctx, created.ID, "emp-1")
	require.NoError(t, err)

	expectRollback(env.mock)
	_, err = env.svc.Confirm(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, shift.ErrInvalidAssignmentState)
}

func TestShiftService_Confirm_OwnershipRequired(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	expectRollback(env.mock)
	_, err := env.svc.Confirm(ctx, created.ID, "mgr-1")
	assert.ErrorIs(t, err, shift.ErrAssignmentNotFound)
}

func TestShiftService_Decline_NotifiesAssigner(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	expectCommit(env.mock)
	declined, err := env.svc.Decline(ctx, created.ID, "emp-1", shift.DeclineRequest{Reason: "family emergency"})

	require.NoError(t, err)
	assert.Equal(t, shift.AssignmentStatusDeclined, declined.Status)

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, "mgr-1", last.EmployeeID)
	assert.Equal(t, notification.TypeShiftDeclined, last.Type)
	assert.Contains(t, last.Message, "family emergency")
}

func TestShiftService_ClockOut_WithoutClockIn(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	_, err := env.svc.ClockOut(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, shift.ErrNotClockedIn)
}

func TestShiftService_ClockOut_BeforeClockIn(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	created := assign(t, env, "shift-a")

	env.clk.now = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	_, err := env.svc.ClockIn(ctx, created.ID, "emp-1")
	require.NoError(t, err)

	env.clk.now = time.Date(2024, time.March, 15, 8, 30, 0, 0, time.UTC)
	_, err = env.svc.ClockOut(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, shift.ErrClockOutBeforeClockIn)
}

func TestShiftService_Reassign(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	env.shifts.shifts["shift-c"] = shift.Shift{
		ID:          "shift-c",
		ShiftDate:   time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, time.March, 16, 17, 0, 0, 0, time.UTC),
		LocationID:  "loc-1",
		ShiftTypeID: "type-1",
		CreatedBy:   "mgr-1",
	}
	created := assign(t, env, "shift-a")

	expectCommit(env.mock)
	moved, err := env.svc.Reassign(ctx, created.ID, "mgr-1", shift.ReassignRequest{NewShiftID: "shift-c"})

	require.NoError(t, err)
	assert.Equal(t, created.ID, moved.ID)
	assert.Equal(t, "shift-c", moved.ShiftID)
	assert.Equal(t, shift.AssignmentStatusReassigned, moved.Status)

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, notification.TypeShiftAdjusted, last.Type)
}

func TestShiftService_Reassign_DeclinedAssignment(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	seedShift(env, "shift-b", 18, 21)
	created := assign(t, env, "shift-a")

	expectCommit(env.mock)
	_, err := env.svc.Decline(ctx, created.ID, "emp-1", shift.DeclineRequest{})
	require.NoError(t, err)

	expectRollback(env.mock)
	_, err = env.svc.Reassign(ctx, created.ID, "mgr-1", shift.ReassignRequest{NewShiftID: "shift-b"})
	assert.ErrorIs(t, err, shift.ErrInvalidAssignmentState)
}

func TestShiftService_UpdateShift_NotifiesAssignees(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	assign(t, env, "shift-a")

	expectCommit(env.mock)
	newEnd := "2024-03-15T18:00:00Z"
	updated, err := env.svc.UpdateShift(ctx, "shift-a", "mgr-1", shift.UpdateShiftRequest{EndTime: &newEnd})

	require.NoError(t, err)
	assert.Equal(t, 18, updated.EndTime.Hour())

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, "emp-1", last.EmployeeID)
	assert.Equal(t, notification.TypeShiftUpdated, last.Type)
}

func TestShiftService_DeleteShift_CascadesAssignments(t *testing.T) {
	ctx := context.Background()
	env := newShiftTestEnv(t)
	seedShift(env, "shift-a", 9, 17)
	assign(t, env, "shift-a")

	expectCommit(env.mock)
	err := env.svc.DeleteShift(ctx, "shift-a")

	require.NoError(t, err)
	assert.Empty(t, env.assignments.assignments)
	assert.NotContains(t, env.shifts.shifts, "shift-a")

	last := env.notifier.events[len(env.notifier.events)-1]
	assert.Equal(t, notification.TypeShiftCanceled, last.Type)
}
