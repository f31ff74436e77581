package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/clock"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/timerange"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	db *database.DB
	shift.Repository
	types       shift.TypeRepository
	assignments shift.AssignmentRepository
	employees   employee.Repository
	locations   location.Repository
	notifier    notification.Service
	clock       clock.Clock
}

func NewService(db *database.DB, repo shift.Repository, types shift.TypeRepository, assignments shift.AssignmentRepository, employees employee.Repository, locations location.Repository, notifier notification.Service, clk clock.Clock) shift.Service {
	return &ServiceImpl{
		db:          db,
		Repository:  repo,
		types:       types,
		assignments: assignments,
		employees:   employees,
		locations:   locations,
		notifier:    notifier,
		clock:       clk,
	}
}

// CreateShift implements shift.Service.
func (s *ServiceImpl) CreateShift(ctx context.Context, creatorID string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	shiftDate, _ := validator.IsValidDate(req.ShiftDate)
	startTime, _ := validator.IsValidDateTime(req.StartTime)
	endTime, _ := validator.IsValidDateTime(req.EndTime)

	if _, err := s.locations.GetByID(ctx, req.LocationID); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get location: %w", err)
	}
	if _, err := s.types.GetByID(ctx, req.ShiftTypeID); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift type: %w", err)
	}

	created, err := s.Repository.Create(ctx, shift.Shift{
		ShiftDate:   shiftDate,
		StartTime:   startTime,
		EndTime:     endTime,
		LocationID:  req.LocationID,
		ShiftTypeID: req.ShiftTypeID,
		Notes:       req.Notes,
		CreatedBy:   creatorID,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.ToShiftResponse(created), nil
}

// GetShift implements shift.Service.
func (s *ServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	sh, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift.ToShiftResponse(sh), nil
}

// ListShifts implements shift.Service.
func (s *ServiceImpl) ListShifts(ctx context.Context, startDate, endDate time.Time, locationID string) ([]shift.ShiftResponse, error) {
	var (
		shifts []shift.Shift
		err    error
	)
	if locationID != "" {
		shifts, err = s.Repository.ListByLocation(ctx, locationID, startDate, endDate)
	} else {
		shifts, err = s.Repository.ListByDateRange(ctx, startDate, endDate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToShiftResponse(sh))
	}
	return responses, nil
}

// UpdateShift implements shift.Service. Every employee still actively
// assigned to the shift is re-notified.
func (s *ServiceImpl) UpdateShift(ctx context.Context, id string, actorID string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.Shift
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		sh, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}

		if req.StartTime != nil {
			sh.StartTime, _ = validator.IsValidDateTime(*req.StartTime)
		}
		if req.EndTime != nil {
			sh.EndTime, _ = validator.IsValidDateTime(*req.EndTime)
		}
		if req.LocationID != nil {
			if _, err := s.locations.GetByID(txCtx, *req.LocationID); err != nil {
				return fmt.Errorf("failed to get location: %w", err)
			}
			sh.LocationID = *req.LocationID
		}
		if req.ShiftTypeID != nil {
			if _, err := s.types.GetByID(txCtx, *req.ShiftTypeID); err != nil {
				return fmt.Errorf("failed to get shift type: %w", err)
			}
			sh.ShiftTypeID = *req.ShiftTypeID
		}
		if req.Notes != nil {
			sh.Notes = req.Notes
		}

		if !sh.EndTime.After(sh.StartTime) {
			return validator.ValidationErrors{{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			}}
		}
		if !validator.TruncateToDay(sh.StartTime).Equal(validator.TruncateToDay(sh.EndTime)) {
			return validator.ValidationErrors{{
				Field:   "end_time",
				Message: "shift must start and end on the same day",
			}}
		}

		if err := s.Repository.Update(txCtx, sh); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		updated = sh

		return s.notifyAssigned(txCtx, sh, notification.TypeShiftUpdated,
			"Shift updated",
			fmt.Sprintf("Your shift on %s was changed to %s - %s.",
				sh.ShiftDate.Format("2006-01-02"),
				sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04")))
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToShiftResponse(updated), nil
}

// DeleteShift implements shift.Service. Deleting a shift removes all of its
// assignments and notifies each actively assigned employee.
func (s *ServiceImpl) DeleteShift(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		sh, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}

		if err := s.notifyAssigned(txCtx, sh, notification.TypeShiftCanceled,
			"Shift cancelled",
			fmt.Sprintf("Your shift on %s (%s - %s) was cancelled.",
				sh.ShiftDate.Format("2006-01-02"),
				sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04"))); err != nil {
			return err
		}

		if err := s.assignments.DeleteByShift(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete shift assignments: %w", err)
		}
		if err := s.Repository.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete shift: %w", err)
		}
		return nil
	})
}

// Assign implements shift.Service. An employee can hold at most one active
// assignment per shift and never two active assignments whose shift ranges
// overlap.
func (s *ServiceImpl) Assign(ctx context.Context, shiftID string, assignerID string, req shift.AssignRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	sh, err := s.Repository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var created shift.Assignment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.assignments.GetActiveByEmployeeAndShift(txCtx, emp.ID, sh.ID); err == nil {
			return shift.ErrAlreadyAssigned
		} else if !errors.Is(err, shift.ErrAssignmentNotFound) {
			return fmt.Errorf("failed to check existing assignment: %w", err)
		}

		if err := s.checkOverlap(txCtx, emp.ID, sh, ""); err != nil {
			return err
		}

		created, err = s.assignments.Create(txCtx, shift.Assignment{
			EmployeeID: emp.ID,
			ShiftID:    sh.ID,
			Status:     shift.AssignmentStatusAssigned,
			AssignedBy: assignerID,
			AssignedAt: s.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		s.notify(txCtx, emp.ID, notification.TypeShiftAssignment,
			"New shift assignment",
			fmt.Sprintf("You were assigned a shift on %s from %s to %s.",
				sh.ShiftDate.Format("2006-01-02"),
				sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04")),
			created.ID)
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToAssignmentResponse(created), nil
}

// Unassign implements shift.Service.
func (s *ServiceImpl) Unassign(ctx context.Context, assignmentID string, actorID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		a, err := s.assignments.GetByID(txCtx, assignmentID)
		if err != nil {
			return fmt.Errorf("failed to get assignment: %w", err)
		}
		if !a.IsActive() {
			return shift.ErrAssignmentNotFound
		}

		sh, err := s.Repository.GetByID(txCtx, a.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}

		if err := s.assignments.Delete(txCtx, a.ID); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}

		s.notify(txCtx, a.EmployeeID, notification.TypeShiftUnassigned,
			"Shift unassigned",
			fmt.Sprintf("You were removed from the shift on %s (%s - %s).",
				sh.ShiftDate.Format("2006-01-02"),
				sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04")),
			a.ID)
		return nil
	})
}

// Reassign implements shift.Service. The assignment keeps its identity but
// points at the new shift.
func (s *ServiceImpl) Reassign(ctx context.Context, assignmentID string, actorID string, req shift.ReassignRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	var updated shift.Assignment
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		a, err := s.assignments.GetByID(txCtx, assignmentID)
		if err != nil {
			return fmt.Errorf("failed to get assignment: %w", err)
		}
		if !a.IsActive() {
			return shift.ErrInvalidAssignmentState
		}

		oldShift, err := s.Repository.GetByID(txCtx, a.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}
		newShift, err := s.Repository.GetByID(txCtx, req.NewShiftID)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}

		if err := s.checkOverlap(txCtx, a.EmployeeID, newShift, a.ID); err != nil {
			return err
		}

		a.ShiftID = newShift.ID
		a.Status = shift.AssignmentStatusReassigned
		a.AssignedAt = s.clock.Now()
		if err := s.assignments.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		updated = a

		s.notify(txCtx, a.EmployeeID, notification.TypeShiftAdjusted,
			"Shift reassigned",
			fmt.Sprintf("Your shift moved from %s (%s - %s) to %s (%s - %s).",
				oldShift.ShiftDate.Format("2006-01-02"),
				oldShift.StartTime.Format("15:04"), oldShift.EndTime.Format("15:04"),
				newShift.ShiftDate.Format("2006-01-02"),
				newShift.StartTime.Format("15:04"), newShift.EndTime.Format("15:04")),
			a.ID)
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToAssignmentResponse(updated), nil
}

// Confirm implements shift.Service.
func (s *ServiceImpl) Confirm(ctx context.Context, assignmentID string, employeeID string) (shift.AssignmentResponse, error) {
	var updated shift.Assignment
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		a, err := s.loadOwned(txCtx, assignmentID, employeeID)
		if err != nil {
			return err
		}
		if a.Status != shift.AssignmentStatusAssigned {
			return shift.ErrInvalidAssignmentState
		}

		a.Status = shift.AssignmentStatusConfirmed
		if err := s.assignments.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToAssignmentResponse(updated), nil
}

// Decline implements shift.Service. Declining frees the shift and notifies
// whoever assigned it.
func (s *ServiceImpl) Decline(ctx context.Context, assignmentID string, employeeID string, req shift.DeclineRequest) (shift.AssignmentResponse, error) {
	var updated shift.Assignment
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		a, err := s.loadOwned(txCtx, assignmentID, employeeID)
		if err != nil {
			return err
		}
		if a.Status != shift.AssignmentStatusAssigned && a.Status != shift.AssignmentStatusConfirmed {
			return shift.ErrInvalidAssignmentState
		}

		sh, err := s.Repository.GetByID(txCtx, a.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}
		emp, err := s.employees.GetByID(txCtx, a.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		a.Status = shift.AssignmentStatusDeclined
		if err := s.assignments.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		updated = a

		message := fmt.Sprintf("%s declined the shift on %s (%s - %s).",
			emp.FullName(), sh.ShiftDate.Format("2006-01-02"),
			sh.StartTime.Format("15:04"), sh.EndTime.Format("15:04"))
		if req.Reason != "" {
			message = fmt.Sprintf("%s Reason: %s", message, req.Reason)
		}
		s.notify(txCtx, a.AssignedBy, notification.TypeShiftDeclined, "Shift declined", message, a.ID)
		return nil
	})
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	return shift.ToAssignmentResponse(updated), nil
}

// ClockIn implements shift.Service.
func (s *ServiceImpl) ClockIn(ctx context.Context, assignmentID string, employeeID string) (shift.AssignmentResponse, error) {
	a, err := s.loadOwned(ctx, assignmentID, employeeID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	if !a.IsActive() {
		return shift.AssignmentResponse{}, shift.ErrInvalidAssignmentState
	}

	now := s.clock.Now()
	a.ClockIn = &now
	if err := s.assignments.Update(ctx, a); err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to update assignment: %w", err)
	}
	return shift.ToAssignmentResponse(a), nil
}

// ClockOut implements shift.Service. With both clock times recorded the
// assignment completes.
func (s *ServiceImpl) ClockOut(ctx context.Context, assignmentID string, employeeID string) (shift.AssignmentResponse, error) {
	a, err := s.loadOwned(ctx, assignmentID, employeeID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	if !a.IsActive() {
		return shift.AssignmentResponse{}, shift.ErrInvalidAssignmentState
	}
	if a.ClockIn == nil {
		return shift.AssignmentResponse{}, shift.ErrNotClockedIn
	}

	now := s.clock.Now()
	if now.Before(*a.ClockIn) {
		return shift.AssignmentResponse{}, shift.ErrClockOutBeforeClockIn
	}

	a.ClockOut = &now
	a.Status = shift.AssignmentStatusCompleted
	if err := s.assignments.Update(ctx, a); err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to update assignment: %w", err)
	}
	return shift.ToAssignmentResponse(a), nil
}

// ListEmployeeAssignments implements shift.Service.
func (s *ServiceImpl) ListEmployeeAssignments(ctx context.Context, employeeID string, from, to time.Time) ([]shift.AssignmentResponse, error) {
	assignments, err := s.assignments.ListActiveForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, shift.ToAssignmentResponse(a.Assignment))
	}
	return responses, nil
}

// CreateShiftType implements shift.Service.
func (s *ServiceImpl) CreateShiftType(ctx context.Context, req shift.CreateShiftTypeRequest) (shift.ShiftType, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftType{}, err
	}
	created, err := s.types.Create(ctx, shift.ShiftType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return shift.ShiftType{}, fmt.Errorf("failed to create shift type: %w", err)
	}
	return created, nil
}

// ListShiftTypes implements shift.Service.
func (s *ServiceImpl) ListShiftTypes(ctx context.Context) ([]shift.ShiftType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	return types, nil
}

// checkOverlap fails when the employee holds another active assignment whose
// shift range overlaps sh's range (half-open instants).
func (s *ServiceImpl) checkOverlap(ctx context.Context, employeeID string, sh shift.Shift, excludeAssignmentID string) error {
	others, err := s.assignments.ListActiveForEmployee(ctx, employeeID, sh.StartTime, sh.EndTime)
	if err != nil {
		return fmt.Errorf("failed to list active assignments: %w", err)
	}
	for _, other := range others {
		if other.ID == excludeAssignmentID {
			continue
		}
		if timerange.Overlaps(sh.StartTime, sh.EndTime, other.Shift.StartTime, other.Shift.EndTime) {
			return &shift.ConflictError{
				AssignmentID: other.ID,
				ShiftID:      other.ShiftID,
				StartTime:    other.Shift.StartTime,
				EndTime:      other.Shift.EndTime,
			}
		}
	}
	return nil
}

func (s *ServiceImpl) loadOwned(ctx context.Context, assignmentID, employeeID string) (shift.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}
	if a.EmployeeID != employeeID {
		return shift.Assignment{}, shift.ErrAssignmentNotFound
	}
	return a, nil
}

// notifyAssigned fans a notification out to every active assignee of sh.
func (s *ServiceImpl) notifyAssigned(ctx context.Context, sh shift.Shift, typ notification.Type, title, message string) error {
	assignments, err := s.assignments.ListActiveForShift(ctx, sh.ID)
	if err != nil {
		return fmt.Errorf("failed to list shift assignments: %w", err)
	}
	for _, a := range assignments {
		s.notify(ctx, a.EmployeeID, typ, title, message, a.ID)
	}
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, employeeID string, typ notification.Type, title, message, relatedID string) {
	_ = s.notifier.Notify(ctx, notification.Event{
		EmployeeID: employeeID,
		Type:       typ,
		Title:      title,
		Message:    message,
		RelatedID:  &relatedID,
	})
}
