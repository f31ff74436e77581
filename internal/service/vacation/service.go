package vacation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/clock"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	db *database.DB
	vacation.Repository
	assignments shift.AssignmentRepository
	employees   employee.Repository
	notifier    notification.Service
	clock       clock.Clock
}

func NewService(db *database.DB, repo vacation.Repository, assignments shift.AssignmentRepository, employees employee.Repository, notifier notification.Service, clk clock.Clock) vacation.Service {
	return &ServiceImpl{
		db:          db,
		Repository:  repo,
		assignments: assignments,
		employees:   employees,
		notifier:    notifier,
		clock:       clk,
	}
}

// Create implements vacation.Service.
func (s *ServiceImpl) Create(ctx context.Context, employeeID string, req vacation.CreateRequest) (vacation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.RequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	if startDate.Before(validator.TruncateToDay(s.clock.Now())) {
		return vacation.RequestResponse{}, vacation.ErrStartDateInPast
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var created vacation.Request
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.checkConflicts(txCtx, emp.ID, startDate, endDate, ""); err != nil {
			return err
		}

		created, err = s.Repository.Create(txCtx, vacation.Request{
			EmployeeID:   emp.ID,
			StartDate:    startDate,
			EndDate:      endDate,
			Status:       vacation.StatusPending,
			RequestNotes: req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create vacation request: %w", err)
		}

		if emp.ManagerID != nil {
			s.notifyManager(txCtx, *emp.ManagerID, created, emp)
		}
		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	return vacation.ToResponse(created), nil
}

// Update implements vacation.Service. Only the owner may update, and only
// while the request is still pending.
func (s *ServiceImpl) Update(ctx context.Context, id string, actorID string, req vacation.UpdateRequest) (vacation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.RequestResponse{}, err
	}

	var updated vacation.Request
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to get vacation request: %w", err)
		}
		if request.EmployeeID != actorID {
			return vacation.ErrNotRequestOwner
		}
		if !request.IsPending() {
			return vacation.ErrRequestNotPending
		}

		if req.StartDate != nil {
			request.StartDate, _ = validator.IsValidDate(*req.StartDate)
		}
		if req.EndDate != nil {
			request.EndDate, _ = validator.IsValidDate(*req.EndDate)
		}
		if req.Notes != nil {
			request.RequestNotes = *req.Notes
		}

		if request.EndDate.Before(request.StartDate) {
			return validator.ValidationErrors{{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			}}
		}
		if request.StartDate.Before(validator.TruncateToDay(s.clock.Now())) {
			return vacation.ErrStartDateInPast
		}

		if err := s.checkConflicts(txCtx, request.EmployeeID, request.StartDate, request.EndDate, request.ID); err != nil {
			return err
		}

		if err := s.Repository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update vacation request: %w", err)
		}
		updated = request

		emp, err := s.employees.GetByID(txCtx, request.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if emp.ManagerID != nil {
			s.notify(txCtx, *emp.ManagerID, notification.TypeVacationUpdated,
				"Vacation request updated",
				fmt.Sprintf("%s changed their vacation request to %s - %s.",
					emp.FullName(), formatDate(request.StartDate), formatDate(request.EndDate)),
				request.ID)
		}
		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	return vacation.ToResponse(updated), nil
}

// Get implements vacation.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (vacation.RequestResponse, error) {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return vacation.ToResponse(request), nil
}

// List implements vacation.Service.
func (s *ServiceImpl) List(ctx context.Context, filter vacation.ListFilter) ([]vacation.RequestResponse, int, error) {
	requests, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vacation requests: %w", err)
	}
	return vacation.ToResponses(requests), total, nil
}

// Approve implements vacation.Service.
func (s *ServiceImpl) Approve(ctx context.Context, id string, reviewerID string, req vacation.ReviewRequest) (vacation.RequestResponse, error) {
	var approved vacation.Request
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.loadForReview(txCtx, id, reviewerID)
		if err != nil {
			return err
		}

		// Race protection: another request may have been approved since
		// this one was created.
		overlapping, err := s.Repository.FindOverlapping(txCtx, request.EmployeeID, request.StartDate, request.EndDate, request.ID)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		for _, other := range overlapping {
			if other.Status == vacation.StatusApproved {
				return vacation.NewVacationConflict(other.ID, other.StartDate, other.EndDate)
			}
		}

		now := s.clock.Now()
		request.Status = vacation.StatusApproved
		request.ReviewerID = &reviewerID
		request.ReviewedAt = &now
		if req.Notes != "" {
			request.ReviewNotes = &req.Notes
		}

		if err := s.Repository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update vacation request: %w", err)
		}
		approved = request

		s.notify(txCtx, request.EmployeeID, notification.TypeVacationApproved,
			"Vacation request approved",
			fmt.Sprintf("Your vacation from %s to %s was approved.",
				formatDate(request.StartDate), formatDate(request.EndDate)),
			request.ID)
		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	return vacation.ToResponse(approved), nil
}

// Reject implements vacation.Service. Review notes are mandatory.
func (s *ServiceImpl) Reject(ctx context.Context, id string, reviewerID string, req vacation.ReviewRequest) (vacation.RequestResponse, error) {
	if err := req.ValidateRejection(); err != nil {
		return vacation.RequestResponse{}, err
	}

	var rejected vacation.Request
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.loadForReview(txCtx, id, reviewerID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		request.Status = vacation.StatusRejected
		request.ReviewerID = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNotes = &req.Notes

		if err := s.Repository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update vacation request: %w", err)
		}
		rejected = request

		s.notify(txCtx, request.EmployeeID, notification.TypeVacationRejected,
			"Vacation request rejected",
			fmt.Sprintf("Your vacation from %s to %s was rejected: %s",
				formatDate(request.StartDate), formatDate(request.EndDate), req.Notes),
			request.ID)
		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	return vacation.ToResponse(rejected), nil
}

// Cancel implements vacation.Service. Pending and approved requests may be
// cancelled; rejected and cancelled ones are terminal.
func (s *ServiceImpl) Cancel(ctx context.Context, id string, actorID string) (vacation.RequestResponse, error) {
	var cancelled vacation.Request
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.Repository.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to get vacation request: %w", err)
		}
		if request.EmployeeID != actorID {
			return vacation.ErrNotRequestOwner
		}
		if request.Status != vacation.StatusPending && request.Status != vacation.StatusApproved {
			return vacation.ErrRequestNotCancelable
		}

		request.Status = vacation.StatusCancelled
		if err := s.Repository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update vacation request: %w", err)
		}
		cancelled = request

		if request.ReviewerID != nil {
			emp, err := s.employees.GetByID(txCtx, request.EmployeeID)
			if err != nil {
				return fmt.Errorf("failed to get employee: %w", err)
			}
			s.notify(txCtx, *request.ReviewerID, notification.TypeVacationCancelled,
				"Vacation request cancelled",
				fmt.Sprintf("%s cancelled their vacation from %s to %s.",
					emp.FullName(), formatDate(request.StartDate), formatDate(request.EndDate)),
				request.ID)
		}
		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	return vacation.ToResponse(cancelled), nil
}

// Delete implements vacation.Service. Only pending requests may be removed
// outright; processed ones keep their audit trail and go through Cancel.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get vacation request: %w", err)
	}
	if !request.IsPending() {
		return vacation.ErrRequestNotPending
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vacation request: %w", err)
	}
	return nil
}

// loadForReview fetches a pending request and verifies the reviewer is the
// owning employee's manager.
func (s *ServiceImpl) loadForReview(ctx context.Context, id string, reviewerID string) (vacation.Request, error) {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return vacation.Request{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	if !request.IsPending() {
		return vacation.Request{}, vacation.ErrRequestNotPending
	}

	reviewer, err := s.employees.GetByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return vacation.Request{}, vacation.ErrNotEmployeesManager
		}
		return vacation.Request{}, fmt.Errorf("failed to get reviewer: %w", err)
	}
	if !reviewer.CanApprove() {
		return vacation.Request{}, vacation.ErrNotEmployeesManager
	}

	emp, err := s.employees.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return vacation.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.ManagerID == nil || *emp.ManagerID != reviewer.ID {
		return vacation.Request{}, vacation.ErrNotEmployeesManager
	}

	return request, nil
}

// checkConflicts rejects ranges that touch the employee's pending or
// approved vacations, or any active shift assignment. Vacation dates are
// inclusive whole days; shift conflicts are checked against the instant
// window covering those days.
func (s *ServiceImpl) checkConflicts(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) error {
	overlapping, err := s.Repository.FindOverlapping(ctx, employeeID, startDate, endDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if len(overlapping) > 0 {
		other := overlapping[0]
		return vacation.NewVacationConflict(other.ID, other.StartDate, other.EndDate)
	}

	windowEnd := endDate.AddDate(0, 0, 1)
	assignments, err := s.assignments.ListActiveForEmployee(ctx, employeeID, startDate, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to check shift assignments: %w", err)
	}
	if len(assignments) > 0 {
		a := assignments[0]
		return vacation.NewShiftConflict(a.ShiftID, a.Shift.StartTime, a.Shift.EndTime)
	}

	return nil
}

func (s *ServiceImpl) notifyManager(ctx context.Context, managerID string, request vacation.Request, emp employee.Employee) {
	s.notify(ctx, managerID, notification.TypeVacationRequest,
		"New vacation request",
		fmt.Sprintf("%s requested vacation from %s to %s (%d days).",
			emp.FullName(), formatDate(request.StartDate), formatDate(request.EndDate), request.Days()),
		request.ID)
}

func (s *ServiceImpl) notify(ctx context.Context, employeeID string, typ notification.Type, title, message, relatedID string) {
	// Notification failures are logged by the dispatcher and never fail the
	// triggering operation.
	_ = s.notifier.Notify(ctx, notification.Event{
		EmployeeID: employeeID,
		Type:       typ,
		Title:      title,
		Message:    message,
		RelatedID:  &relatedID,
	})
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
