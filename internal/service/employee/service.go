package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/repository/postgresql"
)

type ServiceImpl struct {
	db *database.DB
	employee.Repository
	vacations     vacation.Repository
	notifications notification.Repository
	assignments   shift.AssignmentRepository
}

func NewService(db *database.DB, repo employee.Repository, vacations vacation.Repository, notifications notification.Repository, assignments shift.AssignmentRepository) employee.Service {
	return &ServiceImpl{
		db:            db,
		Repository:    repo,
		vacations:     vacations,
		notifications: notifications,
		assignments:   assignments,
	}
}

// Create implements employee.Service.
func (s *ServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.Repository.GetByEmployeeNumber(ctx, req.EmployeeNumber); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNumberExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee number: %w", err)
	}

	if req.ManagerID != nil {
		manager, err := s.Repository.GetByID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
		if !manager.CanApprove() {
			return employee.EmployeeResponse{}, employee.ErrNotAManager
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	created, err := s.Repository.Create(ctx, employee.Employee{
		EmployeeNumber:  req.EmployeeNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		HomeLocationID:  req.HomeLocationID,
		HireDate:        hireDate,
		Department:      req.Department,
		Position:        req.Position,
		ManagerID:       req.ManagerID,
		FullTime:        req.FullTime,
		MaxHoursPerWeek: req.MaxHoursPerWeek,
		Role:            employee.Role(req.Role),
		ManagementLevel: req.ManagementLevel,
		PasswordHash:    string(hash),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// Get implements employee.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.Service.
func (s *ServiceImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
	employees, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return toResponses(employees), total, nil
}

// ListManagedBy implements employee.Service.
func (s *ServiceImpl) ListManagedBy(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.Repository.ListManagedBy(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed employees: %w", err)
	}
	return toResponses(employees), nil
}

// Update implements employee.Service.
func (s *ServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.HomeLocationID != nil {
		emp.HomeLocationID = req.HomeLocationID
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.ManagerID != nil {
		manager, err := s.Repository.GetByID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
		if !manager.CanApprove() {
			return employee.EmployeeResponse{}, employee.ErrNotAManager
		}
		emp.ManagerID = req.ManagerID
	}
	if req.FullTime != nil {
		emp.FullTime = *req.FullTime
	}
	if req.MaxHoursPerWeek != nil {
		emp.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.TerminationDate != nil {
		terminationDate, _ := validator.IsValidDate(*req.TerminationDate)
		emp.TerminationDate = &terminationDate
	}

	if err := s.Repository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToResponse(emp), nil
}

// Delete implements employee.Service. The employee's vacation requests,
// notifications and shift assignments go with them, in one transaction.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.vacations.DeleteByEmployee(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete vacation requests: %w", err)
		}
		if err := s.notifications.DeleteByEmployee(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete notifications: %w", err)
		}
		if err := s.assignments.DeleteByEmployee(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete shift assignments: %w", err)
		}
		if err := s.Repository.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
}

func toResponses(employees []employee.Employee) []employee.EmployeeResponse {
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses
}
