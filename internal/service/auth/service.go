package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/auth"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/jwt"
)

type ServiceImpl struct {
	employees employee.Repository
	jwt       jwt.Service
}

func NewService(employees employee.Repository, jwtService jwt.Service) auth.Service {
	return &ServiceImpl{
		employees: employees,
		jwt:       jwtService,
	}
}

// Login implements auth.Service.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employees.GetByEmployeeNumber(ctx, req.EmployeeNumber)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive() {
		return auth.TokenResponse{}, auth.ErrEmployeeInactive
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(emp.ID, emp.EmployeeNumber, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresIn:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}
