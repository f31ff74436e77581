package employee

import "time"

// Role replaces the Person/Employee/Manager inheritance of older systems
// with a flat tag. Capability checks go through CanApprove.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

var RoleValues = []string{
	string(RoleEmployee),
	string(RoleManager),
}

// Employee is the single person record of the system. Managers are
// employees with RoleManager and a ManagementLevel.
type Employee struct {
	ID             string
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	HomeLocationID *string

	HireDate        time.Time
	TerminationDate *time.Time
	Department      string
	Position        string
	ManagerID       *string
	FullTime        bool
	MaxHoursPerWeek int

	Role            Role
	ManagementLevel *int

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// CanApprove reports whether this employee may review vacation requests and
// manage shift assignments.
func (e Employee) CanApprove() bool {
	return e.Role == RoleManager
}

// IsActive reports whether the employee has not been terminated.
func (e Employee) IsActive() bool {
	return e.TerminationDate == nil
}
