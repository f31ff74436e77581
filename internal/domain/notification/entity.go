package notification

import "time"

type Type string

const (
	TypeShiftAssignment Type = "SHIFT_ASSIGNMENT"
	TypeShiftUnassigned Type = "SHIFT_UNASSIGNED"
	TypeShiftUpdated    Type = "SHIFT_UPDATED"
	TypeShiftCanceled   Type = "SHIFT_CANCELED"
	TypeShiftAdjusted   Type = "SHIFT_ADJUSTED"
	TypeShiftDeclined   Type = "SHIFT_DECLINED"

	TypeVacationRequest   Type = "VACATION_REQUEST"
	TypeVacationUpdated   Type = "VACATION_UPDATED"
	TypeVacationApproved  Type = "VACATION_APPROVED"
	TypeVacationRejected  Type = "VACATION_REJECTED"
	TypeVacationCancelled Type = "VACATION_CANCELLED"
)

type Notification struct {
	ID         string
	EmployeeID string
	Type       Type
	Title      string
	Message    string
	// RelatedID points at the shift, assignment or vacation request the
	// notification is about.
	RelatedID *string
	Read      bool
	ReadAt    *time.Time
	EmailSent bool
	CreatedAt time.Time
}
