package vacation

import (
	"time"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/timerange"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Request is a vacation request. StartDate and EndDate are inclusive
// calendar days (midnight-truncated).
type Request struct {
	ID         string
	EmployeeID string

	StartDate time.Time
	EndDate   time.Time

	Status       Status
	RequestNotes string

	ReviewerID  *string
	ReviewNotes *string
	ReviewedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	EmployeeName *string
}

// Days returns the inclusive day count of the request.
func (r Request) Days() int {
	return timerange.InclusiveDays(r.StartDate, r.EndDate)
}

// IsPending reports whether the request still awaits review.
func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// Blocks reports whether the request occupies its date range for conflict
// purposes. Rejected and cancelled requests never block.
func (r Request) Blocks() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}
