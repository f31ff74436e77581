// Package report holds read-only projections derived from shift and
// vacation state. Nothing here is a source of truth.
package report

import "time"

// Statistics summarizes one employee's activity over a reporting period.
// Vacation days are clipped to the period boundaries.
type Statistics struct {
	EmployeeID              string  `json:"employee_id"`
	Year                    int     `json:"year"`
	Month                   *int    `json:"month,omitempty"`
	TotalShifts             int     `json:"total_shifts"`
	TotalHours              float64 `json:"total_hours"`
	VacationDays            int     `json:"vacation_days"`
	PendingVacationRequests int     `json:"pending_vacation_requests"`
	UpcomingShifts          int     `json:"upcoming_shifts"`
}

type EntryKind string

const (
	EntryShift    EntryKind = "SHIFT"
	EntryVacation EntryKind = "VACATION"
)

// CalendarEntry is a display projection, one entry per shift or per
// vacation day. Regenerating a calendar is idempotent.
type CalendarEntry struct {
	Date       time.Time  `json:"date"`
	Kind       EntryKind  `json:"kind"`
	Title      string     `json:"title"`
	RelatedID  string     `json:"related_id"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Status     string     `json:"status"`
	LocationID *string    `json:"location_id,omitempty"`
}
