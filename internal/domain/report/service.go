package report

import (
	"context"
	"time"
)

type Service interface {
	// GetStatistics aggregates one employee's period. Month 0 means the
	// whole year.
	GetStatistics(ctx context.Context, employeeID string, year int, month int) (Statistics, error)
	// GetCalendar projects shifts and vacation days for display.
	GetCalendar(ctx context.Context, employeeID string, from, to time.Time) ([]CalendarEntry, error)
}
