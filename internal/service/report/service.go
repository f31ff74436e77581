package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/report"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/clock"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/timerange"
)

type ServiceImpl struct {
	assignments shift.AssignmentRepository
	vacations   vacation.Repository
	clock       clock.Clock
}

func NewService(assignments shift.AssignmentRepository, vacations vacation.Repository, clk clock.Clock) report.Service {
	return &ServiceImpl{
		assignments: assignments,
		vacations:   vacations,
		clock:       clk,
	}
}

// GetStatistics implements report.Service. Vacation days are clipped to the
// period: a vacation spanning outside the window only counts the days
// inside it.
func (s *ServiceImpl) GetStatistics(ctx context.Context, employeeID string, year int, month int) (report.Statistics, error) {
	windowStart, windowEnd := periodBounds(year, month)

	stats := report.Statistics{
		EmployeeID: employeeID,
		Year:       year,
	}
	if month > 0 {
		stats.Month = &month
	}

	completed, err := s.assignments.ListCompletedForEmployee(ctx, employeeID, windowStart, windowEnd)
	if err != nil {
		return report.Statistics{}, fmt.Errorf("failed to list completed assignments: %w", err)
	}
	stats.TotalShifts = len(completed)
	for _, a := range completed {
		stats.TotalHours += workedHours(a)
	}

	// ListApprovedInRange uses inclusive dates, so the window's last day is
	// the day before the exclusive end.
	lastDay := windowEnd.AddDate(0, 0, -1)
	vacations, err := s.vacations.ListApprovedInRange(ctx, employeeID, windowStart, lastDay)
	if err != nil {
		return report.Statistics{}, fmt.Errorf("failed to list approved vacations: %w", err)
	}
	for _, v := range vacations {
		stats.VacationDays += timerange.ClipDays(v.StartDate, v.EndDate, windowStart, lastDay)
	}

	pending, err := s.vacations.CountPending(ctx, employeeID)
	if err != nil {
		return report.Statistics{}, fmt.Errorf("failed to count pending vacations: %w", err)
	}
	stats.PendingVacationRequests = pending

	now := s.clock.Now()
	upcoming, err := s.assignments.ListActiveForEmployee(ctx, employeeID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return report.Statistics{}, fmt.Errorf("failed to list upcoming assignments: %w", err)
	}
	stats.UpcomingShifts = len(upcoming)

	return stats, nil
}

// GetCalendar implements report.Service. Entries are synthesized from shift
// and vacation state, one per shift plus one per vacation day.
func (s *ServiceImpl) GetCalendar(ctx context.Context, employeeID string, from, to time.Time) ([]report.CalendarEntry, error) {
	entries := make([]report.CalendarEntry, 0)

	assignments, err := s.assignments.ListActiveForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, a := range assignments {
		start, end := a.Shift.StartTime, a.Shift.EndTime
		entries = append(entries, report.CalendarEntry{
			Date:       a.Shift.ShiftDate,
			Kind:       report.EntryShift,
			Title:      shiftTitle(a.Shift),
			RelatedID:  a.ShiftID,
			StartTime:  &start,
			EndTime:    &end,
			Status:     string(a.Status),
			LocationID: &a.Shift.LocationID,
		})
	}

	lastDay := to.AddDate(0, 0, -1)
	vacations, err := s.vacations.ListApprovedInRange(ctx, employeeID, from, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations: %w", err)
	}
	for _, v := range vacations {
		for day := laterDay(v.StartDate, from); !day.After(v.EndDate) && !day.After(lastDay); day = day.AddDate(0, 0, 1) {
			entries = append(entries, report.CalendarEntry{
				Date:      day,
				Kind:      report.EntryVacation,
				Title:     "Vacation",
				RelatedID: v.ID,
				Status:    string(v.Status),
			})
		}
	}

	return entries, nil
}

// workedHours prefers clocked time and falls back to the scheduled duration
// when clock times are absent.
func workedHours(a shift.AssignmentWithShift) float64 {
	if a.ClockIn != nil && a.ClockOut != nil {
		return a.ClockOut.Sub(*a.ClockIn).Hours()
	}
	return a.Shift.Duration().Hours()
}

// periodBounds returns the [start, end) instant window for a year or a
// single month of it.
func periodBounds(year, month int) (time.Time, time.Time) {
	if month > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func shiftTitle(sh shift.Shift) string {
	if sh.ShiftTypeName != nil {
		return *sh.ShiftTypeName
	}
	return "Shift"
}

func laterDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
