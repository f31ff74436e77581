// Package timerange holds the overlap rules shared by shift and vacation
// conflict checks.
//
// Shifts are half-open instant ranges: a shift ending at 17:00 does not
// overlap a shift starting at 17:00. Vacations are inclusive whole-day
// ranges: a vacation ending July 5 overlaps a vacation starting July 5.
package timerange

import "time"

// Overlaps reports whether two half-open instant ranges [startA, endA) and
// [startB, endB) intersect.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// DatesOverlap reports whether two inclusive date ranges [startA, endA] and
// [startB, endB] share at least one day. Inputs are expected to be
// midnight-truncated dates.
func DatesOverlap(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !endA.Before(startB)
}

// InclusiveDays returns the number of days covered by the inclusive date
// range [start, end]. A single-day range counts as 1.
func InclusiveDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// ClipDays returns the number of days of [start, end] that fall inside the
// inclusive window [windowStart, windowEnd].
func ClipDays(start, end, windowStart, windowEnd time.Time) int {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	return InclusiveDays(start, end)
}
