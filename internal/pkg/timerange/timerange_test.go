package timerange

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		startA, endA, startB, endB     time.Time
		want                           bool
	}{
		{
			name:   "back to back shifts do not overlap",
			startA: at(2024, time.March, 15, 9), endA: at(2024, time.March, 15, 17),
			startB: at(2024, time.March, 15, 17), endB: at(2024, time.March, 15, 21),
			want: false,
		},
		{
			name:   "one hour of shared time",
			startA: at(2024, time.March, 15, 9), endA: at(2024, time.March, 15, 17),
			startB: at(2024, time.March, 15, 16), endB: at(2024, time.March, 15, 20),
			want: true,
		},
		{
			name:   "contained range",
			startA: at(2024, time.March, 15, 8), endA: at(2024, time.March, 15, 20),
			startB: at(2024, time.March, 15, 10), endB: at(2024, time.March, 15, 12),
			want: true,
		},
		{
			name:   "identical ranges",
			startA: at(2024, time.March, 15, 9), endA: at(2024, time.March, 15, 17),
			startB: at(2024, time.March, 15, 9), endB: at(2024, time.March, 15, 17),
			want: true,
		},
		{
			name:   "disjoint days",
			startA: at(2024, time.March, 15, 9), endA: at(2024, time.March, 15, 17),
			startB: at(2024, time.March, 16, 9), endB: at(2024, time.March, 16, 17),
			want: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.startA, c.endA, c.startB, c.endB); got != c.want {
				t.Errorf("Overlaps() = %v, want %v", got, c.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(c.startB, c.endB, c.startA, c.endA); got != c.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDatesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB time.Time
		want                       bool
	}{
		{
			name:   "shared boundary day overlaps",
			startA: day(2024, time.July, 1), endA: day(2024, time.July, 5),
			startB: day(2024, time.July, 5), endB: day(2024, time.July, 10),
			want: true,
		},
		{
			name:   "adjacent days do not overlap",
			startA: day(2024, time.July, 1), endA: day(2024, time.July, 5),
			startB: day(2024, time.July, 6), endB: day(2024, time.July, 10),
			want: false,
		},
		{
			name:   "single day inside range",
			startA: day(2024, time.July, 3), endA: day(2024, time.July, 3),
			startB: day(2024, time.July, 1), endB: day(2024, time.July, 5),
			want: true,
		},
		{
			name:   "same single day",
			startA: day(2024, time.July, 3), endA: day(2024, time.July, 3),
			startB: day(2024, time.July, 3), endB: day(2024, time.July, 3),
			want: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DatesOverlap(c.startA, c.endA, c.startB, c.endB); got != c.want {
				t.Errorf("DatesOverlap() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"single day", day(2024, time.July, 3), day(2024, time.July, 3), 1},
		{"five days", day(2024, time.July, 1), day(2024, time.July, 5), 5},
		{"across month boundary", day(2024, time.June, 28), day(2024, time.July, 2), 5},
		{"inverted range", day(2024, time.July, 5), day(2024, time.July, 1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InclusiveDays(c.start, c.end); got != c.want {
				t.Errorf("InclusiveDays() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestClipDays(t *testing.T) {
	windowStart := day(2024, time.June, 1)
	windowEnd := day(2024, time.June, 30)

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"fully inside", day(2024, time.June, 17), day(2024, time.June, 19), 3},
		{"spills into previous month", day(2024, time.May, 28), day(2024, time.June, 2), 2},
		{"spills into next month", day(2024, time.June, 29), day(2024, time.July, 5), 2},
		{"covers whole window", day(2024, time.May, 1), day(2024, time.July, 31), 30},
		{"entirely outside", day(2024, time.July, 10), day(2024, time.July, 12), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClipDays(c.start, c.end, windowStart, windowEnd); got != c.want {
				t.Errorf("ClipDays() = %d, want %d", got, c.want)
			}
		})
	}
}
