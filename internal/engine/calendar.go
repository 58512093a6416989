package engine

import "time"

// Calendar performs date-only arithmetic in the single timezone the business
// operates in. Every comparison normalizes both operands to midnight in that
// zone, so callers can pass timestamps from any source without UTC drift
// shifting the day.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar bound to loc. A nil location falls back to
// UTC so the zero-ish value is still usable in tests.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Normalize truncates t to midnight in the calendar's timezone.
func (c Calendar) Normalize(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// CountBusinessDays counts the days in [start, end] inclusive whose weekday
// is not Sunday. Returns 0 when end falls before start.
func (c Calendar) CountBusinessDays(start, end time.Time) int {
	from := c.Normalize(start)
	to := c.Normalize(end)
	if to.Before(from) {
		return 0
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// DaysBetweenExcludingSundays returns the business-day difference between
// from and to: the inclusive non-Sunday count of [from, to] minus one, never
// negative. Same-day inputs yield 0, as does to before from.
func (c Calendar) DaysBetweenExcludingSundays(from, to time.Time) int {
	count := c.CountBusinessDays(from, to)
	if count <= 1 {
		return 0
	}
	return count - 1
}

// CalendarDaysBetween returns the number of whole calendar days from from to
// to, never negative. Counting day by day keeps the result exact across DST
// transitions.
func (c Calendar) CalendarDaysBetween(from, to time.Time) int {
	f := c.Normalize(from)
	t := c.Normalize(to)
	if t.Before(f) {
		return 0
	}

	days := 0
	for d := f; d.Before(t); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
