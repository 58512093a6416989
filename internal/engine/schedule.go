package engine

import (
	"time"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

// Frequency is the cadence at which loan installments fall due.
type Frequency string

const (
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

// CountSource says which inputs drive the installment count. Callers select
// it explicitly instead of guessing from which fields happen to be set.
type CountSource string

const (
	CountByDates CountSource = "DATES"
	CountByTerm  CountSource = "TERM"
)

const (
	daysPerWeek           = 7
	daysPerFortnight      = 14
	dailyPaymentsPerMonth = 30
)

// Scheduler derives installment counts and end dates for a loan.
type Scheduler struct {
	cal Calendar
}

func NewScheduler(cal Calendar) Scheduler {
	return Scheduler{cal: cal}
}

// ScheduleInput selects the count source and carries the fields that source
// reads. CountByDates uses Start/End, CountByTerm uses TermMonths; the unused
// fields are ignored.
type ScheduleInput struct {
	Source     CountSource
	Start      time.Time
	End        time.Time
	TermMonths int
	Frequency  Frequency
}

// Installments dispatches on the explicitly selected count source.
func (s Scheduler) Installments(in ScheduleInput) (int, error) {
	switch in.Source {
	case CountByDates:
		return s.InstallmentsBetween(in.Start, in.End, in.Frequency)
	case CountByTerm:
		return s.InstallmentsForTerm(in.TermMonths, in.Frequency)
	default:
		return 0, customError.WrapInvalidCountSource(string(in.Source))
	}
}

// InstallmentsBetween counts installments from an explicit start/end date
// pair. DAILY counts business days (Sundays excluded) in [start, end];
// WEEKLY and BIWEEKLY divide the elapsed calendar days by the period length
// rounding up; MONTHLY uses whole month differences, floored at 1.
func (s Scheduler) InstallmentsBetween(start, end time.Time, frequency Frequency) (int, error) {
	from := s.cal.Normalize(start)
	to := s.cal.Normalize(end)
	if !from.Before(to) {
		return 0, customError.WrapInvalidDateRange(from, to)
	}

	switch frequency {
	case FrequencyDaily:
		return s.cal.CountBusinessDays(from, to), nil
	case FrequencyWeekly:
		return ceilDiv(s.cal.CalendarDaysBetween(from, to), daysPerWeek), nil
	case FrequencyBiweekly:
		return ceilDiv(s.cal.CalendarDaysBetween(from, to), daysPerFortnight), nil
	case FrequencyMonthly:
		months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
		if months < 1 {
			months = 1
		}
		return months, nil
	default:
		return 0, customError.WrapInvalidFrequency(string(frequency))
	}
}

// InstallmentsForTerm approximates the installment count from a term in
// months: 30 daily, 4 weekly, or 2 biweekly payments per month. It is not
// calendar-exact and must only be used when no end date is available.
func (s Scheduler) InstallmentsForTerm(termMonths int, frequency Frequency) (int, error) {
	if termMonths <= 0 {
		return 0, customError.WrapInvalidTerm(termMonths)
	}

	switch frequency {
	case FrequencyDaily:
		return termMonths * dailyPaymentsPerMonth, nil
	case FrequencyWeekly:
		return termMonths * 4, nil
	case FrequencyBiweekly:
		return termMonths * 2, nil
	case FrequencyMonthly:
		return termMonths, nil
	default:
		return 0, customError.WrapInvalidFrequency(string(frequency))
	}
}

// DeriveEndDate computes the end date matching InstallmentsForTerm: DAILY
// advances months*30 business days skipping Sundays, the other frequencies
// advance the equivalent weeks or months. Feeding the result back through
// InstallmentsBetween reproduces the term-driven count within 1 (the
// inclusive date-driven count picks up the start day at range boundaries).
func (s Scheduler) DeriveEndDate(start time.Time, frequency Frequency, termMonths int) (time.Time, error) {
	if termMonths <= 0 {
		return time.Time{}, customError.WrapInvalidTerm(termMonths)
	}
	from := s.cal.Normalize(start)

	switch frequency {
	case FrequencyDaily:
		return s.addBusinessDays(from, termMonths*dailyPaymentsPerMonth), nil
	case FrequencyWeekly:
		return from.AddDate(0, 0, termMonths*4*daysPerWeek), nil
	case FrequencyBiweekly:
		return from.AddDate(0, 0, termMonths*2*daysPerFortnight), nil
	case FrequencyMonthly:
		return from.AddDate(0, termMonths, 0), nil
	default:
		return time.Time{}, customError.WrapInvalidFrequency(string(frequency))
	}
}

func (s Scheduler) addBusinessDays(from time.Time, days int) time.Time {
	d := from
	for remaining := days; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Sunday {
			remaining--
		}
	}
	return d
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
