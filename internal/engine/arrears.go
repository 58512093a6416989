package engine

import (
	"time"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

// ArrearsStatus classifies how far behind a loan is, in business days.
type ArrearsStatus string

const (
	ArrearsCurrent ArrearsStatus = "current"
	ArrearsDue     ArrearsStatus = "due"
	ArrearsOverdue ArrearsStatus = "overdue"
)

// PaymentRecord is the slice of a payment's data the tracker needs.
type PaymentRecord struct {
	PaymentDate time.Time
	IsLate      bool
	LateDueDate *time.Time
}

// ArrearsReport is the outcome of one tracking run. ReferenceDate is the day
// the count is measured from, normalized to the business timezone.
type ArrearsReport struct {
	ReferenceDate time.Time     `json:"reference_date"`
	DaysSince     int           `json:"days_since"`
	Status        ArrearsStatus `json:"status"`
}

// Tracker measures arrears against a caller-supplied "today" so results are
// reproducible; it never reads the wall clock.
type Tracker struct {
	cal Calendar
}

func NewTracker(cal Calendar) Tracker {
	return Tracker{cal: cal}
}

// Track computes the arrears report for a loan as of today.
//
// The reference date is the loan start date when no payments exist. With
// payments, the one with the most recent payment date wins: its late due
// date when it was flagged late, otherwise the payment date itself. The day
// count excludes Sundays. A reference date after today is a contract
// violation and returns an error rather than a clamped count.
func (t Tracker) Track(startDate time.Time, payments []PaymentRecord, today time.Time) (ArrearsReport, error) {
	reference := startDate
	if len(payments) > 0 {
		latest := payments[0]
		for _, p := range payments[1:] {
			if p.PaymentDate.After(latest.PaymentDate) {
				latest = p
			}
		}
		if latest.IsLate && latest.LateDueDate != nil {
			reference = *latest.LateDueDate
		} else {
			reference = latest.PaymentDate
		}
	}

	if reference.IsZero() {
		return ArrearsReport{}, customError.WrapMissingReferenceData()
	}

	referenceDay := t.cal.Normalize(reference)
	currentDay := t.cal.Normalize(today)
	if currentDay.Before(referenceDay) {
		return ArrearsReport{}, customError.WrapFutureReferenceDate(referenceDay, currentDay)
	}

	daysSince := t.cal.DaysBetweenExcludingSundays(referenceDay, currentDay)

	status := ArrearsCurrent
	switch {
	case daysSince == 1:
		status = ArrearsDue
	case daysSince > 1:
		status = ArrearsOverdue
	}

	return ArrearsReport{
		ReferenceDate: referenceDay,
		DaysSince:     daysSince,
		Status:        status,
	}, nil
}
