package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "github.com/uzideath/motofacil-engine/pkg/errors"
)

func TestInstallmentsBetween(t *testing.T) {
	s := NewScheduler(NewCalendar(time.UTC))

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		frequency Frequency
		expected  int
		wantErr   error
	}{
		{
			name:      "daily counts business days inclusive",
			start:     monday,
			end:       monday.AddDate(0, 0, 6), // Mon..Sun
			frequency: FrequencyDaily,
			expected:  6,
		},
		{
			name:      "weekly rounds elapsed days up",
			start:     monday,
			end:       monday.AddDate(0, 0, 10),
			frequency: FrequencyWeekly,
			expected:  2,
		},
		{
			name:      "weekly exact weeks",
			start:     monday,
			end:       monday.AddDate(0, 0, 28),
			frequency: FrequencyWeekly,
			expected:  4,
		},
		{
			name:      "biweekly rounds elapsed days up",
			start:     monday,
			end:       monday.AddDate(0, 0, 15),
			frequency: FrequencyBiweekly,
			expected:  2,
		},
		{
			name:      "monthly whole month difference",
			start:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyMonthly,
			expected:  6,
		},
		{
			name:      "monthly within one month floors at one",
			start:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			frequency: FrequencyMonthly,
			expected:  1,
		},
		{
			name:      "end equal to start is invalid",
			start:     monday,
			end:       monday,
			frequency: FrequencyDaily,
			wantErr:   customError.ErrInvalidDateRange,
		},
		{
			name:      "end before start is invalid",
			start:     monday,
			end:       monday.AddDate(0, 0, -1),
			frequency: FrequencyWeekly,
			wantErr:   customError.ErrInvalidDateRange,
		},
		{
			name:      "unknown frequency",
			start:     monday,
			end:       monday.AddDate(0, 0, 7),
			frequency: Frequency("YEARLY"),
			wantErr:   customError.ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := s.InstallmentsBetween(tt.start, tt.end, tt.frequency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, count)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestInstallmentsForTerm(t *testing.T) {
	s := NewScheduler(NewCalendar(time.UTC))

	tests := []struct {
		name      string
		months    int
		frequency Frequency
		expected  int
		wantErr   error
	}{
		{name: "daily is thirty per month", months: 30, frequency: FrequencyDaily, expected: 900},
		{name: "weekly is four per month", months: 6, frequency: FrequencyWeekly, expected: 24},
		{name: "biweekly is two per month", months: 6, frequency: FrequencyBiweekly, expected: 12},
		{name: "monthly is the term itself", months: 6, frequency: FrequencyMonthly, expected: 6},
		{name: "zero term is invalid", months: 0, frequency: FrequencyDaily, wantErr: customError.ErrInvalidTerm},
		{name: "unknown frequency", months: 6, frequency: Frequency("HOURLY"), wantErr: customError.ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := s.InstallmentsForTerm(tt.months, tt.frequency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestInstallmentsDispatch(t *testing.T) {
	s := NewScheduler(NewCalendar(time.UTC))

	tests := []struct {
		name     string
		input    ScheduleInput
		expected int
		wantErr  error
	}{
		{
			name: "by dates reads the date pair",
			input: ScheduleInput{
				Source:    CountByDates,
				Start:     monday,
				End:       monday.AddDate(0, 0, 28),
				Frequency: FrequencyWeekly,
			},
			expected: 4,
		},
		{
			name: "by term ignores the date pair",
			input: ScheduleInput{
				Source:     CountByTerm,
				Start:      monday,
				End:        monday.AddDate(0, 0, 28),
				TermMonths: 6,
				Frequency:  FrequencyBiweekly,
			},
			expected: 12,
		},
		{
			name: "unknown source",
			input: ScheduleInput{
				Source:     CountSource("GUESS"),
				TermMonths: 6,
				Frequency:  FrequencyMonthly,
			},
			wantErr: customError.ErrInvalidCountSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := s.Installments(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestDeriveEndDateSkipsSundays(t *testing.T) {
	s := NewScheduler(NewCalendar(time.UTC))

	// One month daily = 30 business days. From Monday Jan 1 2024 that is
	// 35 calendar days: 30 payment days plus 5 Sundays crossed.
	end, err := s.DeriveEndDate(monday, FrequencyDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, monday.AddDate(0, 0, 35), end)
	assert.NotEqual(t, time.Sunday, end.Weekday())
}

// Feeding a derived end date back through the date-driven branch must land
// within one installment of the term-driven count for every frequency.
func TestDeriveEndDateRoundTrip(t *testing.T) {
	s := NewScheduler(NewCalendar(time.UTC))

	frequencies := []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly}
	starts := []time.Time{
		monday,
		time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), // mid-month Thursday
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), // a Sunday
	}

	for _, freq := range frequencies {
		for _, start := range starts {
			for _, months := range []int{1, 3, 12, 24} {
				termCount, err := s.InstallmentsForTerm(months, freq)
				require.NoError(t, err)

				end, err := s.DeriveEndDate(start, freq, months)
				require.NoError(t, err)

				dateCount, err := s.InstallmentsBetween(start, end, freq)
				require.NoError(t, err)

				diff := dateCount - termCount
				if diff < 0 {
					diff = -diff
				}
				assert.LessOrEqual(t, diff, 1,
					"%s start=%s months=%d: term-driven %d vs date-driven %d",
					freq, start.Format("2006-01-02"), months, termCount, dateCount)
			}
		}
	}
}
