package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
)

const monthYearLayout = "2006-01"

// MonthYear is a calendar month, rendered as "YYYY-MM".
type MonthYear struct {
	Year  int
	Month time.Month
}

// ParseMonthYear parses "YYYY-MM".
func ParseMonthYear(s string) (MonthYear, error) {
	t, err := time.Parse(monthYearLayout, s)
	if err != nil {
		return MonthYear{}, fmt.Errorf("%w: month must be formatted YYYY-MM, got %q", apperrors.ErrValidation, s)
	}
	return MonthYear{Year: t.Year(), Month: t.Month()}, nil
}

// MonthYearOf returns the month t falls in.
func MonthYearOf(t time.Time) MonthYear {
	return MonthYear{Year: t.Year(), Month: t.Month()}
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start is midnight UTC of the first day of the month.
func (m MonthYear) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the exclusive upper bound of the month.
func (m MonthYear) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// LastDay returns the number of days in the month.
func (m MonthYear) LastDay() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t falls within the month, using t's own calendar.
func (m MonthYear) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Before reports whether m is strictly earlier than other.
func (m MonthYear) Before(other MonthYear) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}
