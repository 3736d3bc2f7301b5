package valueobject

import (
	"time"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// TransactionDate is the calendar date of a transaction, optionally paired
// with a time of day. Equality and ordering operate on the calendar date
// only; the time component is informational.
type TransactionDate struct {
	year    int
	month   time.Month
	day     int
	at      time.Time // zero when only the date is known
	hasTime bool
}

// NewTransactionDate builds a date-only value from the calendar components
// of t, discarding any time of day.
func NewTransactionDate(t time.Time) TransactionDate {
	y, m, d := t.Date()
	return TransactionDate{year: y, month: m, day: d}
}

// NewTransactionDateTime builds a value that retains the time of day.
func NewTransactionDateTime(t time.Time) TransactionDate {
	y, m, d := t.Date()
	return TransactionDate{year: y, month: m, day: d, at: t, hasTime: true}
}

// ParseTransactionDate parses a "2006-01-02" date string.
func ParseTransactionDate(s string) (TransactionDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TransactionDate{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidIdentifier,
			"invalid transaction date: "+s,
			domainerror.ErrInvalidIdentifier,
		)
	}
	return NewTransactionDate(t), nil
}

// TransactionDateNow returns the current calendar date in UTC.
func TransactionDateNow() TransactionDate {
	return NewTransactionDate(time.Now().UTC())
}

// Date returns the calendar date at midnight UTC.
func (d TransactionDate) Date() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Time returns the full timestamp and whether one is known.
func (d TransactionDate) Time() (time.Time, bool) {
	return d.at, d.hasTime
}

// HasTime reports whether a time of day is known.
func (d TransactionDate) HasTime() bool {
	return d.hasTime
}

// IsZero reports whether the date is unset.
func (d TransactionDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// After reports whether d falls on a later calendar date than other.
func (d TransactionDate) After(other TransactionDate) bool {
	return d.Date().After(other.Date())
}

// Before reports whether d falls on an earlier calendar date than other.
func (d TransactionDate) Before(other TransactionDate) bool {
	return d.Date().Before(other.Date())
}

// Equal compares calendar dates only.
func (d TransactionDate) Equal(other TransactionDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// String renders the timestamp when known, otherwise the date.
func (d TransactionDate) String() string {
	if d.hasTime {
		return d.at.Format(time.RFC3339)
	}
	return d.Date().Format("2006-01-02")
}
