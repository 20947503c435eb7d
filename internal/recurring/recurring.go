// Package recurring computes the next occurrence date of a recurring
// transaction schedule.
package recurring

import (
	"errors"
	"fmt"
	"time"
)

type Interval string

const (
	Daily   Interval = "DAILY"
	Weekly  Interval = "WEEKLY"
	Monthly Interval = "MONTHLY"
	Yearly  Interval = "YEARLY"
)

var ErrInvalidInterval = errors.New("invalid recurring interval")

// Parse validates a raw interval tag.
func Parse(s string) (Interval, error) {
	switch Interval(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Interval(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
}

// Next returns t advanced by exactly one period. Month and year steps use
// calendar-aware arithmetic, so Jan 31 + 1 month normalizes per time.AddDate
// (into early March on non-leap years). Unknown intervals fail closed.
func Next(t time.Time, iv Interval) (time.Time, error) {
	switch iv {
	case Daily:
		return t.AddDate(0, 0, 1), nil
	case Weekly:
		return t.AddDate(0, 0, 7), nil
	case Monthly:
		return t.AddDate(0, 1, 0), nil
	case Yearly:
		return t.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInterval, iv)
}
