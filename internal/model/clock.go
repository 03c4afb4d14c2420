package model

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today is the current calendar date of clock.
func Today(clock Clock) string {
	return FormatDate(clock.Now())
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
