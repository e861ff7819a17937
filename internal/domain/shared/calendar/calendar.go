// Package calendar is the single source of truth for converting between UTC
// instants and tenant-local civil dates and months. Both the month-lock gate
// and the revenue aggregator must resolve business dates through this package;
// using two different conversions is how payments end up reported on the
// wrong day.
package calendar

import (
	"fmt"
	"time"
)

// Calendar converts UTC instants into civil dates and months as seen in a
// tenant's IANA timezone.
type Calendar struct {
	loc *time.Location
}

// New creates a Calendar for the given IANA timezone name
func New(tz string) (*Calendar, error) {
	if tz == "" {
		return nil, fmt.Errorf("timezone cannot be empty")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return &Calendar{loc: loc}, nil
}

// MustNew creates a Calendar, panicking on an invalid timezone. Intended for
// tests and compile-time-known zones.
func MustNew(tz string) *Calendar {
	c, err := New(tz)
	if err != nil {
		panic(err)
	}
	return c
}

// UTC returns a Calendar pinned to UTC
func UTC() *Calendar {
	return &Calendar{loc: time.UTC}
}

// Location returns the calendar's timezone
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DateOf returns the civil date the given instant falls on in the calendar's
// timezone. An instant late in the UTC day may belong to the next local day.
func (c *Calendar) DateOf(t time.Time) Date {
	local := t.In(c.loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// MonthOf returns the civil month the given instant falls in
func (c *Calendar) MonthOf(t time.Time) MonthKey {
	local := t.In(c.loc)
	return MonthKey{Year: local.Year(), Month: local.Month()}
}

// Today returns the current civil date in the calendar's timezone
func (c *Calendar) Today() Date {
	return c.DateOf(time.Now())
}

// MonthRange returns the half-open UTC instant range [start, end) that
// exactly covers the given local month.
func (c *Calendar) MonthRange(mk MonthKey) (time.Time, time.Time) {
	start := time.Date(mk.Year, mk.Month, 1, 0, 0, 0, 0, c.loc)
	end := time.Date(mk.Year, mk.Month+1, 1, 0, 0, 0, 0, c.loc)
	return start.UTC(), end.UTC()
}

// DayRange returns the half-open UTC instant range [start, end) covering the
// given local calendar day.
func (c *Calendar) DayRange(d Date) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.loc)
	end := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, c.loc)
	return start.UTC(), end.UTC()
}

// LastNMonths returns the n months up to and including the month of ref,
// ordered oldest to newest.
func (c *Calendar) LastNMonths(n int, ref time.Time) []MonthKey {
	if n <= 0 {
		return nil
	}
	months := make([]MonthKey, n)
	mk := c.MonthOf(ref)
	for i := n - 1; i >= 0; i-- {
		months[i] = mk
		mk = mk.Prev()
	}
	return months
}

// TodayUTC returns the current civil date at UTC. Used for the date-only
// "not in the future" check on payment business dates.
func TodayUTC() Date {
	now := time.Now().UTC()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}
