package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MonthKeyLayout is the wire format for month keys
const MonthKeyLayout = "2006-01"

// MonthKey identifies a civil calendar month (YYYY-MM). Month locks and all
// monthly reports are keyed by it.
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a month key in YYYY-MM form
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(MonthKeyLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// MustParseMonthKey parses a month key, panicking on failure. Intended for tests.
func MustParseMonthKey(s string) MonthKey {
	mk, err := ParseMonthKey(s)
	if err != nil {
		panic(err)
	}
	return mk
}

// IsZero reports whether the month key is the zero value
func (mk MonthKey) IsZero() bool {
	return mk.Year == 0 && mk.Month == 0
}

// String returns the month key in YYYY-MM form
func (mk MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", mk.Year, int(mk.Month))
}

// Prev returns the preceding month
func (mk MonthKey) Prev() MonthKey {
	t := time.Date(mk.Year, mk.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month
func (mk MonthKey) Next() MonthKey {
	t := time.Date(mk.Year, mk.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before reports whether mk is before other
func (mk MonthKey) Before(other MonthKey) bool {
	if mk.Year != other.Year {
		return mk.Year < other.Year
	}
	return mk.Month < other.Month
}

// FirstDay returns the first calendar day of the month
func (mk MonthKey) FirstDay() Date {
	return Date{Year: mk.Year, Month: mk.Month, Day: 1}
}

// LastDay returns the last calendar day of the month, leap years included
func (mk MonthKey) LastDay() Date {
	// Day zero of the next month normalizes to the last day of this one
	t := time.Date(mk.Year, mk.Month+1, 0, 0, 0, 0, 0, time.UTC)
	return DateOf(t)
}

// Days returns every calendar day of the month in order (28-31 entries)
func (mk MonthKey) Days() []Date {
	last := mk.LastDay().Day
	days := make([]Date, 0, last)
	for day := 1; day <= last; day++ {
		days = append(days, Date{Year: mk.Year, Month: mk.Month, Day: day})
	}
	return days
}

// Contains reports whether the given date falls inside the month
func (mk MonthKey) Contains(d Date) bool {
	return mk.Year == d.Year && mk.Month == d.Month
}

// MarshalJSON encodes the month key as a YYYY-MM string
func (mk MonthKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(mk.String())
}

// UnmarshalJSON decodes a YYYY-MM string
func (mk *MonthKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonthKey(s)
	if err != nil {
		return err
	}
	*mk = parsed
	return nil
}

// Value implements driver.Valuer; month keys are stored as YYYY-MM strings
func (mk MonthKey) Value() (driver.Value, error) {
	if mk.IsZero() {
		return nil, nil
	}
	return mk.String(), nil
}

// Scan implements sql.Scanner for month key columns
func (mk *MonthKey) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*mk = MonthKey{}
		return nil
	case string:
		parsed, err := ParseMonthKey(v)
		if err != nil {
			return err
		}
		*mk = parsed
		return nil
	case []byte:
		return mk.Scan(string(v))
	case time.Time:
		*mk = MonthKey{Year: v.Year(), Month: v.Month()}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into MonthKey", value)
	}
}
