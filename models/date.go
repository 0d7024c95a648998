package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date wraps time.Time so we can control both JSON un/marshaling and SQL
// driver encoding for calendar dates: no time component, no timezone drift.
type Date time.Time

func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate accepts the wire form "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("Date: cannot parse %q: %w", s, err)
	}
	return Date(t), nil
}

func (d Date) Time() time.Time { return time.Time(d) }
func (d Date) IsZero() bool    { return time.Time(d).IsZero() }
func (d Date) String() string  { return time.Time(d).Format(dateLayout) }

func (d Date) After(other Date) bool {
	return time.Time(d).After(time.Time(other))
}

// UnmarshalJSON accepts a plain date, plus RFC3339 timestamps from clients
// that serialize a Date object; the time component is dropped.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = Date(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("Date.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*d = Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Value implements driver.Valuer so GORM/pgx can bind a DATE parameter.
func (d Date) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner so GORM can read DATE columns back.
func (d *Date) Scan(src interface{}) error {
	if src == nil {
		*d = Date(time.Time{})
		return nil
	}
	switch v := src.(type) {
	case time.Time:
		*d = Date(time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC))
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("Date.Scan: parse %q: %w", s, err)
	}
	*d = Date(t)
	return nil
}
