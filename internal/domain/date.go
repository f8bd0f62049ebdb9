package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date - calendar date serialized as "2006-01-02"
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src interface{}) error {
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	*d = NewDate(t.Year(), t.Month(), t.Day())
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// DateTime - local timestamp serialized as "2006-01-02T15:04:05"
type DateTime struct {
	time.Time
}

// Now returns the current UTC time truncated to seconds.
func Now() DateTime {
	return DateTime{Time: time.Now().UTC().Truncate(time.Second)}
}

// ParseDateTime accepts "2006-01-02T15:04:05" and RFC 3339.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateTimeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t.UTC()}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date-time %q, expected YYYY-MM-DDTHH:MM:SS", s)
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *DateTime) Scan(src interface{}) error {
	t, err := scanTime(src)
	if err != nil {
		return err
	}
	*d = DateTime{Time: t.UTC()}
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

func scanTime(src interface{}) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseStored(v)
	case []byte:
		return parseStored(string(v))
	case nil:
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("cannot scan %T into a date", src)
}

func parseStored(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07", "2006-01-02 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse stored time %q", s)
}
