package model

import (
	"bytes"
	"fmt"
	"hotelier/shared/constant"
	"time"

	"github.com/goccy/go-json"
)

// Date is a calendar day without time of day, persisted as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts only strict YYYY-MM-DD calendar dates.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(constant.CalendarDate, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	return Date{Time: t}, nil
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(constant.CalendarDate)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// DaysUntil returns the number of nights between d and other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / constant.HoursInADay)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}

		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}

	if raw == "" {
		*d = Date{}

		return nil
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
