package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date accepted by the API.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date in UTC.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// DateBefore reports whether a falls on an earlier calendar day than b.
func DateBefore(a, b datatypes.Date) bool {
	return FormatDate(a) < FormatDate(b)
}
