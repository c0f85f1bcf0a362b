package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Spreadsheet exports arrive with a mix of ISO, French and excelize default
// date formats, so parsing tries each known layout in turn.
var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	time.RFC3339,
}

// ParseDate parses a date cell and truncates it to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %v", s)
}

// MustParseDate is for tests and seed data where the input is known good.
func MustParseDate(s string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, s, time.UTC)
	return t
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the "YYYY-MM" bucket used by the monthly aggregations.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ISOWeekKey returns the "YYYY-Wnn" bucket used by the weekly aggregations.
func ISOWeekKey(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
