package kpi

import (
	"fmt"
	"time"
)

// CurrentQuarter returns the calendar quarter containing t, like "2025-Q3".
func CurrentQuarter(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}

// QuarterStart returns the first day of the quarter containing t.
func QuarterStart(t time.Time) time.Time {
	q := (int(t.Month()) - 1) / 3
	return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// QuarterDates resolves a "YYYY-Qn" label into its inclusive date range.
func QuarterDates(label string) (start, end time.Time, err error) {
	var year, q int
	if _, err = fmt.Sscanf(label, "%d-Q%d", &year, &q); err != nil || q < 1 || q > 4 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid quarter %q", label)
	}
	start = time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 3, -1)
	return start, end, nil
}

// QuartersBetween lists the quarter labels covering [from, to], oldest first.
func QuartersBetween(from, to time.Time) []string {
	var out []string
	cur := QuarterStart(from)
	for !cur.After(to) {
		out = append(out, CurrentQuarter(cur))
		cur = cur.AddDate(0, 3, 0)
	}
	return out
}
