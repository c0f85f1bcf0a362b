package kpi

import (
	"sort"
	"time"

	"neemba.com/sepkpi/utils"
)

// Status classifies a single employee-day of time entry.
type Status string

const (
	StatusCompliant  Status = "COMPLIANT"
	StatusIncomplete Status = "INCOMPLETE"
	StatusMissing    Status = "MISSING"
	StatusOvertime   Status = "OVERTIME"
)

// Expected daily total on a working day.
const ExpectedDailyHours = 8.0

// severity orders anomalies for triage, worst first.
var severity = map[Status]int{
	StatusMissing:    0,
	StatusIncomplete: 1,
	StatusOvertime:   2,
	StatusCompliant:  3,
}

// ClassifyDay rates a day's total declared hours. Weekends expect zero, so
// any weekend entry is overtime, and an empty weekend is compliant.
func ClassifyDay(hours float64, day time.Time) Status {
	if utils.IsWeekend(day) {
		if hours == 0 {
			return StatusCompliant
		}
		return StatusOvertime
	}
	switch {
	case hours == 0:
		return StatusMissing
	case hours < ExpectedDailyHours:
		return StatusIncomplete
	case hours == ExpectedDailyHours:
		return StatusCompliant
	default:
		return StatusOvertime
	}
}

// DayStatus is one classified employee-day.
type DayStatus struct {
	EmployeeID   int
	EmployeeName string
	Team         string
	Date         time.Time
	Hours        float64
	Status       Status
}

// CheckDaily classifies every aggregated day. Declared hours are the total
// column, not the worked one, so allocated absence still counts toward the
// eight expected hours.
func CheckDaily(days []EmployeeDay) []DayStatus {
	out := make([]DayStatus, 0, len(days))
	for _, d := range days {
		out = append(out, DayStatus{
			EmployeeID:   d.EmployeeID,
			EmployeeName: d.EmployeeName,
			Team:         d.Team,
			Date:         d.Date,
			Hours:        utils.Round2(d.Total),
			Status:       ClassifyDay(d.Total, d.Date),
		})
	}
	return out
}

// Rate is a compliance percentage over some grouping key.
type Rate struct {
	Key        string
	Compliant  int
	Total      int
	RatePct    float64
	Incomplete int
	Missing    int
	Overtime   int
}

// Rates run over working days only: weekend records show up in the anomaly
// list but never dilute the compliance denominator.
func rates(statuses []DayStatus, key func(DayStatus) string) []Rate {
	working := utils.Filter(statuses, func(s DayStatus) bool {
		return !utils.IsWeekend(s.Date)
	})
	grouped := utils.GroupBy(working, key)
	out := make([]Rate, 0, len(grouped))
	for _, k := range utils.SortedKeys(grouped) {
		r := Rate{Key: k}
		for _, s := range grouped[k] {
			r.Total++
			switch s.Status {
			case StatusCompliant:
				r.Compliant++
			case StatusIncomplete:
				r.Incomplete++
			case StatusMissing:
				r.Missing++
			case StatusOvertime:
				r.Overtime++
			}
		}
		if r.Total > 0 {
			r.RatePct = utils.Round2(100 * float64(r.Compliant) / float64(r.Total))
		}
		out = append(out, r)
	}
	return out
}

// GlobalRate computes the single overall compliance rate.
func GlobalRate(statuses []DayStatus) Rate {
	all := rates(statuses, func(DayStatus) string { return "global" })
	if len(all) == 0 {
		return Rate{Key: "global"}
	}
	return all[0]
}

// TeamRates computes per-team compliance, sorted by team name.
func TeamRates(statuses []DayStatus) []Rate {
	return rates(statuses, func(s DayStatus) string { return s.Team })
}

// EmployeeRates computes per-employee compliance, sorted by name.
func EmployeeRates(statuses []DayStatus) []Rate {
	return rates(statuses, func(s DayStatus) string { return s.EmployeeName })
}

// MonthlyRates computes per-month compliance, oldest month first.
func MonthlyRates(statuses []DayStatus) []Rate {
	return rates(statuses, func(s DayStatus) string { return utils.MonthKey(s.Date) })
}

// Anomalies keeps every non-compliant day, worst severity first, then by
// date, team and employee name so the triage list is stable run to run.
func Anomalies(statuses []DayStatus) []DayStatus {
	out := utils.Filter(statuses, func(s DayStatus) bool {
		return s.Status != StatusCompliant
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if severity[a.Status] != severity[b.Status] {
			return severity[a.Status] < severity[b.Status]
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		return a.EmployeeName < b.EmployeeName
	})
	return out
}

// ExpectedCalendar lists the days in [from, to] inclusive, optionally
// keeping weekends.
func ExpectedCalendar(from, to time.Time, includeWeekends bool) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if includeWeekends || !utils.IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}

// WorkingCalendar lists the weekdays in [from, to] inclusive.
func WorkingCalendar(from, to time.Time) []time.Time {
	return ExpectedCalendar(from, to, false)
}

// MissingDay is a working day with no timesheet line at all for an employee
// known to the dataset. Distinct from a zero-hour line, which classifies as
// missing but still proves the export saw the employee that day.
type MissingDay struct {
	EmployeeName string
	Team         string
	Date         time.Time
}

// MissingDays crosses the working calendar of the observed date range with
// every known employee and reports the holes.
func MissingDays(days []EmployeeDay) []MissingDay {
	if len(days) == 0 {
		return nil
	}

	first, last := days[0].Date, days[0].Date
	teams := map[string]string{}
	present := map[dayKey]bool{}
	for _, d := range days {
		if d.Date.Before(first) {
			first = d.Date
		}
		if d.Date.After(last) {
			last = d.Date
		}
		teams[d.EmployeeName] = d.Team
		present[dayKey{d.EmployeeName, d.Date}] = true
	}

	calendar := WorkingCalendar(first, last)
	var out []MissingDay
	for _, name := range utils.SortedKeys(teams) {
		for _, day := range calendar {
			if !present[dayKey{name, day}] {
				out = append(out, MissingDay{
					EmployeeName: name,
					Team:         teams[name],
					Date:         day,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out
}

// GridCell is one (employee, day) cell of the monthly compliance grid.
type GridCell struct {
	Date   time.Time
	Hours  float64
	Status Status
}

// MonthlyGrid renders the per-team compliance matrix for one month: every
// working day for every team member, holes included as MISSING with 0 hours.
func MonthlyGrid(days []EmployeeDay, team, month string) map[string][]GridCell {
	members := utils.Filter(days, func(d EmployeeDay) bool {
		return d.Team == team && utils.MonthKey(d.Date) == month
	})
	if len(members) == 0 {
		return map[string][]GridCell{}
	}

	monthStart, _ := time.Parse("2006-01", month)
	monthEnd := monthStart.AddDate(0, 1, -1)
	calendar := WorkingCalendar(monthStart, monthEnd)

	hours := map[dayKey]float64{}
	names := map[string]bool{}
	for _, d := range members {
		hours[dayKey{d.EmployeeName, d.Date}] = d.Total
		names[d.EmployeeName] = true
	}

	grid := map[string][]GridCell{}
	for name := range names {
		cells := make([]GridCell, 0, len(calendar))
		for _, day := range calendar {
			h := hours[dayKey{name, day}]
			cells = append(cells, GridCell{
				Date:   day,
				Hours:  utils.Round2(h),
				Status: ClassifyDay(h, day),
			})
		}
		grid[name] = cells
	}
	return grid
}
