package kpi

import (
	"sort"
	"time"

	"neemba.com/sepkpi/utils"
)

// Productivity is the billable share of worked hours, as a percentage.
// A day with no worked hours scores 0 rather than dividing by zero.
func Productivity(billable, worked float64) float64 {
	if worked == 0 {
		return 0
	}
	return utils.Round2(100 * billable / worked)
}

// EmployeeDay is one employee's hours aggregated over a single day.
type EmployeeDay struct {
	EmployeeID   int
	EmployeeName string
	Team         string
	Date         time.Time
	Billable     float64
	NonBillable  float64
	Allocated    float64
	Worked       float64
	Total        float64
	Productivity float64
}

type dayKey struct {
	name string
	date time.Time
}

// AggregateDays folds raw timesheet lines down to one record per employee
// per day. Several lines per day are the norm, one per work order.
func AggregateDays(entries []TimesheetEntry) []EmployeeDay {
	byDay := utils.GroupBy(entries, func(e TimesheetEntry) dayKey {
		return dayKey{e.EmployeeName, e.Date}
	})

	days := make([]EmployeeDay, 0, len(byDay))
	for _, lines := range byDay {
		d := EmployeeDay{
			EmployeeID:   lines[0].EmployeeID,
			EmployeeName: lines[0].EmployeeName,
			Team:         lines[0].Team,
			Date:         lines[0].Date,
		}
		for _, l := range lines {
			d.Billable += l.Billable
			d.NonBillable += l.NonBillable
			d.Allocated += l.Allocated
			d.Worked += l.Worked
			d.Total += l.Total
		}
		d.Productivity = Productivity(d.Billable, d.Worked)
		days = append(days, d)
	}

	sort.SliceStable(days, func(i, j int) bool {
		if !days[i].Date.Equal(days[j].Date) {
			return days[i].Date.Before(days[j].Date)
		}
		return days[i].EmployeeName < days[j].EmployeeName
	})
	return days
}

// PeriodScore is an aggregate over some grouping key and period label. The
// score is always re-derived from the summed hours, never averaged from the
// member scores.
type PeriodScore struct {
	Key          string
	Period       string
	Billable     float64
	Worked       float64
	Productivity float64
	Employees    int
}

func isoWeek(t time.Time) string {
	y, w := t.ISOWeek()
	return utils.ISOWeekKey(y, w)
}

// WeeklyProductivity aggregates per employee per ISO week.
func WeeklyProductivity(days []EmployeeDay) []PeriodScore {
	return periodScores(days,
		func(d EmployeeDay) string { return d.EmployeeName },
		func(d EmployeeDay) string { return isoWeek(d.Date) })
}

// MonthlyProductivity aggregates per employee per calendar month.
func MonthlyProductivity(days []EmployeeDay) []PeriodScore {
	return periodScores(days,
		func(d EmployeeDay) string { return d.EmployeeName },
		func(d EmployeeDay) string { return utils.MonthKey(d.Date) })
}

// TeamProductivity aggregates per team for the requested granularity,
// one of "daily", "weekly" or "monthly".
func TeamProductivity(days []EmployeeDay, granularity string) []PeriodScore {
	period := func(d EmployeeDay) string { return utils.MonthKey(d.Date) }
	switch granularity {
	case "daily":
		period = func(d EmployeeDay) string { return utils.FormatDate(d.Date) }
	case "weekly":
		period = func(d EmployeeDay) string { return isoWeek(d.Date) }
	}
	return periodScores(days,
		func(d EmployeeDay) string { return d.Team },
		period)
}

func periodScores(days []EmployeeDay, key, period func(EmployeeDay) string) []PeriodScore {
	type bucket struct{ key, period string }
	grouped := utils.GroupBy(days, func(d EmployeeDay) bucket {
		return bucket{key(d), period(d)}
	})

	scores := make([]PeriodScore, 0, len(grouped))
	for b, members := range grouped {
		s := PeriodScore{Key: b.key, Period: b.period}
		names := map[string]bool{}
		for _, d := range members {
			s.Billable += d.Billable
			s.Worked += d.Worked
			names[d.EmployeeName] = true
		}
		s.Employees = len(names)
		s.Productivity = Productivity(s.Billable, s.Worked)
		scores = append(scores, s)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Period != scores[j].Period {
			return scores[i].Period < scores[j].Period
		}
		return scores[i].Key < scores[j].Key
	})
	return scores
}

// Rolling12 scores each employee at every one of their observed dates over
// the trailing twelve months ending at that date, window start inclusive.
// Not streaming: O(employees x dates x window), acceptable for batch-sized
// datasets.
func Rolling12(days []EmployeeDay) []PeriodScore {
	byEmployee := utils.GroupBy(days, func(d EmployeeDay) string { return d.EmployeeName })

	var out []PeriodScore
	for _, name := range utils.SortedKeys(byEmployee) {
		observed := byEmployee[name]
		sort.SliceStable(observed, func(i, j int) bool {
			return observed[i].Date.Before(observed[j].Date)
		})
		for _, ref := range observed {
			start := ref.Date.AddDate(0, -12, 0)
			s := PeriodScore{
				Key:       name,
				Period:    utils.FormatDate(ref.Date),
				Employees: 1,
			}
			for _, d := range observed {
				if !d.Date.Before(start) && !d.Date.After(ref.Date) {
					s.Billable += d.Billable
					s.Worked += d.Worked
				}
			}
			s.Productivity = Productivity(s.Billable, s.Worked)
			out = append(out, s)
		}
	}
	return out
}

// GlobalSummary is the headline card of the dashboard.
type GlobalSummary struct {
	Productivity  float64
	TotalBillable float64
	TotalWorked   float64
	Employees     int
	Teams         int
	FirstDay      time.Time
	LastDay       time.Time
}

func Summarize(days []EmployeeDay) GlobalSummary {
	var s GlobalSummary
	if len(days) == 0 {
		return s
	}
	names := map[string]bool{}
	teams := map[string]bool{}
	s.FirstDay, s.LastDay = days[0].Date, days[0].Date
	for _, d := range days {
		s.TotalBillable += d.Billable
		s.TotalWorked += d.Worked
		names[d.EmployeeName] = true
		if d.Team != "" {
			teams[d.Team] = true
		}
		if d.Date.Before(s.FirstDay) {
			s.FirstDay = d.Date
		}
		if d.Date.After(s.LastDay) {
			s.LastDay = d.Date
		}
	}
	s.Employees = len(names)
	s.Teams = len(teams)
	s.Productivity = Productivity(s.TotalBillable, s.TotalWorked)
	return s
}

// MonthlySeries is the global month-by-month productivity curve.
func MonthlySeries(days []EmployeeDay) []PeriodScore {
	return periodScores(days,
		func(EmployeeDay) string { return "global" },
		func(d EmployeeDay) string { return utils.MonthKey(d.Date) })
}

// TeamCorrelation pairs a team with how closely its monthly curve tracks
// the global one.
type TeamCorrelation struct {
	Team   string
	Score  float64
	Months int
}

// CorrelationDriver finds the team whose monthly productivity correlates
// most strongly with the global series. Teams overlapping the global series
// on fewer than two months are skipped. Returns all candidates sorted by
// score descending, name ascending on ties.
func CorrelationDriver(days []EmployeeDay) []TeamCorrelation {
	global := map[string]float64{}
	for _, s := range MonthlySeries(days) {
		global[s.Period] = s.Productivity
	}

	byTeam := map[string]map[string]float64{}
	for _, s := range TeamProductivity(days, "monthly") {
		if s.Key == "" {
			continue
		}
		if byTeam[s.Key] == nil {
			byTeam[s.Key] = map[string]float64{}
		}
		byTeam[s.Key][s.Period] = s.Productivity
	}

	var out []TeamCorrelation
	for _, team := range utils.SortedKeys(byTeam) {
		series := byTeam[team]
		var xs, ys []float64
		for _, month := range utils.SortedKeys(series) {
			if g, ok := global[month]; ok {
				xs = append(xs, series[month])
				ys = append(ys, g)
			}
		}
		if len(xs) < 2 {
			continue
		}
		out = append(out, TeamCorrelation{
			Team:   team,
			Score:  utils.Round2(pearson(xs, ys)),
			Months: len(xs),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Team < out[j].Team
	})
	return out
}
