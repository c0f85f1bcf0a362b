package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		date     string
		expected Status
	}{
		{name: "Weekday full", hours: 8, date: "2025-03-17", expected: StatusCompliant},
		{name: "Weekday short", hours: 6.5, date: "2025-03-17", expected: StatusIncomplete},
		{name: "Weekday empty", hours: 0, date: "2025-03-17", expected: StatusMissing},
		{name: "Weekday over", hours: 9, date: "2025-03-17", expected: StatusOvertime},
		{name: "Weekend empty", hours: 0, date: "2025-03-15", expected: StatusCompliant},
		{name: "Weekend worked", hours: 4, date: "2025-03-15", expected: StatusOvertime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDay(tt.hours, utils.MustParseDate(tt.date)))
		})
	}
}

func statusDay(name, team, date string, total float64) EmployeeDay {
	return EmployeeDay{
		EmployeeName: name,
		Team:         team,
		Date:         utils.MustParseDate(date),
		Total:        total,
	}
}

func TestGlobalRate(t *testing.T) {
	statuses := CheckDaily([]EmployeeDay{
		statusDay("A", "Engins", "2025-03-17", 8),
		statusDay("B", "Engins", "2025-03-17", 8),
		statusDay("C", "Engins", "2025-03-17", 5),
		statusDay("D", "Engins", "2025-03-17", 0),
	})

	r := GlobalRate(statuses)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 2, r.Compliant)
	assert.Equal(t, 1, r.Incomplete)
	assert.Equal(t, 1, r.Missing)
	assert.Equal(t, 50.0, r.RatePct)
}

func TestRatesIgnoreWeekendDays(t *testing.T) {
	statuses := CheckDaily([]EmployeeDay{
		statusDay("A", "Engins", "2025-03-17", 8), // Monday, compliant
		statusDay("A", "Engins", "2025-03-15", 4), // Saturday, overtime
	})

	r := GlobalRate(statuses)
	assert.Equal(t, 1, r.Total)
	assert.Equal(t, 100.0, r.RatePct)

	// The weekend record still surfaces for triage.
	anomalies := Anomalies(statuses)
	require.Len(t, anomalies, 1)
	assert.Equal(t, StatusOvertime, anomalies[0].Status)
}

func TestAnomaliesOrdering(t *testing.T) {
	statuses := CheckDaily([]EmployeeDay{
		statusDay("ZORRO", "Beta", "2025-03-17", 9),  // overtime
		statusDay("ALICE", "Alpha", "2025-03-18", 0), // missing, later date
		statusDay("BOB", "Alpha", "2025-03-17", 0),   // missing, earlier date
		statusDay("CARL", "Alpha", "2025-03-17", 5),  // incomplete
		statusDay("DINA", "Alpha", "2025-03-17", 8),  // compliant, excluded
	})

	anomalies := Anomalies(statuses)
	require.Len(t, anomalies, 4)
	assert.Equal(t, "BOB", anomalies[0].EmployeeName)
	assert.Equal(t, StatusMissing, anomalies[0].Status)
	assert.Equal(t, "ALICE", anomalies[1].EmployeeName)
	assert.Equal(t, "CARL", anomalies[2].EmployeeName)
	assert.Equal(t, "ZORRO", anomalies[3].EmployeeName)
}

func TestMissingDays(t *testing.T) {
	// Week of 2025-03-17 to 2025-03-21: five working days. X declared three,
	// Y all five, so exactly two holes remain, both X's.
	days := []EmployeeDay{
		statusDay("X", "Engins", "2025-03-17", 8),
		statusDay("X", "Engins", "2025-03-18", 8),
		statusDay("X", "Engins", "2025-03-21", 8),
		statusDay("Y", "Engins", "2025-03-17", 8),
		statusDay("Y", "Engins", "2025-03-18", 8),
		statusDay("Y", "Engins", "2025-03-19", 8),
		statusDay("Y", "Engins", "2025-03-20", 8),
		statusDay("Y", "Engins", "2025-03-21", 8),
	}

	missing := MissingDays(days)
	require.Len(t, missing, 2)
	assert.Equal(t, "X", missing[0].EmployeeName)
	assert.Equal(t, utils.MustParseDate("2025-03-19"), missing[0].Date)
	assert.Equal(t, "X", missing[1].EmployeeName)
	assert.Equal(t, utils.MustParseDate("2025-03-20"), missing[1].Date)
}

func TestMissingDaysSkipsWeekends(t *testing.T) {
	// Friday to Monday: Saturday and Sunday are never holes.
	days := []EmployeeDay{
		statusDay("X", "Engins", "2025-03-14", 8),
		statusDay("X", "Engins", "2025-03-17", 8),
	}
	assert.Empty(t, MissingDays(days))
}

func TestExpectedCalendar(t *testing.T) {
	friday := utils.MustParseDate("2025-03-14")
	monday := utils.MustParseDate("2025-03-17")

	assert.Len(t, ExpectedCalendar(friday, monday, true), 4)
	assert.Len(t, ExpectedCalendar(friday, monday, false), 2)
	assert.Empty(t, ExpectedCalendar(monday, friday, false))
}

func TestMonthlyGrid(t *testing.T) {
	days := []EmployeeDay{
		statusDay("X", "Engins", "2025-03-03", 8),
		statusDay("X", "Engins", "2025-03-04", 5),
		statusDay("Y", "Autre", "2025-03-03", 8),
	}

	grid := MonthlyGrid(days, "Engins", "2025-03")
	require.Contains(t, grid, "X")
	assert.NotContains(t, grid, "Y")

	cells := grid["X"]
	// March 2025 has 21 working days.
	require.Len(t, cells, 21)
	assert.Equal(t, StatusCompliant, cells[0].Status)
	assert.Equal(t, StatusIncomplete, cells[1].Status)
	assert.Equal(t, StatusMissing, cells[2].Status)
}
