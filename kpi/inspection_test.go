package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

func line(or, workshop, tech string, date string, inspected bool) InspectionLine {
	return InspectionLine{
		SN:          "SN-" + or,
		ORSegment:   or,
		Workshop:    workshop,
		Technician:  tech,
		InvoiceDate: utils.MustParseDate(date),
		Inspected:   inspected,
	}
}

func TestRateByOrder(t *testing.T) {
	// Three orders. OR-1 has one inspected line out of two, which inspects
	// the whole order. OR-2 fully inspected, OR-3 not at all: 2/3 = 66.67.
	lines := []InspectionLine{
		line("OR-1", "Atelier A", "T1", "2025-03-10", false),
		line("OR-1", "Atelier A", "T1", "2025-03-10", true),
		line("OR-2", "Atelier A", "T2", "2025-03-11", true),
		line("OR-3", "Atelier B", "T3", "2025-03-12", false),
	}

	r := RateByOrder(lines)
	assert.Equal(t, 3, r.Orders)
	assert.Equal(t, 2, r.Inspected)
	assert.Equal(t, 66.67, r.RatePct)
}

func TestRateByOrderEmpty(t *testing.T) {
	r := RateByOrder(nil)
	assert.Equal(t, 0, r.Orders)
	assert.Equal(t, 0.0, r.RatePct)
}

func TestRateByTechnicianExcludesBlankAndSortsByRate(t *testing.T) {
	lines := []InspectionLine{
		line("OR-1", "A", "BAD TECH", "2025-03-10", false),
		line("OR-2", "A", "GOOD TECH", "2025-03-10", true),
		line("OR-3", "A", "", "2025-03-10", true),
	}

	out := RateByTechnician(lines)
	require.Len(t, out, 2)
	assert.Equal(t, "GOOD TECH", out[0].Key)
	assert.Equal(t, 100.0, out[0].RatePct)
	assert.Equal(t, "BAD TECH", out[1].Key)
	assert.Equal(t, 0.0, out[1].RatePct)
}

func TestLastWednesday(t *testing.T) {
	tests := []struct {
		name     string
		today    string
		expected string
	}{
		{name: "On a Wednesday", today: "2025-03-12", expected: "2025-03-05"},
		{name: "Thursday after", today: "2025-03-13", expected: "2025-03-12"},
		{name: "Friday after", today: "2025-03-14", expected: "2025-03-12"},
		{name: "Monday before", today: "2025-03-10", expected: "2025-03-05"},
		{name: "Sunday before", today: "2025-03-09", expected: "2025-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastWednesday(utils.MustParseDate(tt.today))
			assert.Equal(t, utils.MustParseDate(tt.expected), got)
		})
	}
}

func TestRateWeeklyDelta(t *testing.T) {
	// As of the reference Wednesday 2025-03-12, only OR-1 existed and was
	// not inspected: 0%. The two later orders lift the current rate to 66.67.
	lines := []InspectionLine{
		line("OR-1", "A", "T1", "2025-03-10", false),
		line("OR-2", "A", "T1", "2025-03-13", true),
		line("OR-3", "A", "T1", "2025-03-14", true),
	}

	d := RateWeeklyDelta(lines, utils.MustParseDate("2025-03-14"))
	assert.Equal(t, utils.MustParseDate("2025-03-12"), d.AsOf)
	assert.Equal(t, 0.0, d.Reference)
	assert.Equal(t, 66.67, d.Current)
	assert.Equal(t, 66.67, d.Delta)
}

func TestAnalyzeInspectionsCapsRecords(t *testing.T) {
	var lines []InspectionLine
	for i := 0; i < 150; i++ {
		lines = append(lines, line("OR-1", "A", "T1", "2025-03-10", true))
	}

	a := AnalyzeInspections(lines, utils.MustParseDate("2025-03-14"))
	assert.Len(t, a.Records, 100)
	assert.Equal(t, 1, a.Overall.Orders)
}
