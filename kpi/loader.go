package kpi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"neemba.com/sepkpi/utils"
)

// Required timesheet export columns, as they appear in the source system.
var timesheetColumns = []string{
	"Salarié - Numéro",
	"Salarié - Nom",
	"Salarié - Equipe(Nom)",
	"Saisie heures - Date",
	"Facturable",
	"Non Facturable",
	"Allouée",
	"Hr_travaillée",
	"Hr_Totale",
}

// ORColumn is optional in older exports.
const ORColumn = "OR (Numéro)"

// TimesheetEntry is one raw timesheet line after loading. Hours are kept as
// exported, including zero-filled blanks.
type TimesheetEntry struct {
	EmployeeID   int
	EmployeeName string
	Team         string
	Date         time.Time
	Billable     float64
	NonBillable  float64
	Allocated    float64
	Worked       float64
	Total        float64
	WorkOrder    string
}

// MissingColumnError reports which required columns the upload lacks.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// RowError is a single unparseable cell, addressed by its 1-based sheet row.
type RowError struct {
	Row   int
	Value string
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %q: %v", e.Row, e.Value, e.Err)
}

// ParseError aggregates every bad row in an upload so the operator can fix
// the export in one pass instead of one failure at a time.
type ParseError struct {
	Rows []RowError
}

func (e *ParseError) Error() string {
	parts := utils.Map(e.Rows, func(r RowError) string { return r.Error() })
	return fmt.Sprintf("%d unparseable rows: %s", len(e.Rows), strings.Join(parts, "; "))
}

// LoadTimesheet turns a raw header row plus data rows into timesheet entries.
// It validates the header, zero-fills blank hour cells, drops exact duplicate
// lines and fails the whole batch when any date cell cannot be parsed.
func LoadTimesheet(header []string, rows [][]string) ([]TimesheetEntry, error) {
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range timesheetColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	type lineKey struct {
		id    int
		name  string
		team  string
		date  time.Time
		bill  float64
		nbill float64
		alloc float64
		work  float64
		total float64
		or    string
	}

	seen := map[lineKey]bool{}
	var entries []TimesheetEntry
	var bad []RowError

	for n, row := range rows {
		rawDate := cell(row, "Saisie heures - Date")
		if rawDate == "" && cell(row, "Salarié - Nom") == "" {
			continue // trailing blank line
		}
		date, err := utils.ParseDate(rawDate)
		if err != nil {
			bad = append(bad, RowError{Row: n + 2, Value: rawDate, Err: err})
			continue
		}

		id := 0
		if raw := cell(row, "Salarié - Numéro"); raw != "" {
			fmt.Sscanf(raw, "%d", &id)
		}

		hours := func(col string) float64 {
			raw := cell(row, col)
			v, err := utils.ParseFloatCell(raw)
			if err != nil {
				bad = append(bad, RowError{Row: n + 2, Value: raw, Err: err})
			}
			return v
		}

		e := TimesheetEntry{
			EmployeeID:   id,
			EmployeeName: cell(row, "Salarié - Nom"),
			Team:         cell(row, "Salarié - Equipe(Nom)"),
			Date:         date,
			Billable:     hours("Facturable"),
			NonBillable:  hours("Non Facturable"),
			Allocated:    hours("Allouée"),
			Worked:       hours("Hr_travaillée"),
			Total:        hours("Hr_Totale"),
			WorkOrder:    cell(row, ORColumn),
		}

		k := lineKey{e.EmployeeID, e.EmployeeName, e.Team, e.Date,
			e.Billable, e.NonBillable, e.Allocated, e.Worked, e.Total, e.WorkOrder}
		if seen[k] {
			continue
		}
		seen[k] = true
		entries = append(entries, e)
	}

	if len(bad) > 0 {
		return nil, &ParseError{Rows: bad}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].EmployeeName < entries[j].EmployeeName
	})
	return entries, nil
}
