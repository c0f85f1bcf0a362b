package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

var testHeader = []string{
	"Salarié - Numéro", "Salarié - Nom", "Salarié - Equipe(Nom)",
	"Saisie heures - Date", "Facturable", "Non Facturable", "Allouée",
	"Hr_travaillée", "Hr_Totale", "OR (Numéro)",
}

func TestLoadTimesheet(t *testing.T) {
	rows := [][]string{
		{"101", "DIALLO Amadou", "Atelier Engins", "2025-03-14", "6", "1", "1", "7", "8", "OR-1001"},
		{"102", "KANE Fatou", "Atelier Engins", "14/03/2025", "", "8", "", "8", "8", ""},
	}

	entries, err := LoadTimesheet(testHeader, rows)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 101, entries[0].EmployeeID)
	assert.Equal(t, "DIALLO Amadou", entries[0].EmployeeName)
	assert.Equal(t, utils.MustParseDate("2025-03-14"), entries[0].Date)
	assert.Equal(t, 6.0, entries[0].Billable)
	assert.Equal(t, "OR-1001", entries[0].WorkOrder)

	// Blank hour cells are zero-filled, not errors.
	assert.Equal(t, 0.0, entries[1].Billable)
	assert.Equal(t, 8.0, entries[1].NonBillable)
}

func TestLoadTimesheetMissingColumns(t *testing.T) {
	header := []string{"Salarié - Nom", "Facturable"}
	_, err := LoadTimesheet(header, nil)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "Saisie heures - Date")
	assert.Contains(t, missing.Columns, "Hr_Totale")
}

func TestLoadTimesheetBadDatesFailWholeBatch(t *testing.T) {
	rows := [][]string{
		{"101", "DIALLO Amadou", "Atelier Engins", "2025-03-14", "6", "0", "0", "6", "8", ""},
		{"102", "KANE Fatou", "Atelier Engins", "pas-une-date", "8", "0", "0", "8", "8", ""},
	}

	_, err := LoadTimesheet(testHeader, rows)

	var parse *ParseError
	require.ErrorAs(t, err, &parse)
	require.Len(t, parse.Rows, 1)
	assert.Equal(t, 3, parse.Rows[0].Row)
	assert.Equal(t, "pas-une-date", parse.Rows[0].Value)
}

func TestLoadTimesheetDropsExactDuplicates(t *testing.T) {
	row := []string{"101", "DIALLO Amadou", "Atelier Engins", "2025-03-14", "6", "1", "1", "7", "8", "OR-1001"}
	entries, err := LoadTimesheet(testHeader, [][]string{row, row, row})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
