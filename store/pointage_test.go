package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/utils"
)

func TestBuildPointages(t *testing.T) {
	entries := []kpi.TimesheetEntry{
		{EmployeeID: 101, EmployeeName: "DIALLO Amadou", Team: "Engins", Date: utils.MustParseDate("2025-03-14"), Billable: 3, Worked: 4, Total: 4, WorkOrder: "OR-2"},
		{EmployeeID: 101, EmployeeName: "DIALLO Amadou", Team: "Engins", Date: utils.MustParseDate("2025-03-14"), Billable: 3, Worked: 4, Total: 4, WorkOrder: "OR-1"},
		{EmployeeID: 102, EmployeeName: "KANE Fatou", Team: "Engins", Date: utils.MustParseDate("2025-03-14"), Billable: 8, Worked: 8, Total: 8},
	}

	rows := BuildPointages(entries)
	require.Len(t, rows, 2)

	assert.Equal(t, "DIALLO Amadou", rows[0].Technicien)
	assert.Equal(t, 6.0, rows[0].Facturable)
	assert.Equal(t, 8.0, rows[0].HeuresTrav)
	assert.Equal(t, "OR-1,OR-2", rows[0].ORNumero)

	assert.Equal(t, "KANE Fatou", rows[1].Technicien)
	assert.Equal(t, "", rows[1].ORNumero)
}

func TestSnapshotSwap(t *testing.T) {
	var s Snapshot
	assert.Empty(t, s.Timesheet())
	assert.True(t, s.LoadedAt().IsZero())

	entries := []kpi.TimesheetEntry{{EmployeeName: "DIALLO Amadou"}}
	s.SetTimesheet(entries)
	assert.Len(t, s.Timesheet(), 1)
	assert.False(t, s.LoadedAt().IsZero())

	s.SetInvoices([]kpi.Invoice{{Number: "F-1"}})
	assert.Len(t, s.Invoices(), 1)
	// The timesheet side is untouched by an invoice swap.
	assert.Len(t, s.Timesheet(), 1)
}
