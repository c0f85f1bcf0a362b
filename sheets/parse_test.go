package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

func TestReadTabularCSV(t *testing.T) {
	csv := "sn,date_facture,is_inspected\nSN-1,2025-03-10,Inspecté\n"

	tables, err := ReadTabular(strings.NewReader(csv), "export.csv")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "export.csv", tables[0].Name)
	assert.Equal(t, KindInspection, tables[0].Kind)
	assert.Len(t, tables[0].Rows, 1)
}

func TestReadTabularSemicolonCSV(t *testing.T) {
	csv := "sn;date_facture;is_inspected\nSN-1;2025-03-10;Non Inspecté\n"

	tables, err := ReadTabular(strings.NewReader(csv), "export.csv")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"sn", "date_facture", "is_inspected"}, tables[0].Header)
}

func TestParseInspection(t *testing.T) {
	header := []string{"SN", "OR Segment", "Type Matériel", "Atelier", "Date Facture", "Is Inspected"}
	rows := [][]string{
		{"SN-1", "OR-100", "Pelle", "Atelier A", "2025-03-10", "Inspecté"},
		{"SN-2", "OR-101", "Chargeuse", "Atelier B", "10/03/2025", "Non Inspecté"},
		{"", "", "", "", "", ""},
	}

	out, err := ParseInspection(header, rows)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "SN-1", out[0].SN)
	assert.Equal(t, "OR-100", out[0].ORSegment)
	assert.True(t, out[0].IsInspected)
	assert.Equal(t, utils.MustParseDate("2025-03-10"), out[0].InvoiceDate)

	assert.False(t, out[1].IsInspected)
	assert.Equal(t, utils.MustParseDate("2025-03-10"), out[1].InvoiceDate)
}

func TestParseInspectionMissingColumn(t *testing.T) {
	_, err := ParseInspection([]string{"SN", "Date Facture"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_inspected")
}

func TestParseLLTI(t *testing.T) {
	header := []string{
		"N° OR (Segment)", "N° Facture (Lignes)", "Date Facture (Lignes)",
		"Pointage dernière date (Segment)", "Nom Client OR (or)",
		"Numéro série Equipement (Segment)", "Constructeur de l'équipement",
	}
	rows := [][]string{
		{"OR-1", "F-100", "2025-03-10", "2025-03-01", "CLIENT SA", "SN-1", "Caterpillar"},
		{"OR-2", "F-101", "", "2025-03-01", "CLIENT SA", "SN-2", "CATERPILLAR"},
		{"OR-3", "", "2025-03-10", "2025-03-01", "CLIENT SA", "SN-3", "CATERPILLAR"},
	}

	out, err := ParseLLTI(header, rows)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "F-100", out[0].Number)
	assert.Equal(t, "CATERPILLAR", out[0].Manufacturer)
	require.NotNil(t, out[0].InvoiceDate)
	assert.Equal(t, utils.MustParseDate("2025-03-10"), *out[0].InvoiceDate)

	// Missing dates come through nil and get filtered downstream.
	assert.Nil(t, out[1].InvoiceDate)
	assert.NotNil(t, out[1].LastLabor)
}

func TestParseLLTIMissingColumns(t *testing.T) {
	_, err := ParseLLTI([]string{"N° Facture (Lignes)"}, nil)
	assert.Error(t, err)
}
