package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected Kind
	}{
		{
			name:     "Timesheet export",
			header:   []string{"Salarié - Numéro", "Salarié - Nom", "Saisie heures - Date", "Facturable", "Hr_Totale"},
			expected: KindTimesheet,
		},
		{
			name:     "Inspection snake_case",
			header:   []string{"sn", "or_segment", "date_facture", "is_inspected"},
			expected: KindInspection,
		},
		{
			name:     "Inspection display names",
			header:   []string{"SN", "Date Facture", "Is Inspected", "Atelier"},
			expected: KindInspection,
		},
		{
			name: "Lead time export",
			header: []string{
				"N° OR (Segment)", "N° Facture (Lignes)", "Date Facture (Lignes)",
				"Pointage dernière date (Segment)", "Nom Client OR (or)",
			},
			expected: KindLLTI,
		},
		{
			name:     "Unrelated sheet",
			header:   []string{"Foo", "Bar"},
			expected: KindUnknown,
		},
		{
			name:     "Empty header",
			header:   nil,
			expected: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.header))
		})
	}
}
