package sheets

import "strings"

// Kind identifies which export a sheet came from, sniffed from its header.
type Kind string

const (
	KindTimesheet  Kind = "timesheet"
	KindInspection Kind = "inspection"
	KindLLTI       Kind = "llti"
	KindUnknown    Kind = "unknown"
)

var kindSignatures = []struct {
	kind    Kind
	columns []string
}{
	{KindTimesheet, []string{"Saisie heures - Date", "Salarié - Nom", "Facturable"}},
	{KindInspection, []string{"sn", "date_facture", "is_inspected"}},
	{KindInspection, []string{"SN", "Date Facture", "Is Inspected"}},
	{KindLLTI, []string{"N° Facture (Lignes)", "Date Facture (Lignes)", "Pointage dernière date (Segment)"}},
}

// Classify sniffs a header row. A sheet matches a kind when every column of
// one of that kind's signatures is present.
func Classify(header []string) Kind {
	present := map[string]bool{}
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, sig := range kindSignatures {
		all := true
		for _, col := range sig.columns {
			if !present[col] {
				all = false
				break
			}
		}
		if all {
			return sig.kind
		}
	}
	return KindUnknown
}
