package sheets

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/utils"
)

// Table is one parsed sheet or CSV file: a header row plus data rows.
type Table struct {
	Name   string
	Kind   Kind
	Header []string
	Rows   [][]string
}

// ReadTabular parses an uploaded file into one table per sheet. Excel files
// keep their sheet names; a CSV yields a single table named after the file.
// Sheets without at least a header row are skipped.
func ReadTabular(r io.Reader, filename string) ([]Table, error) {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".csv") {
		return readCSV(r, filename)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var tables []Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		tables = append(tables, Table{
			Name:   sheet,
			Kind:   Classify(rows[0]),
			Header: rows[0],
			Rows:   rows[1:],
		})
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("workbook has no readable sheets")
	}
	return tables, nil
}

func readCSV(r io.Reader, filename string) ([]Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rows, err := utils.ParseCSV(bytes.NewReader(data))
	if err != nil || len(rows) == 0 || len(rows[0]) < 2 {
		// Excel in French locales writes semicolon-separated files.
		rows, err = utils.ParseCSVDelim(bytes.NewReader(data), ';')
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}
	return []Table{{
		Name:   filename,
		Kind:   Classify(rows[0]),
		Header: rows[0],
		Rows:   rows[1:],
	}}, nil
}

// InspectionRow is one parsed inspection line, before technician attribution.
type InspectionRow struct {
	SN            string
	ORSegment     string
	EquipmentType string
	Workshop      string
	InvoiceDate   time.Time
	IsInspected   bool
}

// Inspection exports come either from the BI tool, with snake_case headers,
// or straight from Excel with display names. Header matching is fuzzy over
// both spellings.
var inspectionAliases = map[string][]string{
	"sn":            {"sn", "numéro série", "numero serie"},
	"or_segment":    {"or_segment", "or segment", "n° or (segment)", "or"},
	"type_materiel": {"type_materiel", "type matériel", "type materiel"},
	"atelier":       {"atelier", "workshop"},
	"date_facture":  {"date_facture", "date facture"},
	"is_inspected":  {"is_inspected", "is inspected", "inspecté", "inspecte"},
}

func inspectionColumns(header []string) map[string]int {
	cols := map[string]int{}
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		for canonical, aliases := range inspectionAliases {
			for _, a := range aliases {
				if name == a {
					cols[canonical] = i
				}
			}
		}
	}
	return cols
}

func parseInspectedCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inspecté", "inspecte", "true", "1", "oui", "yes":
		return true
	}
	return false
}

// ParseInspection maps inspection rows through the fuzzy header lookup.
// The "Non Inspecté" value and anything unrecognized both read as false.
func ParseInspection(header []string, rows [][]string) ([]InspectionRow, error) {
	cols := inspectionColumns(header)
	for _, required := range []string{"sn", "date_facture", "is_inspected"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("inspection sheet is missing column %s", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []InspectionRow
	var bad []kpi.RowError
	for n, row := range rows {
		sn := cell(row, "sn")
		rawDate := cell(row, "date_facture")
		if sn == "" && rawDate == "" {
			continue
		}
		date, err := utils.ParseDate(rawDate)
		if err != nil {
			bad = append(bad, kpi.RowError{Row: n + 2, Value: rawDate, Err: err})
			continue
		}
		out = append(out, InspectionRow{
			SN:            sn,
			ORSegment:     cell(row, "or_segment"),
			EquipmentType: cell(row, "type_materiel"),
			Workshop:      cell(row, "atelier"),
			InvoiceDate:   date,
			IsInspected:   parseInspectedCell(cell(row, "is_inspected")),
		})
	}
	if len(bad) > 0 {
		return nil, &kpi.ParseError{Rows: bad}
	}
	return out, nil
}

// LLTI export columns, as written by the BI tool.
var lltiColumns = []string{
	"N° OR (Segment)",
	"N° Facture (Lignes)",
	"Date Facture (Lignes)",
	"Pointage dernière date (Segment)",
	"Nom Client OR (or)",
	"Numéro série Equipement (Segment)",
	"Constructeur de l'équipement",
}

// ParseLLTI maps raw invoice lines. Missing dates stay nil rather than
// failing the row; the analytics filter them out downstream.
func ParseLLTI(header []string, rows [][]string) ([]kpi.RawInvoice, error) {
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range lltiColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &kpi.MissingColumnError{Columns: missing}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	maybeDate := func(s string) *time.Time {
		if s == "" {
			return nil
		}
		t, err := utils.ParseDate(s)
		if err != nil {
			return nil
		}
		return &t
	}

	var out []kpi.RawInvoice
	for _, row := range rows {
		number := cell(row, "N° Facture (Lignes)")
		if number == "" {
			continue
		}
		out = append(out, kpi.RawInvoice{
			ORSegment:    cell(row, "N° OR (Segment)"),
			Number:       number,
			InvoiceDate:  maybeDate(cell(row, "Date Facture (Lignes)")),
			LastLabor:    maybeDate(cell(row, "Pointage dernière date (Segment)")),
			Client:       cell(row, "Nom Client OR (or)"),
			SN:           cell(row, "Numéro série Equipement (Segment)"),
			Manufacturer: strings.ToUpper(cell(row, "Constructeur de l'équipement")),
		})
	}
	return out, nil
}
