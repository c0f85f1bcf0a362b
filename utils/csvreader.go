package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads a whole CSV payload into rows. Ragged rows are tolerated;
// the loaders validate shape against the header themselves.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ParseCSVDelim is ParseCSV with an explicit separator, for exports written
// by Excel locales that use semicolons.
func ParseCSVDelim(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}
