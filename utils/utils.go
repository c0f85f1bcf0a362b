package utils

import (
	"math"
	"strconv"
	"strings"
)

func Ptr[T any](v T) *T {
	return &v
}

// Round2 rounds a percentage or hour total to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseFloatCell converts a numeric spreadsheet cell, treating blanks as 0
// and tolerating a French decimal comma.
func ParseFloatCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
