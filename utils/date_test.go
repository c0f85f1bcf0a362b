package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "ISO", input: "2025-03-14", expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "French slash", input: "14/03/2025", expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "Datetime truncated", input: "2025-03-14 09:30:00", expected: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFloatCell(t *testing.T) {
	v, err := ParseFloatCell("7,5")
	assert.NoError(t, err)
	assert.Equal(t, 7.5, v)

	v, err = ParseFloatCell("")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = ParseFloatCell("abc")
	assert.Error(t, err)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(MustParseDate("2025-03-15")))  // Saturday
	assert.True(t, IsWeekend(MustParseDate("2025-03-16")))  // Sunday
	assert.False(t, IsWeekend(MustParseDate("2025-03-17"))) // Monday
}
