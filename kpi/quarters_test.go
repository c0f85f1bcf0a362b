package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

func TestCurrentQuarter(t *testing.T) {
	assert.Equal(t, "2025-Q1", CurrentQuarter(utils.MustParseDate("2025-03-31")))
	assert.Equal(t, "2025-Q2", CurrentQuarter(utils.MustParseDate("2025-04-01")))
	assert.Equal(t, "2025-Q4", CurrentQuarter(utils.MustParseDate("2025-12-25")))
}

func TestQuarterStart(t *testing.T) {
	assert.Equal(t, utils.MustParseDate("2025-07-01"), QuarterStart(utils.MustParseDate("2025-08-25")))
	assert.Equal(t, utils.MustParseDate("2025-01-01"), QuarterStart(utils.MustParseDate("2025-01-01")))
}

func TestQuarterDates(t *testing.T) {
	start, end, err := QuarterDates("2025-Q2")
	require.NoError(t, err)
	assert.Equal(t, utils.MustParseDate("2025-04-01"), start)
	assert.Equal(t, utils.MustParseDate("2025-06-30"), end)

	_, _, err = QuarterDates("2025-Q5")
	assert.Error(t, err)
	_, _, err = QuarterDates("garbage")
	assert.Error(t, err)
}

func TestQuartersBetween(t *testing.T) {
	got := QuartersBetween(
		time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, []string{"2024-Q4", "2025-Q1", "2025-Q2"}, got)
}
