package gst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstpilot/internal/domain"
)

func TestFilingPeriod(t *testing.T) {
	assert.Equal(t, "042024", FilingPeriod(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "122023", FilingPeriod(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "012025", FilingPeriod(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFinancialYear(t *testing.T) {
	assert.Equal(t, "2024-2025", FinancialYear(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-2025", FinancialYear(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-2024", FinancialYear(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2023-2024", FinancialYear(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParsePeriod(t *testing.T) {
	m, y, err := ParsePeriod("042024")
	require.NoError(t, err)
	assert.Equal(t, time.April, m)
	assert.Equal(t, 2024, y)

	for _, bad := range []string{"", "42024", "132024", "002024", "041999", "ABCDEF"} {
		_, _, err := ParsePeriod(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "period %q", bad)
	}
}

func TestDueDate(t *testing.T) {
	d, err := DueDate(domain.ReturnGSTR1, "042024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), d)

	d, err = DueDate(domain.ReturnGSTR3B, "042024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), d)

	d, err = DueDate(domain.ReturnGSTR9, "042024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = DueDate(domain.ReturnType("GSTR5"), "042024")
	assert.ErrorIs(t, err, domain.ErrUnsupportedReturn)
}

func TestPeriodFinancialYear(t *testing.T) {
	fy, err := PeriodFinancialYear("012024")
	require.NoError(t, err)
	assert.Equal(t, "2023-2024", fy)
}
