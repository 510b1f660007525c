package gst

import (
	"fmt"
	"strconv"
	"time"

	"gstpilot/internal/domain"
)

// FilingPeriod maps a date to its MMYYYY filing period.
func FilingPeriod(t time.Time) string {
	return fmt.Sprintf("%02d%04d", int(t.Month()), t.Year())
}

// FinancialYear maps a date to the Indian financial year string YYYY-YYYY.
// April through December belong to year-(year+1), January through March to
// (year-1)-year.
func FinancialYear(t time.Time) string {
	y := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%d-%d", y, y+1)
	}
	return fmt.Sprintf("%d-%d", y-1, y)
}

// ParsePeriod splits an MMYYYY period into month and year.
func ParsePeriod(period string) (time.Month, int, error) {
	if len(period) != 6 {
		return 0, 0, domain.ErrInvalidPeriod
	}
	m, err := strconv.Atoi(period[0:2])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, domain.ErrInvalidPeriod
	}
	y, err := strconv.Atoi(period[2:6])
	if err != nil || y < 2017 {
		return 0, 0, domain.ErrInvalidPeriod
	}
	return time.Month(m), y, nil
}

// DueDate returns the statutory due date for filing the given return type
// for a period: GSTR-1 on the 11th of the following month, GSTR-3B on the
// 20th. Annual returns (GSTR-9/9C) are due 31 December after the FY ends.
func DueDate(rt domain.ReturnType, period string) (time.Time, error) {
	month, year, err := ParsePeriod(period)
	if err != nil {
		return time.Time{}, err
	}
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	switch rt {
	case domain.ReturnGSTR1:
		return periodStart.AddDate(0, 1, 10), nil
	case domain.ReturnGSTR3B:
		return periodStart.AddDate(0, 1, 19), nil
	case domain.ReturnGSTR9, domain.ReturnGSTR9C:
		fyEnd := year
		if month >= time.April {
			fyEnd = year + 1
		}
		return time.Date(fyEnd, time.December, 31, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedReturn, rt)
	}
}

// PeriodFinancialYear returns the financial year string for an MMYYYY period.
func PeriodFinancialYear(period string) (string, error) {
	month, year, err := ParsePeriod(period)
	if err != nil {
		return "", err
	}
	return FinancialYear(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)), nil
}
