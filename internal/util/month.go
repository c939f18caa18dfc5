package util

import "time"

// MonthStart returns midnight UTC on the first day of t's calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBack returns midnight UTC on the first day of the month n months
// before t's month. n may be zero.
func MonthsBack(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, -n, 0)
}

// MonthKey returns the year-month bucket key for t, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel returns the short display label for t's month, e.g. "Aug 26".
func MonthLabel(t time.Time) string {
	return t.Format("Jan 06")
}

// PreviousMonth returns the year and month preceding the given month.
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
