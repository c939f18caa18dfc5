package util

import (
	"testing"
	"time"
)

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 8, 31, 17, 45, 3, 0, time.UTC)
	got := MonthStart(in)
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMonthsBack_CrossesYearBoundary(t *testing.T) {
	in := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	got := MonthsBack(in, 5)
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMonthKey(t *testing.T) {
	in := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := MonthKey(in); got != "2026-03" {
		t.Errorf("Expected key '2026-03', got %s", got)
	}
}

func TestPreviousMonth_January(t *testing.T) {
	year, month := PreviousMonth(2026, 1)
	if year != 2025 || month != 12 {
		t.Errorf("Expected 2025/12, got %d/%d", year, month)
	}
}

func TestDaysInMonth_LeapFebruary(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("Expected 29 days, got %d", got)
	}
	if got := DaysInMonth(2025, time.February); got != 28 {
		t.Errorf("Expected 28 days, got %d", got)
	}
}
