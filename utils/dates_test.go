package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 3, 4, 17, 45, 30, 12345, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestBeginningOfWeek(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   time.Time
	}{
		{"monday", time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BeginningOfWeek(tc.in); !got.Equal(monday) {
				t.Errorf("BeginningOfWeek(%v) = %v, want %v", tc.in, got, monday)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(end, end); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	in := time.Date(2026, 3, 4, 9, 5, 0, 0, time.UTC)
	if got := FormatDate(in); got != "04.03.2026" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatTime(in); got != "09:05" {
		t.Errorf("FormatTime = %q", got)
	}
	if got := FormatDateTime(in); got != "04.03.2026 09:05" {
		t.Errorf("FormatDateTime = %q", got)
	}
}
