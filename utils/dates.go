// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// BeginningOfWeek returns midnight of the Monday of t's week.
func BeginningOfWeek(t time.Time) time.Time {
	daysFromMonday := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		daysFromMonday = 6
	}
	return BeginningOfDay(t.AddDate(0, 0, -daysFromMonday))
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// Display-only formatting helpers; not part of any data contract.

func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}
