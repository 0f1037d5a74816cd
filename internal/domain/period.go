package domain

import "time"

// WeekOf returns the ISO-8601 year and week number for t. ISO weeks are
// Thursday-anchored, so the first days of January can belong to the last
// week of the previous year.
func WeekOf(t time.Time) (year, week int) {
	return t.UTC().ISOWeek()
}

// DayStart truncates t to midnight UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = DayStart(t)
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7 // Sunday belongs to the week that started six days earlier
	}
	return t.AddDate(0, 0, 1-offset)
}
