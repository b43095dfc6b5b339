package domain

import "time"

// DateOnly truncates t to midnight UTC of the same calendar date
// The service works in a single implicit timezone, dates are stored as DATE
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay returns true if both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WallClock moves the wall clock reading of t to UTC without shifting it
// Slots keep "HH:MM" without a zone, so the current time is compared to them by wall clock
func WallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC)
}
