package services

import "time"

// MonthRange returns the first and last calendar day of t's month, at
// midnight in t's location.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last = first.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return first, last
}

// today returns t's calendar day as midnight UTC, the form dates are
// parsed and stored in.
func today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayNumber orders dates by their own calendar day, ignoring time of day
// and location.
func dayNumber(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
