// Package dateutil holds date arithmetic for leave workflows.
package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Session describes how much of each day a leave request covers.
type Session string

const (
	SessionFullDay    Session = "Full Day"
	SessionFirstHalf  Session = "First Half"
	SessionSecondHalf Session = "Second Half"
)

// ParseSession maps a raw string onto a known session; anything
// unrecognized counts as a full day.
func ParseSession(v string) Session {
	switch Session(strings.TrimSpace(v)) {
	case SessionFirstHalf:
		return SessionFirstHalf
	case SessionSecondHalf:
		return SessionSecondHalf
	default:
		return SessionFullDay
	}
}

// Midnight strips the time-of-day in local time, so partial-day timestamps
// don't skew day counts.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LeaveDays returns the inclusive day count of [start, end], in half-day
// increments. Missing dates or end < start yield 0. Half-day sessions
// deduct half a day but never drop below 0.5 once the range is valid.
func LeaveDays(start, end time.Time, session Session) float64 {
	if start.IsZero() || end.IsZero() {
		return 0
	}

	normalizedStart := Midnight(start)
	normalizedEnd := Midnight(end)
	if normalizedEnd.Before(normalizedStart) {
		return 0
	}

	diff := normalizedEnd.Sub(normalizedStart)
	totalDays := math.Floor(diff.Hours()/24) + 1
	if session == SessionFirstHalf || session == SessionSecondHalf {
		return math.Max(0.5, totalDays-0.5)
	}
	return totalDays
}

// FormatDuration renders a day count the way list screens show it:
// "1 Day", "2.5 Days", "-" for zero.
func FormatDuration(days float64) string {
	if days <= 0 {
		return "-"
	}
	value := strings.TrimSuffix(fmt.Sprintf("%.1f", days), ".0")
	if days == 1 {
		return value + " Day"
	}
	return value + " Days"
}
