package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestLeaveDaysInclusiveFullDayCount(t *testing.T) {
	got := LeaveDays(date(2025, time.January, 1), date(2025, time.January, 3), SessionFullDay)
	require.Equal(t, 3.0, got)
}

func TestLeaveDaysSingleDay(t *testing.T) {
	got := LeaveDays(date(2025, time.March, 1), date(2025, time.March, 1), SessionFullDay)
	require.Equal(t, 1.0, got)
}

func TestLeaveDaysHalfDaySessionOnSingleDay(t *testing.T) {
	for _, session := range []Session{SessionFirstHalf, SessionSecondHalf} {
		got := LeaveDays(date(2025, time.March, 1), date(2025, time.March, 1), session)
		require.Equal(t, 0.5, got, "session %q", session)
	}
}

func TestLeaveDaysHalfDaySessionOnMultiDayRange(t *testing.T) {
	got := LeaveDays(date(2025, time.January, 1), date(2025, time.January, 3), SessionFirstHalf)
	require.Equal(t, 2.5, got)
}

func TestLeaveDaysEndBeforeStart(t *testing.T) {
	for _, session := range []Session{SessionFullDay, SessionFirstHalf, SessionSecondHalf} {
		got := LeaveDays(date(2025, time.May, 10), date(2025, time.May, 1), session)
		require.Equal(t, 0.0, got, "session %q", session)
	}
}

func TestLeaveDaysMissingDates(t *testing.T) {
	require.Equal(t, 0.0, LeaveDays(time.Time{}, date(2025, time.May, 1), SessionFullDay))
	require.Equal(t, 0.0, LeaveDays(date(2025, time.May, 1), time.Time{}, SessionFullDay))
}

func TestLeaveDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.Local)
	end := time.Date(2025, time.January, 2, 0, 15, 0, 0, time.Local)
	require.Equal(t, 2.0, LeaveDays(start, end, SessionFullDay))
}

func TestParseSession(t *testing.T) {
	require.Equal(t, SessionFirstHalf, ParseSession("First Half"))
	require.Equal(t, SessionSecondHalf, ParseSession(" Second Half "))
	require.Equal(t, SessionFullDay, ParseSession("Full Day"))
	require.Equal(t, SessionFullDay, ParseSession("whatever"))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "1 Day", FormatDuration(1))
	require.Equal(t, "0.5 Days", FormatDuration(0.5))
	require.Equal(t, "2.5 Days", FormatDuration(2.5))
	require.Equal(t, "3 Days", FormatDuration(3))
	require.Equal(t, "-", FormatDuration(0))
}
