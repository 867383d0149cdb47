package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expected    time.Time
		expectedFmt string
	}{
		{"ISO", "2025-01-15", true, date(2025, 1, 15), DateLayoutISO},
		{"ISO with spaces", "  2025-01-15 ", true, date(2025, 1, 15), DateLayoutISO},
		{"full timestamp", "2025-01-15 13:45:00", true, date(2025, 1, 15), DateLayoutFull},
		{"RFC3339", "2025-01-15T23:10:00Z", true, date(2025, 1, 15), DateLayoutISO + "T15:04:05Z07:00"},
		{"european", "15.01.2025", true, date(2025, 1, 15), DateLayoutEuropean},
		{"us", "01/15/2025", true, date(2025, 1, 15), DateLayoutUS},
		{"long month", "January 15, 2025", true, date(2025, 1, 15), "January 2, 2006"},
		{"garbage", "not a date", false, time.Time{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, layout, err := ParseDate(tt.dateStr)
			if !tt.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expectedFmt, layout)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("03.02.2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-03", got)

	_, err = NormalizeDate("")
	assert.Error(t, err)
}

func TestParseISODate(t *testing.T) {
	got, err := ParseISODate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), got)

	_, err = ParseISODate("2023-02-29")
	assert.Error(t, err)

	_, err = ParseISODate("29.02.2024")
	assert.Error(t, err)
}

func TestMonthKeys(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		current  string
		previous string
	}{
		{"mid year", date(2025, 6, 10), "2025-06", "2025-05"},
		{"january wraps to december", date(2025, 1, 15), "2025-01", "2024-12"},
		{"march from end of month", time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC), "2025-03", "2025-02"},
		{"december", date(2024, 12, 1), "2024-12", "2024-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.current, MonthKey(tt.today))
			assert.Equal(t, tt.previous, PreviousMonthKey(tt.today))
		})
	}
}

func TestSameMonthLastYear(t *testing.T) {
	y, m := SameMonthLastYear(date(2025, 2, 14))
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
}

func TestTruncate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, 7, 4, 1, 30, 0, 0, loc)
	assert.Equal(t, date(2025, 7, 4), Truncate(in))
}

func TestStartOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), StartOfMonth(date(2024, 2, 17)))
	assert.Equal(t, date(2025, 12, 1), StartOfMonth(date(2025, 12, 31)))
}

func TestDaysBetween(t *testing.T) {
	from := date(2025, 1, 1)

	assert.Equal(t, 7, DaysBetweenCeil(from, date(2025, 1, 8)))
	assert.Equal(t, 0, DaysBetweenCeil(from, from))
	assert.Equal(t, -3, DaysBetweenCeil(from, date(2024, 12, 29)))
	assert.Equal(t, 1, DaysBetweenCeil(from, from.Add(time.Hour)))

	assert.Equal(t, 0, DaysBetweenFloor(from, from.Add(23*time.Hour)))
	assert.Equal(t, 31, DaysBetweenFloor(from, date(2025, 2, 1)))
}

func TestAddFractionalDays(t *testing.T) {
	from := date(2025, 1, 1)
	assert.Equal(t, date(2025, 1, 8), AddFractionalDays(from, 7))
	assert.Equal(t, from.Add(36*time.Hour), AddFractionalDays(from, 1.5))
}
