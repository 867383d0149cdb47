// Package dateutils provides the calendar arithmetic used by the ledger.
// All dates are calendar dates carried as UTC midnight.
package dateutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutMonth    = "2006-01"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

const day = 24 * time.Hour

// CommonFormats is the list of layouts accepted when importing foreign files
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutEuropean,
	DateLayoutUS,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var spaces = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseISODate parses a strict YYYY-MM-DD date.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", dateStr, err)
	}
	return t, nil
}

// ParseDate tries every layout in CommonFormats and returns the calendar date
// together with the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return Truncate(t), layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate converts any accepted layout to YYYY-MM-DD.
func NormalizeDate(dateStr string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// Truncate drops the clock part, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM accounting month of t.
func MonthKey(t time.Time) string {
	return t.Format(DateLayoutMonth)
}

// PreviousMonthKey returns the accounting month before the one containing t.
// January rolls back to December of the prior year.
func PreviousMonthKey(t time.Time) string {
	return MonthKey(StartOfMonth(t).AddDate(0, -1, 0))
}

// SameMonthLastYear returns the year and month one year before t.
func SameMonthLastYear(t time.Time) (int, time.Month) {
	return t.Year() - 1, t.Month()
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// DaysBetweenCeil returns (to - from) in days, rounded up.
func DaysBetweenCeil(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// DaysBetweenFloor returns (to - from) in days, rounded down.
func DaysBetweenFloor(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// AddFractionalDays moves t forward by a possibly fractional number of days.
func AddFractionalDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * float64(day)))
}
