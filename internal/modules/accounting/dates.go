package accounting

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used across the engine. The form is
// lexicographically sortable, so plain string comparison orders dates.
const DateLayout = "2006-01-02"

// ParseLocalDate parses a YYYY-MM-DD string into a calendar date anchored at
// local noon. Anchoring at noon instead of midnight keeps the date from
// shifting to the previous day when the value is later converted through a
// UTC timestamp. Malformed input fails soft: ok is false and the zero time
// is returned, never a panic.
func ParseLocalDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)

	// time.Date normalizes out-of-range days (2024-02-31 becomes March 2nd),
	// which counts as malformed input here.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}

	return d, true
}

// SafeTimestamp returns the epoch-millisecond equivalent of a YYYY-MM-DD
// string, or ok=false when the input is malformed.
func SafeTimestamp(s string) (int64, bool) {
	d, ok := ParseLocalDate(s)
	if !ok {
		return 0, false
	}
	return d.UnixMilli(), true
}

// IsToday reports calendar-day equality against the current local date.
func IsToday(s string) bool {
	d, ok := ParseLocalDate(s)
	if !ok {
		return false
	}
	now := time.Now()
	return d.Year() == now.Year() && d.Month() == now.Month() && d.Day() == now.Day()
}

// Today returns the current local date in engine form.
func Today() string {
	return time.Now().Format(DateLayout)
}
