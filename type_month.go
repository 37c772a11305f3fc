package fineval

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MonthFormat is the canonical "YYYY-MM" rendering of a month key.
const MonthFormat = "2006-01"

// Month is a calendar (year, month) pair used to group daily rows and to
// range-filter monthly series. It is a structured key: formatting to
// "YYYY-MM" happens only at the boundary.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month. Out-of-range month values roll over
// into the adjacent year, so NewMonth(2025, 0) is December 2024.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{y: t.Year(), m: t.Month()}
}

// MonthOf returns the month containing the given date.
func MonthOf(d Date) Month { return Month{y: d.Year(), m: d.Month()} }

// Year returns the year of the month key.
func (m Month) Year() int { return m.y }

// Month returns the calendar month of the month key.
func (m Month) Month() time.Month { return m.m }

// String formats the month key as zero-padded "YYYY-MM".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, int(m.m)) }

// Add returns the month i months after m (or before, for negative i).
// Year boundaries are handled by normalization: January minus one month is
// December of the previous year.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Compare returns -1, 0, or 1 if m is before, equal to, or after x.
func (m Month) Compare(x Month) int {
	a, b := m.y*12+int(m.m), x.y*12+int(x.m)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether the month m is before x.
func (m Month) Before(x Month) bool { return m.Compare(x) < 0 }

// After reports whether the month m is after x.
func (m Month) After(x Month) bool { return m.Compare(x) > 0 }

var monthRE = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ParseMonth parses a strict zero-padded "YYYY-MM" month key.
func ParseMonth(str string) (Month, error) {
	match := monthRE.FindStringSubmatch(str)
	if match == nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q", str, MonthFormat)
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month %q: month %d out of range", str, month)
	}
	return Month{y: year, m: time.Month(month)}, nil
}

// MustMonth is like ParseMonth but panics on error.
func MustMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}
