package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK TIME - Local time-of-day (HH:MM, 24-hour)
// =============================================================================

// ClockTime is a local time-of-day with minute precision. Shifts whose end
// reads earlier than their start wrap past midnight (overnight shifts).
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour "HH:MM" string. This is the one hardened input
// path of the engine: malformed strings return a *TimeParseError instead of
// propagating garbage into pay math.
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, &TimeParseError{Input: s, Reason: "expected HH:MM"}
	}
	digits := [4]byte{s[0], s[1], s[3], s[4]}
	for _, d := range digits {
		if d < '0' || d > '9' {
			return ClockTime{}, &TimeParseError{Input: s, Reason: "expected HH:MM"}
		}
	}
	h := int(digits[0]-'0')*10 + int(digits[1]-'0')
	m := int(digits[2]-'0')*10 + int(digits[3]-'0')
	if h > 23 {
		return ClockTime{}, &TimeParseError{Input: s, Reason: "hour out of range"}
	}
	if m > 59 {
		return ClockTime{}, &TimeParseError{Input: s, Reason: "minute out of range"}
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// MustClock is a test/fixture helper; panics on malformed input.
func MustClock(s string) ClockTime {
	ct, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (c ClockTime) MinuteOfDay() int { return c.Hour*60 + c.Minute }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// MinutesBetween returns the minutes from start to end, wrapping past
// midnight when end reads earlier than start.
func MinutesBetween(start, end ClockTime) int {
	d := end.MinuteOfDay() - start.MinuteOfDay()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// =============================================================================
// DATE - Calendar day (no time component)
// =============================================================================

// Date is a calendar day. The zero value is "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// Normalize through time.Date so e.g. Feb 30 becomes Mar 1/2.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &TimeParseError{Input: s, Reason: "expected YYYY-MM-DD"}
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustDate is a test/fixture helper; panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string  { return d.Time().Format("2006-01-02") }
func (d Date) IsZero() bool    { return d == Date{} }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

func (d Date) AddDays(n int) Date {
	t := d.Time().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DaysBetween returns the whole calendar days from a to b.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}
