package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/payroll"
)

func TestParseClock_Valid(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"09:30", 9, 30},
		{"23:59", 23, 59},
	}

	for _, tt := range tests {
		ct, err := payroll.ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hour, ct.Hour)
		assert.Equal(t, tt.minute, ct.Minute)
		assert.Equal(t, tt.in, ct.String())
	}
}

func TestParseClock_Malformed(t *testing.T) {
	for _, in := range []string{
		"", "9:30", "0930", "24:00", "12:60", "ab:cd", "12:3x", "12-30", "12:30:00",
	} {
		_, err := payroll.ParseClock(in)
		assert.ErrorIs(t, err, payroll.ErrMalformedTime, "input %q", in)

		var parseErr *payroll.TimeParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, in, parseErr.Input)
	}
}

func TestMinutesBetween_WrapsPastMidnight(t *testing.T) {
	assert.Equal(t, 480, payroll.MinutesBetween(payroll.MustClock("09:00"), payroll.MustClock("17:00")))
	assert.Equal(t, 480, payroll.MinutesBetween(payroll.MustClock("22:00"), payroll.MustClock("06:00")))
	assert.Equal(t, 0, payroll.MinutesBetween(payroll.MustClock("12:00"), payroll.MustClock("12:00")))
	assert.Equal(t, 1, payroll.MinutesBetween(payroll.MustClock("23:59"), payroll.MustClock("00:00")))
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := payroll.ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.String())

	_, err = payroll.ParseDate("02/03/2026")
	assert.ErrorIs(t, err, payroll.ErrMalformedTime)
}

func TestDaysBetween(t *testing.T) {
	a := payroll.MustDate("2026-03-02")
	assert.Equal(t, 1, payroll.DaysBetween(a, a.AddDays(1)))
	assert.Equal(t, 0, payroll.DaysBetween(a, a))
	assert.Equal(t, -2, payroll.DaysBetween(a, a.AddDays(-2)))
	// Month boundary.
	assert.Equal(t, 1, payroll.DaysBetween(payroll.MustDate("2026-02-28"), payroll.MustDate("2026-03-01")))
}
