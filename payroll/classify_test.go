package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/timesheet-engine/payroll"
)

func TestClassifyShift_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		day       time.Weekday
		isHoliday bool
		want      payroll.ShiftType
	}{
		{"holiday beats everything", "23:00", time.Saturday, true, payroll.ShiftHoliday},
		{"saturday is weekend", "09:00", time.Saturday, false, payroll.ShiftWeekend},
		{"sunday is weekend", "23:00", time.Sunday, false, payroll.ShiftWeekend},
		{"22:00 weekday is night", "22:00", time.Monday, false, payroll.ShiftNight},
		{"02:30 weekday is night", "02:30", time.Tuesday, false, payroll.ShiftNight},
		{"05:59 weekday is night", "05:59", time.Wednesday, false, payroll.ShiftNight},
		{"18:00 weekday is evening", "18:00", time.Thursday, false, payroll.ShiftEvening},
		{"21:59 weekday is evening", "21:59", time.Friday, false, payroll.ShiftEvening},
		{"06:00 weekday is early morning", "06:00", time.Monday, false, payroll.ShiftEarlyMorning},
		{"06:59 weekday is early morning", "06:59", time.Monday, false, payroll.ShiftEarlyMorning},
		{"07:00 weekday is standard", "07:00", time.Tuesday, false, payroll.ShiftStandard},
		{"09:00 weekday is standard", "09:00", time.Wednesday, false, payroll.ShiftStandard},
		{"17:59 weekday is standard", "17:59", time.Friday, false, payroll.ShiftStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payroll.ClassifyShift(payroll.MustClock(tt.start), tt.day, tt.isHoliday)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyShiftOn_DerivesWeekday(t *testing.T) {
	// 2026-03-07 is a Saturday.
	got := payroll.ClassifyShiftOn(payroll.MustClock("09:00"), payroll.MustDate("2026-03-07"), false)
	assert.Equal(t, payroll.ShiftWeekend, got)

	// 2026-03-09 is a Monday.
	got = payroll.ClassifyShiftOn(payroll.MustClock("09:00"), payroll.MustDate("2026-03-09"), false)
	assert.Equal(t, payroll.ShiftStandard, got)
}
