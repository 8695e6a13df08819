package payroll

import "time"

// ClassifyShift selects a shift classification from the start time,
// day-of-week, and an explicit holiday flag. Priority order: holiday,
// weekend, then hour-of-day bands. Total function; no failure modes.
func ClassifyShift(start ClockTime, day time.Weekday, isHoliday bool) ShiftType {
	if isHoliday {
		return ShiftHoliday
	}
	if day == time.Saturday || day == time.Sunday {
		return ShiftWeekend
	}
	switch {
	case start.Hour >= 22 || start.Hour < 6:
		return ShiftNight
	case start.Hour >= 18:
		return ShiftEvening
	case start.Hour < 7:
		// Only hour 6 reaches here; earlier hours are claimed by the night
		// band above.
		return ShiftEarlyMorning
	default:
		return ShiftStandard
	}
}

// ClassifyShiftOn is a convenience wrapper deriving the weekday from a date.
func ClassifyShiftOn(start ClockTime, date Date, isHoliday bool) ShiftType {
	return ClassifyShift(start, date.Weekday(), isHoliday)
}
