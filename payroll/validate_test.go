package payroll_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func shiftOn(date string, hours string, breakMin int) payroll.ShiftEntry {
	return payroll.ShiftEntry{
		ID:           payroll.ShiftID("shift-" + date),
		Date:         payroll.MustDate(date),
		Type:         payroll.ShiftStandard,
		Start:        payroll.MustClock("09:00"),
		End:          payroll.MustClock("17:00"),
		BreakMinutes: breakMin,
		Hours:        dec(hours),
	}
}

func validTimesheet() payroll.Timesheet {
	return payroll.Timesheet{
		ID:         "ts-1",
		WorkerID:   "w-1",
		WorkerName: "Jane Doe",
		ClientName: "Acme Care",
		WeekEnding: payroll.MustDate("2026-03-08"),
		Hours:      dec("40"),
		Amount:     dec("600"),
		Status:     payroll.StatusPending,
	}
}

// =============================================================================
// WEEKLY CAP
// =============================================================================

func TestValidateTimesheet_WithinLimits_IsValid(t *testing.T) {
	result := payroll.ValidateTimesheet(validTimesheet(), payroll.DefaultTimePattern())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateTimesheet_WeeklyCapExceeded(t *testing.T) {
	// GIVEN: 50 total hours against a 48 hour weekly maximum
	// WHEN: Validating
	// THEN: Exactly one weekly-hours error; invalid

	ts := validTimesheet()
	ts.Hours = dec("50")

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "50")
	assert.Contains(t, result.Errors[0], "48")
}

// =============================================================================
// PER-DAY CHECKS
// =============================================================================

func TestValidateTimesheet_DailyCapAndMissingBreak(t *testing.T) {
	// GIVEN: Two shifts on one date totaling 13 hours, neither with a
	//        qualifying break
	// WHEN: Validating against 12h/day and 30 min minimum break
	// THEN: A daily-cap error AND a missing-break warning

	ts := validTimesheet()
	ts.Shifts = []payroll.ShiftEntry{
		shiftOn("2026-03-02", "7", 15),
		shiftOn("2026-03-02", "6", 0),
	}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "2026-03-02")
	assert.Contains(t, result.Errors[0], "13")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "30")
}

func TestValidateTimesheet_QualifyingBreakSuppressesWarning(t *testing.T) {
	// One shift on the day carries a 45 minute break; the long day is fine.
	ts := validTimesheet()
	ts.Shifts = []payroll.ShiftEntry{
		shiftOn("2026-03-02", "5", 45),
		shiftOn("2026-03-02", "4", 0),
	}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestValidateTimesheet_WarningsAloneDoNotInvalidate(t *testing.T) {
	// GIVEN: A 7 hour day with no break (warning territory, no error)
	// WHEN: Validating
	// THEN: Still valid; warning present

	ts := validTimesheet()
	ts.Shifts = []payroll.ShiftEntry{shiftOn("2026-03-02", "7", 0)}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
}

func TestValidateTimesheet_ShortDayNeedsNoBreak(t *testing.T) {
	ts := validTimesheet()
	ts.Shifts = []payroll.ShiftEntry{shiftOn("2026-03-02", "6", 0)}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings, "6 hours is not above the break threshold")
}

// =============================================================================
// CONSECUTIVE DAYS
// =============================================================================

func TestValidateTimesheet_ConsecutiveDays_SingleErrorAtFirstViolation(t *testing.T) {
	// GIVEN: Shifts on 8 consecutive calendar dates, max 6
	// WHEN: Validating
	// THEN: Exactly one consecutive-days error; the scan stops at the first
	//       violation instead of re-reporting day 8

	ts := validTimesheet()
	start := payroll.MustDate("2026-03-02")
	for i := 0; i < 8; i++ {
		ts.Shifts = append(ts.Shifts, shiftOn(start.AddDays(i).String(), "5", 30))
	}
	ts.Hours = dec("40")

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	consecutive := 0
	for _, e := range result.Errors {
		if strings.Contains(e, "consecutive") {
			consecutive++
		}
	}
	assert.Equal(t, 1, consecutive)
}

func TestValidateTimesheet_GapResetsStreak(t *testing.T) {
	// 5 days, a gap, then 5 more days: no streak exceeds 6.
	ts := validTimesheet()
	start := payroll.MustDate("2026-03-02")
	for i := 0; i < 5; i++ {
		ts.Shifts = append(ts.Shifts, shiftOn(start.AddDays(i).String(), "4", 30))
	}
	for i := 7; i < 12; i++ {
		ts.Shifts = append(ts.Shifts, shiftOn(start.AddDays(i).String(), "4", 30))
	}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.True(t, result.IsValid, "errors: %v", result.Errors)
}

// =============================================================================
// AMOUNT AND IDENTIFIERS
// =============================================================================

func TestValidateTimesheet_NonPositiveAmount(t *testing.T) {
	ts := validTimesheet()
	ts.Amount = dec("0")

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "positive")
}

func TestValidateTimesheet_MissingIdentifiers_SingleCombinedError(t *testing.T) {
	ts := validTimesheet()
	ts.WorkerName = ""
	ts.ClientName = ""

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "worker name")
	assert.Contains(t, result.Errors[0], "client name")
}

// =============================================================================
// INDEPENDENCE AND IDEMPOTENCE
// =============================================================================

func TestValidateTimesheet_ChecksAreIndependent(t *testing.T) {
	// Weekly cap, amount, and identifier failures all report together.
	ts := payroll.Timesheet{
		ID:     "ts-bad",
		Hours:  dec("60"),
		Amount: dec("-5"),
	}

	result := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
}

func TestValidateTimesheet_Idempotent(t *testing.T) {
	// GIVEN: A timesheet tripping several checks
	// WHEN: Validating twice
	// THEN: Identical errors/warnings, content and order

	ts := validTimesheet()
	ts.Hours = dec("50")
	ts.Shifts = []payroll.ShiftEntry{
		shiftOn("2026-03-02", "7", 0),
		shiftOn("2026-03-02", "6.5", 0),
		shiftOn("2026-03-03", "8", 0),
		shiftOn("2026-03-04", "8", 0),
	}

	first := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())
	second := payroll.ValidateTimesheet(ts, payroll.DefaultTimePattern())

	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.IsValid, second.IsValid)
}

func TestValidateTimesheet_CustomPattern(t *testing.T) {
	pattern := payroll.TimePattern{
		MaxHoursPerDay:     dec("8"),
		MaxHoursPerWeek:    dec("40"),
		MaxConsecutiveDays: 5,
		MinBreakMinutes:    20,
	}

	ts := validTimesheet()
	ts.Hours = dec("41")

	result := payroll.ValidateTimesheet(ts, pattern)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "40")
}
