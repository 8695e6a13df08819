/*
validate.go - Timesheet validation against working-time limits

PURPOSE:
  Evaluates a Timesheet against a TimePattern and returns accumulated
  errors (block submission) and warnings (surface to the user). Validation
  never throws: partial, correctable input is the normal case for
  timesheet entry, so findings are values the caller decides how to act on.

CHECKS (in order, all independent, none short-circuits another):
  1. Weekly hours cap
  2. Per-day hours cap and missing-break warning (shift detail only)
  3. Consecutive-days limit (stops after the first violation)
  4. Positive amount
  5. Required worker/client identifiers

DETERMINISM:
  Dates are walked in sorted order so two runs over the same timesheet
  produce identical errors/warnings slices, content and order.

NOTE:
  The validator checks limits, not sum-consistency between Timesheet.Hours
  and the shift breakdown; manually overridden totals remain representable.
  See timesheet.Service.Build for where totals are derived from shifts.
*/
package payroll

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ValidationResult carries the outcome of ValidateTimesheet. Warnings never
// affect IsValid.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// breakWarningThreshold is the daily total above which a qualifying break is
// expected.
var breakWarningThreshold = decimal.NewFromInt(6)

// ValidateTimesheet evaluates ts against pattern. Pure and idempotent: the
// same inputs yield the same result, content and order.
func ValidateTimesheet(ts Timesheet, pattern TimePattern) ValidationResult {
	var errs, warns []string

	// 1. Weekly hours cap.
	if ts.Hours.GreaterThan(pattern.MaxHoursPerWeek) {
		errs = append(errs, fmt.Sprintf(
			"total hours %s exceed weekly maximum %s",
			ts.Hours.String(), pattern.MaxHoursPerWeek.String()))
	}

	if len(ts.Shifts) > 0 {
		byDate := make(map[Date][]ShiftEntry)
		for _, s := range ts.Shifts {
			byDate[s.Date] = append(byDate[s.Date], s)
		}
		dates := make([]Date, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		// 2. Per-day cap and break warning.
		for _, d := range dates {
			dayHours := decimal.Zero
			hasBreak := false
			for _, s := range byDate[d] {
				dayHours = dayHours.Add(s.Hours)
				if s.BreakMinutes >= pattern.MinBreakMinutes {
					hasBreak = true
				}
			}
			if dayHours.GreaterThan(pattern.MaxHoursPerDay) {
				errs = append(errs, fmt.Sprintf(
					"hours on %s (%s) exceed daily maximum %s",
					d, dayHours.String(), pattern.MaxHoursPerDay.String()))
			}
			if dayHours.GreaterThan(breakWarningThreshold) && !hasBreak {
				warns = append(warns, fmt.Sprintf(
					"no break of at least %d minutes recorded on %s",
					pattern.MinBreakMinutes, d))
			}
		}

		// 3. Consecutive-days limit. One error at the first violation; the
		// scan does not continue past it.
		streak := 1
		for i := 1; i < len(dates); i++ {
			if DaysBetween(dates[i-1], dates[i]) == 1 {
				streak++
			} else {
				streak = 1
			}
			if streak > pattern.MaxConsecutiveDays {
				errs = append(errs, fmt.Sprintf(
					"more than %d consecutive days worked",
					pattern.MaxConsecutiveDays))
				break
			}
		}
	}

	// 4. Positive amount.
	if !ts.Amount.IsPositive() {
		errs = append(errs, "amount must be positive")
	}

	// 5. Required identifiers.
	if ts.WorkerName == "" || ts.ClientName == "" {
		errs = append(errs, "worker name and client name are required")
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}
