/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Note the split between Go errors and validation findings:

  - Go errors: malformed input the engine refuses to compute on
    (clock-time parse failures, unknown shift types, bad options).
  - Validation findings: business-rule violations reported as accumulated
    errors/warnings inside ValidationResult. Findings are values, never
    returned through the error channel, because partial, correctable input
    is the normal case for timesheet entry.

USAGE:
  Callers can branch on sentinels:

    if errors.Is(err, payroll.ErrMalformedTime) {
        // reject the raw form field, keep the rest of the shift
    }

SEE ALSO:
  - clock.go:    Produces TimeParseError
  - validate.go: Produces ValidationResult findings
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedTime is returned when an HH:MM or YYYY-MM-DD string fails
	// to parse. Wrapped by TimeParseError.
	ErrMalformedTime = errors.New("malformed time string")

	// ErrUnknownShiftType is returned when pricing is requested for a shift
	// type outside the defined classification set.
	ErrUnknownShiftType = errors.New("unknown shift type")

	// ErrNegativeBreak is returned when break minutes are negative.
	ErrNegativeBreak = errors.New("break minutes must be non-negative")

	// ErrTimesheetNotFound is returned by stores when a timesheet id does
	// not exist.
	ErrTimesheetNotFound = errors.New("timesheet not found")

	// ErrRateCardNotFound is returned by stores when a rate card id does
	// not exist.
	ErrRateCardNotFound = errors.New("rate card not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TimeParseError reports a malformed clock-time or date string.
type TimeParseError struct {
	Input  string
	Reason string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

func (e *TimeParseError) Unwrap() error { return ErrMalformedTime }

// UnknownShiftTypeError reports an unrecognized classification.
type UnknownShiftTypeError struct {
	Type ShiftType
}

func (e *UnknownShiftTypeError) Error() string {
	return fmt.Sprintf("unknown shift type %q", string(e.Type))
}

func (e *UnknownShiftTypeError) Unwrap() error { return ErrUnknownShiftType }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedTime) ||
		errors.Is(err, ErrUnknownShiftType) ||
		errors.Is(err, ErrNegativeBreak)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTimesheetNotFound) ||
		errors.Is(err, ErrRateCardNotFound)
}
