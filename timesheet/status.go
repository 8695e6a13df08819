package timesheet

import (
	"errors"
	"fmt"

	"github.com/warp/timesheet-engine/payroll"
)

// ErrInvalidTransition is returned when a status change is not an allowed
// lifecycle edge.
var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionError reports a rejected lifecycle edge.
type TransitionError struct {
	From payroll.TimesheetStatus
	To   payroll.TimesheetStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition timesheet from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// allowedTransitions defines the lifecycle edges. No automatic transitions
// exist; every edge is externally triggered.
var allowedTransitions = map[payroll.TimesheetStatus][]payroll.TimesheetStatus{
	payroll.StatusPending:  {payroll.StatusApproved, payroll.StatusRejected},
	payroll.StatusApproved: {payroll.StatusProcessing},
	payroll.StatusRejected: {payroll.StatusPending},
}

// Transition reports whether from -> to is an allowed lifecycle edge.
func Transition(from, to payroll.TimesheetStatus) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}
