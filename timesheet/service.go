/*
Package timesheet implements the timesheet aggregate service on top of the
payroll engine: building priced timesheets from raw shift input, the
approval lifecycle, and validation against a working-time pattern.

LIFECYCLE:
  Timesheets are created pending. Transitions are externally triggered,
  never automatic:

    pending    -> approved | rejected
    approved   -> processing   (payroll/invoice generation picked it up)
    rejected   -> pending      (worker corrects and resubmits)

TOTALS:
  Build derives Hours and Amount as the sums over the priced shifts. The
  validator deliberately does not re-check that consistency, so timesheets
  loaded from elsewhere may carry manually overridden totals.
*/
package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/payroll"
)

// Service builds, transitions, and validates timesheets.
type Service struct {
	Store payroll.Store

	// Now is the clock used for record timestamps. Nil means time.Now.
	Now func() time.Time
}

func NewService(store payroll.Store) *Service {
	return &Service{Store: store}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// =============================================================================
// BUILD - Raw shifts in, priced timesheet out
// =============================================================================

// BuildInput describes an unpriced timesheet submission.
type BuildInput struct {
	WorkerID   payroll.WorkerID
	WorkerName string
	ClientName string
	WeekEnding payroll.Date
	Shifts     []payroll.ShiftInput
}

// Build prices every shift with the given options and assembles a pending
// timesheet whose totals are the sums over the priced shifts. The timesheet
// is not persisted; callers decide when to Put it.
func (s *Service) Build(in BuildInput, opts payroll.CalcOptions) (payroll.Timesheet, error) {
	shifts := make([]payroll.ShiftEntry, 0, len(in.Shifts))
	hours := decimal.Zero
	amount := decimal.Zero

	for i, raw := range in.Shifts {
		entry, err := payroll.ComputeShiftPay(raw, opts)
		if err != nil {
			return payroll.Timesheet{}, fmt.Errorf("shift %d: %w", i, err)
		}
		shifts = append(shifts, entry)
		hours = hours.Add(entry.Hours)
		amount = amount.Add(entry.Amount)
	}

	now := s.now()
	return payroll.Timesheet{
		ID:         payroll.TimesheetID(uuid.NewString()),
		WorkerID:   in.WorkerID,
		WorkerName: in.WorkerName,
		ClientName: in.ClientName,
		WeekEnding: in.WeekEnding,
		Hours:      hours,
		Amount:     amount,
		Status:     payroll.StatusPending,
		Shifts:     shifts,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Submit builds and persists in one step.
func (s *Service) Submit(ctx context.Context, in BuildInput, opts payroll.CalcOptions) (payroll.Timesheet, error) {
	ts, err := s.Build(in, opts)
	if err != nil {
		return payroll.Timesheet{}, err
	}
	if err := s.Store.PutTimesheet(ctx, ts); err != nil {
		return payroll.Timesheet{}, err
	}
	return ts, nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Approve moves a pending timesheet to approved.
func (s *Service) Approve(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	return s.transition(ctx, id, payroll.StatusApproved)
}

// Reject moves a pending timesheet to rejected.
func (s *Service) Reject(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	return s.transition(ctx, id, payroll.StatusRejected)
}

// MarkProcessing flags an approved timesheet as in-flight for payroll or
// invoice generation.
func (s *Service) MarkProcessing(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	return s.transition(ctx, id, payroll.StatusProcessing)
}

// Reopen returns a rejected timesheet to pending for resubmission.
func (s *Service) Reopen(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	return s.transition(ctx, id, payroll.StatusPending)
}

func (s *Service) transition(ctx context.Context, id payroll.TimesheetID, to payroll.TimesheetStatus) (*payroll.Timesheet, error) {
	ts, err := s.Store.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Transition(ts.Status, to); err != nil {
		return nil, err
	}
	ts.Status = to
	ts.UpdatedAt = s.now()
	if err := s.Store.PutTimesheet(ctx, *ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate loads a timesheet and evaluates it against pattern.
func (s *Service) Validate(ctx context.Context, id payroll.TimesheetID, pattern payroll.TimePattern) (payroll.ValidationResult, error) {
	ts, err := s.Store.GetTimesheet(ctx, id)
	if err != nil {
		return payroll.ValidationResult{}, err
	}
	return payroll.ValidateTimesheet(*ts, pattern), nil
}
