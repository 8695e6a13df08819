package timesheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/payroll"
	"github.com/warp/timesheet-engine/payroll/store"
	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService() *timesheet.Service {
	svc := timesheet.NewService(store.NewMemory())
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func weekInput() timesheet.BuildInput {
	return timesheet.BuildInput{
		WorkerID:   "w-1",
		WorkerName: "Jane Doe",
		ClientName: "Acme Care",
		WeekEnding: payroll.MustDate("2026-03-08"),
		Shifts: []payroll.ShiftInput{
			{
				Date:         payroll.MustDate("2026-03-02"),
				Type:         payroll.ShiftStandard,
				Start:        payroll.MustClock("09:00"),
				End:          payroll.MustClock("17:00"),
				BreakMinutes: 30,
			},
			{
				Date:         payroll.MustDate("2026-03-03"),
				Type:         payroll.ShiftNight,
				Start:        payroll.MustClock("22:00"),
				End:          payroll.MustClock("06:00"),
				BreakMinutes: 0,
			},
		},
	}
}

// =============================================================================
// BUILD
// =============================================================================

func TestService_Build_TotalsAreSumsOverShifts(t *testing.T) {
	// GIVEN: A 7.5h standard shift and an 8h night shift at base rate 15
	// WHEN: Building
	// THEN: Hours 15.5; amount 112.5 + 159.6 = 272.1; status pending

	svc := newTestService()

	ts, err := svc.Build(weekInput(), payroll.DefaultCalcOptions())
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusPending, ts.Status)
	assert.NotEmpty(t, ts.ID)
	require.Len(t, ts.Shifts, 2)
	assert.True(t, ts.Hours.Equal(decimal.RequireFromString("15.5")), "hours %s", ts.Hours)
	assert.True(t, ts.Amount.Equal(decimal.RequireFromString("272.1")), "amount %s", ts.Amount)

	sumHours := decimal.Zero
	sumAmount := decimal.Zero
	for _, sh := range ts.Shifts {
		sumHours = sumHours.Add(sh.Hours)
		sumAmount = sumAmount.Add(sh.Amount)
	}
	assert.True(t, ts.Hours.Equal(sumHours))
	assert.True(t, ts.Amount.Equal(sumAmount))
}

func TestService_Build_BadShiftReportsIndex(t *testing.T) {
	svc := newTestService()
	in := weekInput()
	in.Shifts[1].Type = payroll.ShiftType("mystery")

	_, err := svc.Build(in, payroll.DefaultCalcOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrUnknownShiftType)
	assert.Contains(t, err.Error(), "shift 1")
}

func TestService_Submit_Persists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ts, err := svc.Submit(ctx, weekInput(), payroll.DefaultCalcOptions())
	require.NoError(t, err)

	got, err := svc.Store.GetTimesheet(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, ts.ID, got.ID)
	assert.Len(t, got.Shifts, 2)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestTransition_Edges(t *testing.T) {
	tests := []struct {
		from, to payroll.TimesheetStatus
		ok       bool
	}{
		{payroll.StatusPending, payroll.StatusApproved, true},
		{payroll.StatusPending, payroll.StatusRejected, true},
		{payroll.StatusApproved, payroll.StatusProcessing, true},
		{payroll.StatusRejected, payroll.StatusPending, true},
		{payroll.StatusPending, payroll.StatusProcessing, false},
		{payroll.StatusApproved, payroll.StatusRejected, false},
		{payroll.StatusProcessing, payroll.StatusPending, false},
		{payroll.StatusApproved, payroll.StatusPending, false},
	}

	for _, tt := range tests {
		err := timesheet.Transition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			assert.ErrorIs(t, err, timesheet.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
		}
	}
}

func TestService_ApprovalFlow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ts, err := svc.Submit(ctx, weekInput(), payroll.DefaultCalcOptions())
	require.NoError(t, err)

	// pending -> approved -> processing
	approved, err := svc.Approve(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, approved.Status)

	processing, err := svc.MarkProcessing(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusProcessing, processing.Status)

	// Approving a processing timesheet is illegal.
	_, err = svc.Approve(ctx, ts.ID)
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)

	var te *timesheet.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, payroll.StatusProcessing, te.From)
	assert.Equal(t, payroll.StatusApproved, te.To)
}

func TestService_RejectAndReopen(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ts, err := svc.Submit(ctx, weekInput(), payroll.DefaultCalcOptions())
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusRejected, rejected.Status)

	reopened, err := svc.Reopen(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPending, reopened.Status)
}

func TestService_TransitionUnknownTimesheet(t *testing.T) {
	svc := newTestService()

	_, err := svc.Approve(context.Background(), "ghost")
	assert.ErrorIs(t, err, payroll.ErrTimesheetNotFound)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestService_Validate_UsesStoredTimesheet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ts, err := svc.Submit(ctx, weekInput(), payroll.DefaultCalcOptions())
	require.NoError(t, err)

	result, err := svc.Validate(ctx, ts.ID, payroll.DefaultTimePattern())
	require.NoError(t, err)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)

	// The night shift has no break over an 8 hour day.
	assert.NotEmpty(t, result.Warnings)
}
