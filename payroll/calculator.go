/*
calculator.go - Shift pricing

PURPOSE:
  Converts a raw shift description (times, break, classification) into a
  priced ShiftEntry: worked hours, effective rate, multiplier, and amount.

ALGORITHM:
  1. Raw minutes = end - start, wrapping past midnight when negative.
  2. Subtract break minutes, floor at zero, convert to hours.
  3. Round hours to the configured fraction-of-hour step (half up).
  4. Select multiplier: rate card fields when a card applies, otherwise the
     premium table; forced to 1.0 when premiums are disabled.
  5. Effective rate = base rate x multiplier; amount = hours x rate.

MULTIPLIER SELECTION:
  A rate card defines overtime/weekend/night/holiday multipliers only.
  Every other classification (standard included) prices at 1.0 on the card
  path. The premium-table path covers all eight classifications.

PURITY:
  No side effects beyond the generated shift id. Two calls with identical
  inputs produce identical hours, rate, multiplier, and amount.

SEE ALSO:
  - classify.go: Picks the ShiftType fed into pricing
  - types.go:    PremiumTable and RateCard definitions
*/
package payroll

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBaseRate is the hourly rate used when neither a rate card nor an
// explicit base rate is supplied.
var DefaultBaseRate = decimal.NewFromInt(15)

// DefaultRoundStep is the default fraction-of-hour rounding granularity.
var DefaultRoundStep = decimal.RequireFromString("0.25")

// ShiftInput is the raw, unpriced description of one worked shift.
type ShiftInput struct {
	Date         Date
	Type         ShiftType
	Start        ClockTime
	End          ClockTime
	BreakMinutes int
}

// CalcOptions configures pricing. The zero value means: default base rate,
// premiums disabled, no rounding. Most callers want DefaultCalcOptions.
type CalcOptions struct {
	// RateCard, when set, supplies the base rate and the named multipliers.
	RateCard *RateCard

	// BaseRate applies when no rate card is supplied. Zero means
	// DefaultBaseRate.
	BaseRate decimal.Decimal

	// ApplyPremiums enables multiplier selection. When false the multiplier
	// is forced to 1.0 regardless of classification.
	ApplyPremiums bool

	// RoundToNearest is the fraction-of-hour rounding step. Zero disables
	// rounding.
	RoundToNearest decimal.Decimal

	// Premiums is the multiplier table used when no rate card is supplied.
	// Nil means DefaultPremiums().
	Premiums PremiumTable
}

// DefaultCalcOptions returns the documented defaults: base rate 15.0,
// premiums applied, quarter-hour rounding, built-in premium table.
func DefaultCalcOptions() CalcOptions {
	return CalcOptions{
		BaseRate:       DefaultBaseRate,
		ApplyPremiums:  true,
		RoundToNearest: DefaultRoundStep,
		Premiums:       DefaultPremiums(),
	}
}

// ComputeShiftPay prices a shift. It returns an error only for input the
// engine refuses to compute on (unknown classification, negative break);
// everything else is a pure calculation.
func ComputeShiftPay(in ShiftInput, opts CalcOptions) (ShiftEntry, error) {
	if !in.Type.Known() {
		return ShiftEntry{}, &UnknownShiftTypeError{Type: in.Type}
	}
	if in.BreakMinutes < 0 {
		return ShiftEntry{}, ErrNegativeBreak
	}

	hours := workedHours(in.Start, in.End, in.BreakMinutes)
	if opts.RoundToNearest.IsPositive() {
		hours = roundToStep(hours, opts.RoundToNearest)
	}

	multiplier := selectMultiplier(in.Type, opts)
	rate := baseRate(opts).Mul(multiplier)
	amount := hours.Mul(rate)

	return ShiftEntry{
		ID:             ShiftID(uuid.NewString()),
		Date:           in.Date,
		Type:           in.Type,
		Start:          in.Start,
		End:            in.End,
		BreakMinutes:   in.BreakMinutes,
		Hours:          hours,
		Rate:           rate,
		RateMultiplier: multiplier,
		Amount:         amount,
	}, nil
}

// workedHours computes hours worked net of break, floored at zero.
func workedHours(start, end ClockTime, breakMinutes int) decimal.Decimal {
	minutes := MinutesBetween(start, end) - breakMinutes
	if minutes < 0 {
		minutes = 0
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}

// roundToStep rounds hours to the nearest multiple of step, half up.
func roundToStep(hours, step decimal.Decimal) decimal.Decimal {
	// decimal.Round is half-away-from-zero; hours are non-negative here, so
	// this is round-half-up.
	return hours.Div(step).Round(0).Mul(step)
}

func selectMultiplier(t ShiftType, opts CalcOptions) decimal.Decimal {
	if !opts.ApplyPremiums {
		return decimal.NewFromInt(1)
	}
	if opts.RateCard != nil {
		return opts.RateCard.Multiplier(t)
	}
	premiums := opts.Premiums
	if premiums == nil {
		premiums = DefaultPremiums()
	}
	return premiums.For(t)
}

func baseRate(opts CalcOptions) decimal.Decimal {
	if opts.RateCard != nil {
		return opts.RateCard.StandardRate
	}
	if opts.BaseRate.IsZero() {
		return DefaultBaseRate
	}
	return opts.BaseRate
}
