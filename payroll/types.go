/*
Package payroll provides the core shift-pay and timesheet-validation engine.

PURPOSE:
  This package contains the domain types and pure algorithms for pricing
  worked shifts and validating timesheets against working-time limits.
  It has no I/O, no persistence, and no concurrency of its own: every
  function is a pure transformation over caller-supplied inputs.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftType:   Classification tag driving which premium multiplier applies
  - ShiftEntry:  A single priced shift within a timesheet
  - RateCard:    A client/role pay agreement (base rate + named multipliers)
  - Timesheet:   The approval unit grouping one worker's hours for one client
  - TimePattern: Working-time limits used by the validator

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for hours, rates, and amounts to avoid
     floating-point drift in money math.
  2. Explicit configuration: Default premium tables and time patterns are
     values constructed by DefaultPremiums()/DefaultTimePattern(), passed in
     by callers, never hidden package statics.
  3. Non-throwing validation: Invalid timesheet content is reported as
     accumulated errors/warnings, not Go errors. The single hardened input
     path is clock-time parsing (see clock.go).

SEE ALSO:
  - calculator.go: Shift pricing
  - classify.go:   Shift classification
  - validate.go:   Timesheet validation
  - store.go:      Persistence interfaces
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT TYPE - Classification driving premium selection
// =============================================================================

type ShiftType string

const (
	ShiftStandard     ShiftType = "standard"
	ShiftOvertime     ShiftType = "overtime"
	ShiftWeekend      ShiftType = "weekend"
	ShiftNight        ShiftType = "night"
	ShiftHoliday      ShiftType = "holiday"
	ShiftEvening      ShiftType = "evening"
	ShiftEarlyMorning ShiftType = "early-morning"
	ShiftSplit        ShiftType = "split-shift"
)

// ShiftTypes lists every known classification, in premium-table order.
func ShiftTypes() []ShiftType {
	return []ShiftType{
		ShiftStandard, ShiftOvertime, ShiftWeekend, ShiftNight,
		ShiftHoliday, ShiftEvening, ShiftEarlyMorning, ShiftSplit,
	}
}

// Known reports whether t is one of the defined shift types.
func (t ShiftType) Known() bool {
	switch t {
	case ShiftStandard, ShiftOvertime, ShiftWeekend, ShiftNight,
		ShiftHoliday, ShiftEvening, ShiftEarlyMorning, ShiftSplit:
		return true
	}
	return false
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ShiftID string
type TimesheetID string
type WorkerID string

// =============================================================================
// SHIFT ENTRY - One priced shift within a timesheet
// =============================================================================

// ShiftEntry is one worked shift after pricing. Immutable once produced by
// the calculator; a timesheet holds an ordered sequence of these.
//
// Derived fields (Hours, Rate, RateMultiplier, Amount) are outputs of
// ComputeShiftPay, never authoritative input.
type ShiftEntry struct {
	ID           ShiftID
	Date         Date
	Type         ShiftType
	Start        ClockTime
	End          ClockTime
	BreakMinutes int

	Hours          decimal.Decimal // worked hours after break deduction and rounding
	Rate           decimal.Decimal // effective hourly rate (base x multiplier)
	RateMultiplier decimal.Decimal // multiplier actually applied
	Amount         decimal.Decimal // Hours x Rate
}

// =============================================================================
// RATE CARD - Client/role pay agreement
// =============================================================================

// RateCard is a client/role-specific pay agreement. A card is usable only
// when the date in question falls inside [EffectiveFrom, EffectiveTo];
// a nil EffectiveTo means open-ended.
//
// The card defines named multipliers for overtime, weekend, night, and
// holiday shifts only. Other classifications (including standard) price at
// 1.0 when a card is in play.
type RateCard struct {
	ID         string
	ClientName string
	Role       string

	StandardRate       decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	WeekendMultiplier  decimal.Decimal
	NightMultiplier    decimal.Decimal
	HolidayMultiplier  decimal.Decimal

	EffectiveFrom Date
	EffectiveTo   *Date
}

// CoversDate reports whether the card's validity window contains d.
func (rc *RateCard) CoversDate(d Date) bool {
	if d.Before(rc.EffectiveFrom) {
		return false
	}
	if rc.EffectiveTo != nil && d.After(*rc.EffectiveTo) {
		return false
	}
	return true
}

// Multiplier returns the card-defined multiplier for a shift type.
// Types the card has no field for price at 1.0.
func (rc *RateCard) Multiplier(t ShiftType) decimal.Decimal {
	switch t {
	case ShiftOvertime:
		return rc.OvertimeMultiplier
	case ShiftWeekend:
		return rc.WeekendMultiplier
	case ShiftNight:
		return rc.NightMultiplier
	case ShiftHoliday:
		return rc.HolidayMultiplier
	default:
		return decimal.NewFromInt(1)
	}
}

// =============================================================================
// TIMESHEET - The approval unit
// =============================================================================

type TimesheetStatus string

const (
	StatusPending    TimesheetStatus = "pending"
	StatusApproved   TimesheetStatus = "approved"
	StatusRejected   TimesheetStatus = "rejected"
	StatusProcessing TimesheetStatus = "processing"
)

// Timesheet groups one worker's hours for one client over one reporting
// period. Shifts is optional: a timesheet may carry a single entered total
// with no shift-level detail.
type Timesheet struct {
	ID         TimesheetID
	WorkerID   WorkerID
	WorkerName string
	ClientName string
	WeekEnding Date

	Hours  decimal.Decimal
	Amount decimal.Decimal
	Status TimesheetStatus

	Shifts []ShiftEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// TIME PATTERN - Working-time limits (validation configuration)
// =============================================================================

// TimePattern bundles the working-time limits the validator checks against.
// MinRestHours is accepted as configuration but not evaluated by the
// validator today; it is carried for callers that enforce rest periods
// upstream.
type TimePattern struct {
	MaxHoursPerDay     decimal.Decimal
	MaxHoursPerWeek    decimal.Decimal
	MaxConsecutiveDays int
	MinBreakMinutes    int
	MinRestHours       decimal.Decimal
}

// DefaultTimePattern mirrors typical working-time regulation defaults:
// 12h/day, 48h/week, 6 consecutive days, 30 min minimum break, 11h rest.
func DefaultTimePattern() TimePattern {
	return TimePattern{
		MaxHoursPerDay:     decimal.NewFromInt(12),
		MaxHoursPerWeek:    decimal.NewFromInt(48),
		MaxConsecutiveDays: 6,
		MinBreakMinutes:    30,
		MinRestHours:       decimal.NewFromInt(11),
	}
}

// =============================================================================
// PREMIUM TABLE - Built-in multipliers used when no rate card applies
// =============================================================================

// PremiumTable maps a shift classification to its pay multiplier.
type PremiumTable map[ShiftType]decimal.Decimal

// DefaultPremiums returns the built-in premium table. Callers pass this (or
// their own table) into CalcOptions; the calculator never consults a hidden
// global.
func DefaultPremiums() PremiumTable {
	return PremiumTable{
		ShiftStandard:     decimal.NewFromInt(1),
		ShiftOvertime:     decimal.RequireFromString("1.5"),
		ShiftWeekend:      decimal.RequireFromString("1.5"),
		ShiftNight:        decimal.RequireFromString("1.33"),
		ShiftHoliday:      decimal.NewFromInt(2),
		ShiftEvening:      decimal.RequireFromString("1.25"),
		ShiftEarlyMorning: decimal.RequireFromString("1.25"),
		ShiftSplit:        decimal.RequireFromString("1.15"),
	}
}

// For returns the table multiplier for t, defaulting to 1.0 for unknown or
// unlisted types.
func (p PremiumTable) For(t ShiftType) decimal.Decimal {
	if m, ok := p[t]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}
