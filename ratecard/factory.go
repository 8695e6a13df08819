/*
factory.go - JSON to Go rate-card and time-pattern conversion

PURPOSE:
  Converts JSON definitions into payroll.RateCard and payroll.TimePattern
  values. This enables configuration without code changes - back-office
  staff can define client agreements and working-time limits in JSON, and
  the factory creates the proper Go structs with defaults filled in.

JSON SCHEMA (rate card):
  {
    "id": "acme-rn-2026",
    "client_name": "Acme Care",
    "role": "RN",
    "standard_rate": "22.50",
    "overtime_multiplier": "1.5",
    "weekend_multiplier": "1.5",
    "night_multiplier": "1.33",
    "holiday_multiplier": "2.0",
    "effective_from": "2026-01-01",
    "effective_to": "2026-12-31"
  }

DEFAULTS:
  Omitted multipliers default to 1.0. Every multiplier must be >= 1.0; a
  premium never discounts the base rate.

JSON SCHEMA (time pattern):
  {
    "max_hours_per_day": 12,
    "max_hours_per_week": 48,
    "max_consecutive_days": 6,
    "min_break_minutes": 30,
    "min_rest_hours": 11
  }
  Omitted fields take the documented defaults.
*/
package ratecard

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CardJSON is the JSON representation of a rate card. Rates and multipliers
// are strings to keep decimal precision through the JSON boundary.
type CardJSON struct {
	ID                 string `json:"id"`
	ClientName         string `json:"client_name"`
	Role               string `json:"role"`
	StandardRate       string `json:"standard_rate"`
	OvertimeMultiplier string `json:"overtime_multiplier,omitempty"`
	WeekendMultiplier  string `json:"weekend_multiplier,omitempty"`
	NightMultiplier    string `json:"night_multiplier,omitempty"`
	HolidayMultiplier  string `json:"holiday_multiplier,omitempty"`
	EffectiveFrom      string `json:"effective_from"`
	EffectiveTo        string `json:"effective_to,omitempty"`
}

// PatternJSON is the JSON representation of working-time limits.
type PatternJSON struct {
	MaxHoursPerDay     *float64 `json:"max_hours_per_day,omitempty"`
	MaxHoursPerWeek    *float64 `json:"max_hours_per_week,omitempty"`
	MaxConsecutiveDays *int     `json:"max_consecutive_days,omitempty"`
	MinBreakMinutes    *int     `json:"min_break_minutes,omitempty"`
	MinRestHours       *float64 `json:"min_rest_hours,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseCard converts a JSON rate-card definition into a payroll.RateCard.
func ParseCard(data []byte) (payroll.RateCard, error) {
	var raw CardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return payroll.RateCard{}, fmt.Errorf("invalid rate card JSON: %w", err)
	}
	return CardFromJSON(raw)
}

// CardFromJSON builds a payroll.RateCard from its JSON shape, applying
// defaults and validating the premium floor.
func CardFromJSON(raw CardJSON) (payroll.RateCard, error) {
	if raw.ID == "" {
		return payroll.RateCard{}, fmt.Errorf("rate card id is required")
	}
	if raw.ClientName == "" {
		return payroll.RateCard{}, fmt.Errorf("rate card client_name is required")
	}

	std, err := decimal.NewFromString(raw.StandardRate)
	if err != nil {
		return payroll.RateCard{}, fmt.Errorf("invalid standard_rate %q: %w", raw.StandardRate, err)
	}
	if !std.IsPositive() {
		return payroll.RateCard{}, fmt.Errorf("standard_rate must be positive, got %s", std)
	}

	card := payroll.RateCard{
		ID:           raw.ID,
		ClientName:   raw.ClientName,
		Role:         raw.Role,
		StandardRate: std,
	}

	type mult struct {
		field string
		value string
		dst   *decimal.Decimal
	}
	for _, m := range []mult{
		{"overtime_multiplier", raw.OvertimeMultiplier, &card.OvertimeMultiplier},
		{"weekend_multiplier", raw.WeekendMultiplier, &card.WeekendMultiplier},
		{"night_multiplier", raw.NightMultiplier, &card.NightMultiplier},
		{"holiday_multiplier", raw.HolidayMultiplier, &card.HolidayMultiplier},
	} {
		if m.value == "" {
			*m.dst = decimal.NewFromInt(1)
			continue
		}
		d, err := decimal.NewFromString(m.value)
		if err != nil {
			return payroll.RateCard{}, fmt.Errorf("invalid %s %q: %w", m.field, m.value, err)
		}
		if d.LessThan(decimal.NewFromInt(1)) {
			return payroll.RateCard{}, fmt.Errorf("%s must be >= 1.0, got %s", m.field, d)
		}
		*m.dst = d
	}

	from, err := payroll.ParseDate(raw.EffectiveFrom)
	if err != nil {
		return payroll.RateCard{}, fmt.Errorf("invalid effective_from: %w", err)
	}
	card.EffectiveFrom = from

	if raw.EffectiveTo != "" {
		to, err := payroll.ParseDate(raw.EffectiveTo)
		if err != nil {
			return payroll.RateCard{}, fmt.Errorf("invalid effective_to: %w", err)
		}
		if to.Before(from) {
			return payroll.RateCard{}, fmt.Errorf("effective_to %s precedes effective_from %s", to, from)
		}
		card.EffectiveTo = &to
	}

	return card, nil
}

// ToJSON converts a payroll.RateCard back to its JSON shape.
func ToJSON(card payroll.RateCard) CardJSON {
	out := CardJSON{
		ID:                 card.ID,
		ClientName:         card.ClientName,
		Role:               card.Role,
		StandardRate:       card.StandardRate.String(),
		OvertimeMultiplier: card.OvertimeMultiplier.String(),
		WeekendMultiplier:  card.WeekendMultiplier.String(),
		NightMultiplier:    card.NightMultiplier.String(),
		HolidayMultiplier:  card.HolidayMultiplier.String(),
		EffectiveFrom:      card.EffectiveFrom.String(),
	}
	if card.EffectiveTo != nil {
		out.EffectiveTo = card.EffectiveTo.String()
	}
	return out
}

// ParsePattern converts a JSON time-pattern definition into a
// payroll.TimePattern, filling omitted fields from the documented defaults.
func ParsePattern(data []byte) (payroll.TimePattern, error) {
	var raw PatternJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return payroll.TimePattern{}, fmt.Errorf("invalid time pattern JSON: %w", err)
	}
	return PatternFromJSON(raw)
}

// PatternFromJSON builds a payroll.TimePattern from its JSON shape.
func PatternFromJSON(raw PatternJSON) (payroll.TimePattern, error) {
	p := payroll.DefaultTimePattern()
	if raw.MaxHoursPerDay != nil {
		if *raw.MaxHoursPerDay <= 0 {
			return payroll.TimePattern{}, fmt.Errorf("max_hours_per_day must be positive")
		}
		p.MaxHoursPerDay = decimal.NewFromFloat(*raw.MaxHoursPerDay)
	}
	if raw.MaxHoursPerWeek != nil {
		if *raw.MaxHoursPerWeek <= 0 {
			return payroll.TimePattern{}, fmt.Errorf("max_hours_per_week must be positive")
		}
		p.MaxHoursPerWeek = decimal.NewFromFloat(*raw.MaxHoursPerWeek)
	}
	if raw.MaxConsecutiveDays != nil {
		if *raw.MaxConsecutiveDays <= 0 {
			return payroll.TimePattern{}, fmt.Errorf("max_consecutive_days must be positive")
		}
		p.MaxConsecutiveDays = *raw.MaxConsecutiveDays
	}
	if raw.MinBreakMinutes != nil {
		if *raw.MinBreakMinutes < 0 {
			return payroll.TimePattern{}, fmt.Errorf("min_break_minutes must be non-negative")
		}
		p.MinBreakMinutes = *raw.MinBreakMinutes
	}
	if raw.MinRestHours != nil {
		if *raw.MinRestHours < 0 {
			return payroll.TimePattern{}, fmt.Errorf("min_rest_hours must be non-negative")
		}
		p.MinRestHours = decimal.NewFromFloat(*raw.MinRestHours)
	}
	return p, nil
}
