/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through the shared validator before touching domain logic. DTOs
  remain pure data carriers.
*/
package api

import (
	"time"

	"github.com/warp/timesheet-engine/payroll"
	"github.com/warp/timesheet-engine/ratecard"
)

// =============================================================================
// TIMESHEETS
// =============================================================================

// ShiftEntryDTO represents a priced shift in API responses.
type ShiftEntryDTO struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Type           string `json:"shift_type"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	BreakMinutes   int    `json:"break_minutes"`
	Hours          string `json:"hours"`
	Rate           string `json:"rate"`
	RateMultiplier string `json:"rate_multiplier"`
	Amount         string `json:"amount"`
}

// TimesheetDTO represents a timesheet in API responses.
type TimesheetDTO struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"worker_id"`
	WorkerName string          `json:"worker_name"`
	ClientName string          `json:"client_name"`
	WeekEnding string          `json:"week_ending"`
	Hours      string          `json:"hours"`
	Amount     string          `json:"amount"`
	Status     string          `json:"status"`
	Shifts     []ShiftEntryDTO `json:"shifts,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
}

// ShiftInputRequest is one raw shift in a submission. ShiftType may be
// omitted; the server then classifies from start time, weekday, and the
// holiday flag.
type ShiftInputRequest struct {
	Date         string `json:"date" validate:"required"`
	ShiftType    string `json:"shift_type,omitempty"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
	IsHoliday    bool   `json:"is_holiday,omitempty"`
}

// CalcOptionsRequest configures pricing for a submission.
type CalcOptionsRequest struct {
	RateCardID     string   `json:"rate_card_id,omitempty"`
	BaseRate       *float64 `json:"base_rate,omitempty" validate:"omitempty,gt=0"`
	ApplyPremiums  *bool    `json:"apply_premiums,omitempty"`
	RoundToNearest *float64 `json:"round_to_nearest,omitempty" validate:"omitempty,gte=0"`
}

// CreateTimesheetRequest submits a timesheet for a worker/client/week.
type CreateTimesheetRequest struct {
	WorkerID   string              `json:"worker_id" validate:"required"`
	WorkerName string              `json:"worker_name" validate:"required"`
	ClientName string              `json:"client_name" validate:"required"`
	WeekEnding string              `json:"week_ending" validate:"required"`
	Shifts     []ShiftInputRequest `json:"shifts" validate:"required,min=1,dive"`
	Options    *CalcOptionsRequest `json:"options,omitempty"`
}

// ValidationResultDTO is the outcome of validating a timesheet.
type ValidationResultDTO struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateTimesheetRequest optionally overrides the working-time pattern.
type ValidateTimesheetRequest struct {
	Pattern *ratecard.PatternJSON `json:"pattern,omitempty"`
}

// =============================================================================
// SHIFT PRICING / CLASSIFICATION
// =============================================================================

// PriceShiftRequest previews pricing for a single shift.
type PriceShiftRequest struct {
	Shift   ShiftInputRequest   `json:"shift" validate:"required"`
	Options *CalcOptionsRequest `json:"options,omitempty"`
}

// ClassifyShiftRequest asks for a classification.
type ClassifyShiftRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	Date      string `json:"date" validate:"required"`
	IsHoliday bool   `json:"is_holiday,omitempty"`
}

// ClassifyShiftResponse carries the selected classification.
type ClassifyShiftResponse struct {
	ShiftType string `json:"shift_type"`
}

// =============================================================================
// RATE CARDS
// =============================================================================

// RateCardDTO wraps the factory JSON shape for responses.
type RateCardDTO = ratecard.CardJSON

// =============================================================================
// REPORTS
// =============================================================================

// GroupResultDTO is one group row in an aggregation report.
type GroupResultDTO struct {
	Key     string `json:"key"`
	Count   int    `json:"count"`
	Sum     string `json:"sum"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTimesheetDTO(ts payroll.Timesheet) TimesheetDTO {
	dto := TimesheetDTO{
		ID:         string(ts.ID),
		WorkerID:   string(ts.WorkerID),
		WorkerName: ts.WorkerName,
		ClientName: ts.ClientName,
		WeekEnding: ts.WeekEnding.String(),
		Hours:      ts.Hours.String(),
		Amount:     ts.Amount.String(),
		Status:     string(ts.Status),
	}
	if !ts.CreatedAt.IsZero() {
		dto.CreatedAt = ts.CreatedAt.Format(time.RFC3339)
	}
	if !ts.UpdatedAt.IsZero() {
		dto.UpdatedAt = ts.UpdatedAt.Format(time.RFC3339)
	}
	for _, sh := range ts.Shifts {
		dto.Shifts = append(dto.Shifts, ShiftEntryDTO{
			ID:             string(sh.ID),
			Date:           sh.Date.String(),
			Type:           string(sh.Type),
			StartTime:      sh.Start.String(),
			EndTime:        sh.End.String(),
			BreakMinutes:   sh.BreakMinutes,
			Hours:          sh.Hours.String(),
			Rate:           sh.Rate.String(),
			RateMultiplier: sh.RateMultiplier.String(),
			Amount:         sh.Amount.String(),
		})
	}
	return dto
}

func toValidationDTO(r payroll.ValidationResult) ValidationResultDTO {
	dto := ValidationResultDTO{
		IsValid:  r.IsValid,
		Errors:   r.Errors,
		Warnings: r.Warnings,
	}
	// Keep arrays non-null in JSON.
	if dto.Errors == nil {
		dto.Errors = []string{}
	}
	if dto.Warnings == nil {
		dto.Warnings = []string{}
	}
	return dto
}
