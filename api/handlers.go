/*
handlers.go - HTTP API handlers for the timesheet engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Timesheets:
    GET    /api/timesheets               List (optional ?q= search query)
    POST   /api/timesheets               Submit (price shifts, persist pending)
    GET    /api/timesheets/{id}          Get one
    DELETE /api/timesheets/{id}          Delete
    POST   /api/timesheets/{id}/validate Validate against a time pattern
    POST   /api/timesheets/{id}/approve  pending -> approved
    POST   /api/timesheets/{id}/reject   pending -> rejected
    POST   /api/timesheets/{id}/process  approved -> processing
    POST   /api/timesheets/{id}/reopen   rejected -> pending

  Shifts:
    POST   /api/shifts/price             Preview pricing for one shift
    POST   /api/shifts/classify          Classify a shift start time

  Rate cards:
    GET    /api/ratecards                List
    POST   /api/ratecards                Create/replace from JSON definition
    GET    /api/ratecards/{id}           Get one
    DELETE /api/ratecards/{id}           Delete
    GET    /api/ratecards/resolve        ?client=&role=&date= lookup

  Reports:
    GET    /api/reports/summary          ?group_by=client&metric=hours

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed input, validation tag failures, bad time strings
  - 404: Timesheet or rate card not found
  - 409: Illegal status transition
  - 500: Internal errors

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/timesheet-engine/payroll"
	"github.com/warp/timesheet-engine/ratecard"
	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/search"
	"github.com/warp/timesheet-engine/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      payroll.Store
	Timesheets *timesheet.Service
	Log        *logrus.Logger

	// BaseRate is the fallback hourly rate for shifts priced without a rate
	// card or explicit request override.
	BaseRate decimal.Decimal

	validate *validator.Validate
}

// NewHandler creates a new handler with the given store.
func NewHandler(store payroll.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:      store,
		Timesheets: timesheet.NewService(store),
		Log:        log,
		BaseRate:   payroll.DefaultBaseRate,
		validate:   validator.New(),
	}
}

// =============================================================================
// TIMESHEET HANDLERS
// =============================================================================

// ListTimesheets returns all timesheets, optionally filtered by ?q=.
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	timesheets, err := h.Store.ListTimesheets(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list timesheets", err)
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		timesheets = search.Filter(timesheets, q)
	}

	dtos := make([]TimesheetDTO, len(timesheets))
	for i, ts := range timesheets {
		dtos[i] = toTimesheetDTO(ts)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTimesheet prices the submitted shifts and persists a pending
// timesheet.
func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req CreateTimesheetRequest
	if !h.decode(w, r, &req) {
		return
	}

	weekEnding, err := payroll.ParseDate(req.WeekEnding)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid week_ending", err)
		return
	}

	shifts, err := h.toShiftInputs(req.Shifts)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid shift", err)
		return
	}

	opts, err := h.toCalcOptions(r, req.Options)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid options", err)
		return
	}

	ts, err := h.Timesheets.Submit(r.Context(), timesheet.BuildInput{
		WorkerID:   payroll.WorkerID(req.WorkerID),
		WorkerName: req.WorkerName,
		ClientName: req.ClientName,
		WeekEnding: weekEnding,
		Shifts:     shifts,
	}, opts)
	if err != nil {
		h.writeDomainError(w, "failed to create timesheet", err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"timesheet": ts.ID,
		"worker":    ts.WorkerName,
		"client":    ts.ClientName,
	}).Info("timesheet submitted")
	writeJSON(w, http.StatusCreated, toTimesheetDTO(ts))
}

// GetTimesheet returns a single timesheet.
func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	id := payroll.TimesheetID(chi.URLParam(r, "id"))

	ts, err := h.Store.GetTimesheet(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "failed to get timesheet", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetDTO(*ts))
}

// DeleteTimesheet removes a timesheet.
func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	id := payroll.TimesheetID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteTimesheet(r.Context(), id); err != nil {
		h.writeDomainError(w, "failed to delete timesheet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateTimesheet evaluates a stored timesheet against a time pattern
// (the documented defaults unless the request overrides them).
func (h *Handler) ValidateTimesheet(w http.ResponseWriter, r *http.Request) {
	id := payroll.TimesheetID(chi.URLParam(r, "id"))

	pattern := payroll.DefaultTimePattern()
	if r.ContentLength > 0 {
		var req ValidateTimesheetRequest
		if !h.decode(w, r, &req) {
			return
		}
		if req.Pattern != nil {
			var err error
			pattern, err = ratecard.PatternFromJSON(*req.Pattern)
			if err != nil {
				h.writeError(w, http.StatusBadRequest, "invalid pattern", err)
				return
			}
		}
	}

	result, err := h.Timesheets.Validate(r.Context(), id, pattern)
	if err != nil {
		h.writeDomainError(w, "failed to validate timesheet", err)
		return
	}
	writeJSON(w, http.StatusOK, toValidationDTO(result))
}

// ApproveTimesheet handles pending -> approved.
func (h *Handler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Timesheets.Approve)
}

// RejectTimesheet handles pending -> rejected.
func (h *Handler) RejectTimesheet(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Timesheets.Reject)
}

// ProcessTimesheet handles approved -> processing.
func (h *Handler) ProcessTimesheet(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Timesheets.MarkProcessing)
}

// ReopenTimesheet handles rejected -> pending.
func (h *Handler) ReopenTimesheet(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Timesheets.Reopen)
}

type transitionFunc func(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	id := payroll.TimesheetID(chi.URLParam(r, "id"))

	ts, err := fn(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "failed to update timesheet status", err)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"timesheet": ts.ID,
		"status":    ts.Status,
	}).Info("timesheet status changed")
	writeJSON(w, http.StatusOK, toTimesheetDTO(*ts))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// PriceShift previews pricing for a single shift without persisting.
func (h *Handler) PriceShift(w http.ResponseWriter, r *http.Request) {
	var req PriceShiftRequest
	if !h.decode(w, r, &req) {
		return
	}

	inputs, err := h.toShiftInputs([]ShiftInputRequest{req.Shift})
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid shift", err)
		return
	}

	opts, err := h.toCalcOptions(r, req.Options)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid options", err)
		return
	}

	entry, err := payroll.ComputeShiftPay(inputs[0], opts)
	if err != nil {
		h.writeDomainError(w, "failed to price shift", err)
		return
	}

	ts := payroll.Timesheet{Shifts: []payroll.ShiftEntry{entry}}
	writeJSON(w, http.StatusOK, toTimesheetDTO(ts).Shifts[0])
}

// ClassifyShift returns the classification for a start time and date.
func (h *Handler) ClassifyShift(w http.ResponseWriter, r *http.Request) {
	var req ClassifyShiftRequest
	if !h.decode(w, r, &req) {
		return
	}

	start, err := payroll.ParseClock(req.StartTime)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid start_time", err)
		return
	}
	date, err := payroll.ParseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	t := payroll.ClassifyShiftOn(start, date, req.IsHoliday)
	writeJSON(w, http.StatusOK, ClassifyShiftResponse{ShiftType: string(t)})
}

// =============================================================================
// RATE CARD HANDLERS
// =============================================================================

// ListRateCards returns all rate cards.
func (h *Handler) ListRateCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Store.ListRateCards(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list rate cards", err)
		return
	}

	dtos := make([]RateCardDTO, len(cards))
	for i, c := range cards {
		dtos[i] = ratecard.ToJSON(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRateCard creates or replaces a rate card from its JSON definition.
func (h *Handler) CreateRateCard(w http.ResponseWriter, r *http.Request) {
	var raw ratecard.CardJSON
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	card, err := ratecard.CardFromJSON(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid rate card", err)
		return
	}
	if err := h.Store.PutRateCard(r.Context(), card); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to save rate card", err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"rate_card": card.ID,
		"client":    card.ClientName,
	}).Info("rate card saved")
	writeJSON(w, http.StatusCreated, ratecard.ToJSON(card))
}

// GetRateCard returns a single rate card.
func (h *Handler) GetRateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	card, err := h.Store.GetRateCard(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "failed to get rate card", err)
		return
	}
	writeJSON(w, http.StatusOK, ratecard.ToJSON(*card))
}

// DeleteRateCard removes a rate card.
func (h *Handler) DeleteRateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteRateCard(r.Context(), id); err != nil {
		h.writeDomainError(w, "failed to delete rate card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveRateCard looks up the card applying to ?client=&role=&date=.
func (h *Handler) ResolveRateCard(w http.ResponseWriter, r *http.Request) {
	client := r.URL.Query().Get("client")
	role := r.URL.Query().Get("role")
	dateStr := r.URL.Query().Get("date")

	if client == "" {
		h.writeError(w, http.StatusBadRequest, "client query parameter is required", nil)
		return
	}
	on := payroll.Today()
	if dateStr != "" {
		var err error
		on, err = payroll.ParseDate(dateStr)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid date", err)
			return
		}
	}

	cards, err := h.Store.ListRateCards(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list rate cards", err)
		return
	}

	card, ok := ratecard.Resolve(cards, client, role, on)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no rate card applies", nil)
		return
	}
	writeJSON(w, http.StatusOK, ratecard.ToJSON(*card))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// SummaryReport aggregates a numeric column per group:
// ?group_by=client&metric=hours (defaults shown).
func (h *Handler) SummaryReport(w http.ResponseWriter, r *http.Request) {
	groupName := r.URL.Query().Get("group_by")
	if groupName == "" {
		groupName = "client"
	}
	metricName := r.URL.Query().Get("metric")
	if metricName == "" {
		metricName = "hours"
	}

	schema := report.Columns()
	groupBy, ok := report.ColumnByName(schema, groupName)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "unknown group_by column", nil)
		return
	}
	metric, ok := report.ColumnByName(schema, metricName)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "unknown metric column", nil)
		return
	}

	timesheets, err := h.Store.ListTimesheets(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to list timesheets", err)
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		timesheets = search.Filter(timesheets, q)
	}

	groups, err := report.Aggregate(timesheets, groupBy, metric)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "cannot aggregate", err)
		return
	}

	dtos := make([]GroupResultDTO, len(groups))
	for i, g := range groups {
		dtos[i] = GroupResultDTO{
			Key:     g.Key,
			Count:   g.Count,
			Sum:     g.Sum.String(),
			Average: g.Average.String(),
			Min:     g.Min.String(),
			Max:     g.Max.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// decode parses and tag-validates a JSON request body. On failure it writes
// a 400 and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "request validation failed", err)
		return false
	}
	return true
}

// toShiftInputs converts request shifts, classifying when the type is
// omitted.
func (h *Handler) toShiftInputs(reqs []ShiftInputRequest) ([]payroll.ShiftInput, error) {
	out := make([]payroll.ShiftInput, 0, len(reqs))
	for _, sr := range reqs {
		date, err := payroll.ParseDate(sr.Date)
		if err != nil {
			return nil, err
		}
		start, err := payroll.ParseClock(sr.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := payroll.ParseClock(sr.EndTime)
		if err != nil {
			return nil, err
		}

		shiftType := payroll.ShiftType(sr.ShiftType)
		if sr.ShiftType == "" {
			shiftType = payroll.ClassifyShiftOn(start, date, sr.IsHoliday)
		}

		out = append(out, payroll.ShiftInput{
			Date:         date,
			Type:         shiftType,
			Start:        start,
			End:          end,
			BreakMinutes: sr.BreakMinutes,
		})
	}
	return out, nil
}

// toCalcOptions builds engine options from a request, loading the rate card
// when one is referenced.
func (h *Handler) toCalcOptions(r *http.Request, req *CalcOptionsRequest) (payroll.CalcOptions, error) {
	opts := payroll.DefaultCalcOptions()
	opts.BaseRate = h.BaseRate
	if req == nil {
		return opts, nil
	}

	if req.RateCardID != "" {
		card, err := h.Store.GetRateCard(r.Context(), req.RateCardID)
		if err != nil {
			return payroll.CalcOptions{}, err
		}
		opts.RateCard = card
	}
	if req.BaseRate != nil {
		opts.BaseRate = decimal.NewFromFloat(*req.BaseRate)
	}
	if req.ApplyPremiums != nil {
		opts.ApplyPremiums = *req.ApplyPremiums
	}
	if req.RoundToNearest != nil {
		opts.RoundToNearest = decimal.NewFromFloat(*req.RoundToNearest)
	}
	return opts, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
		if status >= 500 {
			h.Log.WithError(err).Error(msg)
		}
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine/service errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, msg string, err error) {
	switch {
	case payroll.IsNotFound(err):
		h.writeError(w, http.StatusNotFound, msg, err)
	case isTransitionError(err):
		h.writeError(w, http.StatusConflict, msg, err)
	case payroll.IsClientError(err):
		h.writeError(w, http.StatusBadRequest, msg, err)
	default:
		h.writeError(w, http.StatusInternalServerError, msg, err)
	}
}

func isTransitionError(err error) bool {
	return errors.Is(err, timesheet.ErrInvalidTransition)
}
