// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/timesheet-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	timesheets map[payroll.TimesheetID]payroll.Timesheet
	rateCards  map[string]payroll.RateCard
}

var _ payroll.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		timesheets: make(map[payroll.TimesheetID]payroll.Timesheet),
		rateCards:  make(map[string]payroll.RateCard),
	}
}

func (m *Memory) ListTimesheets(_ context.Context) ([]payroll.Timesheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.Timesheet, 0, len(m.timesheets))
	for _, ts := range m.timesheets {
		result = append(result, cloneTimesheet(ts))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeekEnding.Equal(result[j].WeekEnding) {
			return result[i].WeekEnding.Before(result[j].WeekEnding)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *Memory) GetTimesheet(_ context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ts, ok := m.timesheets[id]
	if !ok {
		return nil, payroll.ErrTimesheetNotFound
	}
	c := cloneTimesheet(ts)
	return &c, nil
}

func (m *Memory) PutTimesheet(_ context.Context, ts payroll.Timesheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timesheets[ts.ID] = cloneTimesheet(ts)
	return nil
}

func (m *Memory) DeleteTimesheet(_ context.Context, id payroll.TimesheetID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.timesheets[id]; !ok {
		return payroll.ErrTimesheetNotFound
	}
	delete(m.timesheets, id)
	return nil
}

func (m *Memory) ListRateCards(_ context.Context) ([]payroll.RateCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]payroll.RateCard, 0, len(m.rateCards))
	for _, rc := range m.rateCards {
		result = append(result, rc)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ClientName != result[j].ClientName {
			return result[i].ClientName < result[j].ClientName
		}
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *Memory) GetRateCard(_ context.Context, id string) (*payroll.RateCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rc, ok := m.rateCards[id]
	if !ok {
		return nil, payroll.ErrRateCardNotFound
	}
	return &rc, nil
}

func (m *Memory) PutRateCard(_ context.Context, rc payroll.RateCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rateCards[rc.ID] = rc
	return nil
}

func (m *Memory) DeleteRateCard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rateCards[id]; !ok {
		return payroll.ErrRateCardNotFound
	}
	delete(m.rateCards, id)
	return nil
}

// cloneTimesheet copies the shift slice so callers cannot mutate stored state.
func cloneTimesheet(ts payroll.Timesheet) payroll.Timesheet {
	if ts.Shifts != nil {
		shifts := make([]payroll.ShiftEntry, len(ts.Shifts))
		copy(shifts, ts.Shifts)
		ts.Shifts = shifts
	}
	return ts
}
