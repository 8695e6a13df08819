/*
store.go - Persistence interfaces for timesheets and rate cards

PURPOSE:
  Defines the interface between the domain logic and the database. The
  engine itself is pure; stores exist for the service and API layers.
  Different implementations can use SQLite or in-memory storage.

SEMANTICS:
  Keyed object store: list-all, get-by-id, put (upsert), delete. Put
  replaces the whole record; there is no partial update. Missing ids
  surface as ErrTimesheetNotFound / ErrRateCardNotFound sentinels.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go:  Production SQLite
  - payroll/store/memory.go: In-memory for testing/dev
*/
package payroll

import "context"

// TimesheetStore persists timesheets.
type TimesheetStore interface {
	// ListTimesheets returns all timesheets, ordered by week ending then id.
	ListTimesheets(ctx context.Context) ([]Timesheet, error)

	// GetTimesheet returns one timesheet, or ErrTimesheetNotFound.
	GetTimesheet(ctx context.Context, id TimesheetID) (*Timesheet, error)

	// PutTimesheet inserts or replaces a timesheet.
	PutTimesheet(ctx context.Context, ts Timesheet) error

	// DeleteTimesheet removes a timesheet, or returns ErrTimesheetNotFound.
	DeleteTimesheet(ctx context.Context, id TimesheetID) error
}

// RateCardStore persists rate cards.
type RateCardStore interface {
	// ListRateCards returns all rate cards, ordered by client then role.
	ListRateCards(ctx context.Context) ([]RateCard, error)

	// GetRateCard returns one rate card, or ErrRateCardNotFound.
	GetRateCard(ctx context.Context, id string) (*RateCard, error)

	// PutRateCard inserts or replaces a rate card.
	PutRateCard(ctx context.Context, rc RateCard) error

	// DeleteRateCard removes a rate card, or returns ErrRateCardNotFound.
	DeleteRateCard(ctx context.Context, id string) error
}

// Store combines both stores; concrete backends implement this.
type Store interface {
	TimesheetStore
	RateCardStore
}
