/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements payroll.Store (timesheets + rate cards) using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  timesheets: One row per timesheet aggregate
  shifts:     Shift-level detail, ordered by position within a timesheet
  rate_cards: Client/role pay agreements with validity windows

NUMERIC STORAGE:
  Hours, rates, and amounts are stored as decimal strings, never floats.
  They round-trip through shopspring/decimal exactly.

PUT SEMANTICS:
  PutTimesheet replaces the aggregate wholesale inside one SQL
  transaction: the timesheet row is upserted and the shift rows are
  rewritten. Partial shift updates cannot leave a torn aggregate.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/timesheets.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/store.go:       Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/payroll"
)

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
}

var _ payroll.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timesheets (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		worker_name TEXT NOT NULL,
		client_name TEXT NOT NULL,
		week_ending TEXT NOT NULL,
		hours TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timesheets_week_ending
		ON timesheets(week_ending);
	CREATE INDEX IF NOT EXISTS idx_timesheets_worker
		ON timesheets(worker_id);
	CREATE INDEX IF NOT EXISTS idx_timesheets_status
		ON timesheets(status);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		timesheet_id TEXT NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		shift_date TEXT NOT NULL,
		shift_type TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL,
		hours TEXT NOT NULL,
		rate TEXT NOT NULL,
		rate_multiplier TEXT NOT NULL,
		amount TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_timesheet
		ON shifts(timesheet_id, position);

	CREATE TABLE IF NOT EXISTS rate_cards (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		role TEXT NOT NULL,
		standard_rate TEXT NOT NULL,
		overtime_multiplier TEXT NOT NULL,
		weekend_multiplier TEXT NOT NULL,
		night_multiplier TEXT NOT NULL,
		holiday_multiplier TEXT NOT NULL,
		effective_from TEXT NOT NULL,
		effective_to TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_rate_cards_client_role
		ON rate_cards(client_name, role);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TIMESHEETS
// =============================================================================

const timesheetColumns = `id, worker_id, worker_name, client_name, week_ending,
	hours, amount, status, created_at, updated_at`

func (s *Store) ListTimesheets(ctx context.Context) ([]payroll.Timesheet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets ORDER BY week_ending, id`)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	defer rows.Close()

	var out []payroll.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		shifts, err := s.loadShifts(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Shifts = shifts
	}
	return out, nil
}

func (s *Store) GetTimesheet(ctx context.Context, id payroll.TimesheetID) (*payroll.Timesheet, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE id = ?`, string(id))

	ts, err := scanTimesheet(row)
	if err == sql.ErrNoRows {
		return nil, payroll.ErrTimesheetNotFound
	}
	if err != nil {
		return nil, err
	}

	shifts, err := s.loadShifts(ctx, ts.ID)
	if err != nil {
		return nil, err
	}
	ts.Shifts = shifts
	return &ts, nil
}

func (s *Store) PutTimesheet(ctx context.Context, ts payroll.Timesheet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO timesheets (`+timesheetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			worker_name = excluded.worker_name,
			client_name = excluded.client_name,
			week_ending = excluded.week_ending,
			hours = excluded.hours,
			amount = excluded.amount,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		string(ts.ID), string(ts.WorkerID), ts.WorkerName, ts.ClientName,
		ts.WeekEnding.String(), ts.Hours.String(), ts.Amount.String(),
		string(ts.Status),
		ts.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ts.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	if err != nil {
		return fmt.Errorf("put timesheet: %w", err)
	}

	// Rewrite the shift rows wholesale.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM shifts WHERE timesheet_id = ?`, string(ts.ID)); err != nil {
		return fmt.Errorf("clear shifts: %w", err)
	}
	for i, sh := range ts.Shifts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shifts (id, timesheet_id, position, shift_date,
				shift_type, start_time, end_time, break_minutes,
				hours, rate, rate_multiplier, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(sh.ID), string(ts.ID), i, sh.Date.String(),
			string(sh.Type), sh.Start.String(), sh.End.String(),
			sh.BreakMinutes, sh.Hours.String(), sh.Rate.String(),
			sh.RateMultiplier.String(), sh.Amount.String())
		if err != nil {
			return fmt.Errorf("put shift %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteTimesheet(ctx context.Context, id payroll.TimesheetID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM timesheets WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete timesheet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrTimesheetNotFound
	}
	return nil
}

func (s *Store) loadShifts(ctx context.Context, id payroll.TimesheetID) ([]payroll.ShiftEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, shift_date, shift_type, start_time, end_time,
			break_minutes, hours, rate, rate_multiplier, amount
		FROM shifts WHERE timesheet_id = ? ORDER BY position`, string(id))
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	defer rows.Close()

	var out []payroll.ShiftEntry
	for rows.Next() {
		var (
			sh                              payroll.ShiftEntry
			sid, date, stype, start, end    string
			hours, rate, multiplier, amount string
		)
		if err := rows.Scan(&sid, &date, &stype, &start, &end,
			&sh.BreakMinutes, &hours, &rate, &multiplier, &amount); err != nil {
			return nil, err
		}
		sh.ID = payroll.ShiftID(sid)
		sh.Type = payroll.ShiftType(stype)
		if sh.Date, err = payroll.ParseDate(date); err != nil {
			return nil, fmt.Errorf("shift %s: %w", sid, err)
		}
		if sh.Start, err = payroll.ParseClock(start); err != nil {
			return nil, fmt.Errorf("shift %s: %w", sid, err)
		}
		if sh.End, err = payroll.ParseClock(end); err != nil {
			return nil, fmt.Errorf("shift %s: %w", sid, err)
		}
		if sh.Hours, err = decimal.NewFromString(hours); err != nil {
			return nil, fmt.Errorf("shift %s hours: %w", sid, err)
		}
		if sh.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("shift %s rate: %w", sid, err)
		}
		if sh.RateMultiplier, err = decimal.NewFromString(multiplier); err != nil {
			return nil, fmt.Errorf("shift %s multiplier: %w", sid, err)
		}
		if sh.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("shift %s amount: %w", sid, err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row rowScanner) (payroll.Timesheet, error) {
	var (
		ts                          payroll.Timesheet
		id, workerID, week          string
		hours, amount, status       string
		createdAt, updatedAt        string
	)
	err := row.Scan(&id, &workerID, &ts.WorkerName, &ts.ClientName, &week,
		&hours, &amount, &status, &createdAt, &updatedAt)
	if err != nil {
		return payroll.Timesheet{}, err
	}

	ts.ID = payroll.TimesheetID(id)
	ts.WorkerID = payroll.WorkerID(workerID)
	ts.Status = payroll.TimesheetStatus(status)
	if ts.WeekEnding, err = payroll.ParseDate(week); err != nil {
		return payroll.Timesheet{}, fmt.Errorf("timesheet %s: %w", id, err)
	}
	if ts.Hours, err = decimal.NewFromString(hours); err != nil {
		return payroll.Timesheet{}, fmt.Errorf("timesheet %s hours: %w", id, err)
	}
	if ts.Amount, err = decimal.NewFromString(amount); err != nil {
		return payroll.Timesheet{}, fmt.Errorf("timesheet %s amount: %w", id, err)
	}
	if ts.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return payroll.Timesheet{}, fmt.Errorf("timesheet %s created_at: %w", id, err)
	}
	if ts.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return payroll.Timesheet{}, fmt.Errorf("timesheet %s updated_at: %w", id, err)
	}
	return ts, nil
}

// =============================================================================
// RATE CARDS
// =============================================================================

const rateCardColumns = `id, client_name, role, standard_rate,
	overtime_multiplier, weekend_multiplier, night_multiplier,
	holiday_multiplier, effective_from, effective_to`

func (s *Store) ListRateCards(ctx context.Context) ([]payroll.RateCard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rateCardColumns+` FROM rate_cards ORDER BY client_name, role, id`)
	if err != nil {
		return nil, fmt.Errorf("list rate cards: %w", err)
	}
	defer rows.Close()

	var out []payroll.RateCard
	for rows.Next() {
		rc, err := scanRateCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (s *Store) GetRateCard(ctx context.Context, id string) (*payroll.RateCard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rateCardColumns+` FROM rate_cards WHERE id = ?`, id)

	rc, err := scanRateCard(row)
	if err == sql.ErrNoRows {
		return nil, payroll.ErrRateCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (s *Store) PutRateCard(ctx context.Context, rc payroll.RateCard) error {
	var effectiveTo any
	if rc.EffectiveTo != nil {
		effectiveTo = rc.EffectiveTo.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_cards (`+rateCardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_name = excluded.client_name,
			role = excluded.role,
			standard_rate = excluded.standard_rate,
			overtime_multiplier = excluded.overtime_multiplier,
			weekend_multiplier = excluded.weekend_multiplier,
			night_multiplier = excluded.night_multiplier,
			holiday_multiplier = excluded.holiday_multiplier,
			effective_from = excluded.effective_from,
			effective_to = excluded.effective_to`,
		rc.ID, rc.ClientName, rc.Role, rc.StandardRate.String(),
		rc.OvertimeMultiplier.String(), rc.WeekendMultiplier.String(),
		rc.NightMultiplier.String(), rc.HolidayMultiplier.String(),
		rc.EffectiveFrom.String(), effectiveTo)
	if err != nil {
		return fmt.Errorf("put rate card: %w", err)
	}
	return nil
}

func (s *Store) DeleteRateCard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rate_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rate card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return payroll.ErrRateCardNotFound
	}
	return nil
}

func scanRateCard(row rowScanner) (payroll.RateCard, error) {
	var (
		rc                        payroll.RateCard
		std, ot, we, ni, ho, from string
		to                        sql.NullString
	)
	err := row.Scan(&rc.ID, &rc.ClientName, &rc.Role, &std, &ot, &we, &ni, &ho,
		&from, &to)
	if err != nil {
		return payroll.RateCard{}, err
	}

	if rc.StandardRate, err = decimal.NewFromString(std); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if rc.OvertimeMultiplier, err = decimal.NewFromString(ot); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if rc.WeekendMultiplier, err = decimal.NewFromString(we); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if rc.NightMultiplier, err = decimal.NewFromString(ni); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if rc.HolidayMultiplier, err = decimal.NewFromString(ho); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if rc.EffectiveFrom, err = payroll.ParseDate(from); err != nil {
		return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
	}
	if to.Valid {
		d, err := payroll.ParseDate(to.String)
		if err != nil {
			return payroll.RateCard{}, fmt.Errorf("rate card %s: %w", rc.ID, err)
		}
		rc.EffectiveTo = &d
	}
	return rc, nil
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05Z", s)
}
