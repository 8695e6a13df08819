/*
Package report provides declared-schema tabulation and grouped aggregation
over timesheets.

PURPOSE:
  Reporting works off a declared column schema (name, kind, accessor)
  rather than untyped map indexing. Text columns supply group keys and
  table cells; numeric columns feed the aggregators (sum, average, count,
  min, max per group). Output is plain tabular data for the export
  utilities downstream.
*/
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/payroll"
)

// =============================================================================
// COLUMN SCHEMA
// =============================================================================

type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindDate
)

// Column declares one reportable field of a timesheet.
type Column struct {
	Name string
	Kind ColumnKind

	// Text renders the cell value. Set for every column.
	Text func(ts payroll.Timesheet) string

	// Number extracts the value fed to aggregators. Only set when Kind is
	// KindNumber.
	Number func(ts payroll.Timesheet) decimal.Decimal
}

// Columns returns the standard timesheet report schema.
func Columns() []Column {
	return []Column{
		{Name: "worker", Kind: KindText,
			Text: func(ts payroll.Timesheet) string { return ts.WorkerName }},
		{Name: "client", Kind: KindText,
			Text: func(ts payroll.Timesheet) string { return ts.ClientName }},
		{Name: "week_ending", Kind: KindDate,
			Text: func(ts payroll.Timesheet) string { return ts.WeekEnding.String() }},
		{Name: "status", Kind: KindText,
			Text: func(ts payroll.Timesheet) string { return string(ts.Status) }},
		{Name: "hours", Kind: KindNumber,
			Text:   func(ts payroll.Timesheet) string { return ts.Hours.String() },
			Number: func(ts payroll.Timesheet) decimal.Decimal { return ts.Hours }},
		{Name: "amount", Kind: KindNumber,
			Text:   func(ts payroll.Timesheet) string { return ts.Amount.String() },
			Number: func(ts payroll.Timesheet) decimal.Decimal { return ts.Amount }},
	}
}

// ColumnByName finds a column in a schema.
func ColumnByName(schema []Column, name string) (Column, bool) {
	for _, c := range schema {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Table renders rows against a schema: a header row followed by one row per
// timesheet. Suitable input for CSV/PDF export utilities.
func Table(rows []payroll.Timesheet, schema []Column) [][]string {
	out := make([][]string, 0, len(rows)+1)
	header := make([]string, len(schema))
	for i, c := range schema {
		header[i] = c.Name
	}
	out = append(out, header)
	for _, ts := range rows {
		row := make([]string, len(schema))
		for i, c := range schema {
			row[i] = c.Text(ts)
		}
		out = append(out, row)
	}
	return out
}

// =============================================================================
// GROUPED AGGREGATION
// =============================================================================

// GroupResult holds the aggregates of one numeric column over one group.
type GroupResult struct {
	Key     string
	Count   int
	Sum     decimal.Decimal
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// Aggregate groups rows by groupBy's text value and aggregates metric's
// numeric value per group. Results are sorted by group key for stable
// output. Returns an error when metric is not a numeric column.
func Aggregate(rows []payroll.Timesheet, groupBy, metric Column) ([]GroupResult, error) {
	if metric.Kind != KindNumber || metric.Number == nil {
		return nil, fmt.Errorf("column %q is not numeric", metric.Name)
	}

	groups := make(map[string]*GroupResult)
	for _, ts := range rows {
		key := groupBy.Text(ts)
		v := metric.Number(ts)

		g, ok := groups[key]
		if !ok {
			groups[key] = &GroupResult{Key: key, Count: 1, Sum: v, Min: v, Max: v}
			continue
		}
		g.Count++
		g.Sum = g.Sum.Add(v)
		if v.LessThan(g.Min) {
			g.Min = v
		}
		if v.GreaterThan(g.Max) {
			g.Max = v
		}
	}

	out := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		g.Average = g.Sum.Div(decimal.NewFromInt(int64(g.Count)))
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
