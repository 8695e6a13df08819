package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/payroll"
	"github.com/warp/timesheet-engine/report"
)

func row(worker, client, week, hours, amount string, status payroll.TimesheetStatus) payroll.Timesheet {
	return payroll.Timesheet{
		WorkerName: worker,
		ClientName: client,
		WeekEnding: payroll.MustDate(week),
		Hours:      decimal.RequireFromString(hours),
		Amount:     decimal.RequireFromString(amount),
		Status:     status,
	}
}

var reportRows = []payroll.Timesheet{
	row("Jane Doe", "Acme Care", "2026-03-08", "37.5", "562.5", payroll.StatusApproved),
	row("John Smith", "Acme Care", "2026-03-08", "40", "600", payroll.StatusApproved),
	row("Mary Major", "Bright Homes", "2026-03-08", "20", "450", payroll.StatusPending),
}

func TestColumnByName(t *testing.T) {
	schema := report.Columns()

	c, ok := report.ColumnByName(schema, "hours")
	require.True(t, ok)
	assert.Equal(t, report.KindNumber, c.Kind)

	_, ok = report.ColumnByName(schema, "salary")
	assert.False(t, ok)
}

func TestTable_HeaderAndCells(t *testing.T) {
	got := report.Table(reportRows, report.Columns())

	require.Len(t, got, 4)
	assert.Equal(t, []string{"worker", "client", "week_ending", "status", "hours", "amount"}, got[0])
	assert.Equal(t, []string{"Jane Doe", "Acme Care", "2026-03-08", "approved", "37.5", "562.5"}, got[1])
	assert.Equal(t, "Mary Major", got[3][0])
}

func TestTable_EmptyRowsStillHasHeader(t *testing.T) {
	got := report.Table(nil, report.Columns())
	require.Len(t, got, 1)
}

func TestAggregate_HoursByClient(t *testing.T) {
	schema := report.Columns()
	client, _ := report.ColumnByName(schema, "client")
	hours, _ := report.ColumnByName(schema, "hours")

	got, err := report.Aggregate(reportRows, client, hours)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Sorted by group key.
	acme := got[0]
	assert.Equal(t, "Acme Care", acme.Key)
	assert.Equal(t, 2, acme.Count)
	assert.True(t, acme.Sum.Equal(decimal.RequireFromString("77.5")), "sum %s", acme.Sum)
	assert.True(t, acme.Average.Equal(decimal.RequireFromString("38.75")), "avg %s", acme.Average)
	assert.True(t, acme.Min.Equal(decimal.RequireFromString("37.5")))
	assert.True(t, acme.Max.Equal(decimal.NewFromInt(40)))

	bright := got[1]
	assert.Equal(t, "Bright Homes", bright.Key)
	assert.Equal(t, 1, bright.Count)
	assert.True(t, bright.Sum.Equal(decimal.NewFromInt(20)))
}

func TestAggregate_AmountByStatus(t *testing.T) {
	schema := report.Columns()
	status, _ := report.ColumnByName(schema, "status")
	amount, _ := report.ColumnByName(schema, "amount")

	got, err := report.Aggregate(reportRows, status, amount)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "approved", got[0].Key)
	assert.True(t, got[0].Sum.Equal(decimal.RequireFromString("1162.5")))
	assert.Equal(t, "pending", got[1].Key)
	assert.True(t, got[1].Sum.Equal(decimal.RequireFromString("450")))
}

func TestAggregate_RejectsNonNumericMetric(t *testing.T) {
	schema := report.Columns()
	client, _ := report.ColumnByName(schema, "client")
	worker, _ := report.ColumnByName(schema, "worker")

	_, err := report.Aggregate(reportRows, client, worker)
	assert.Error(t, err)
}

func TestAggregate_EmptyInput(t *testing.T) {
	schema := report.Columns()
	client, _ := report.ColumnByName(schema, "client")
	hours, _ := report.ColumnByName(schema, "hours")

	got, err := report.Aggregate(nil, client, hours)
	require.NoError(t, err)
	assert.Empty(t, got)
}
