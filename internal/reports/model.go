// Package reports is the read-side of the ledgers: windowed aggregates,
// the dashboard snapshot, and chart bucketing. Everything here is computed
// by grouped SQL aggregation, never by iterating rows in Go.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowStats is the aggregate for one inclusive date window.
type WindowStats struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	InvoiceCount     int64           `json:"invoice_count"`
	TransactionCount int64           `json:"transaction_count"`
}

// RangeStats extends WindowStats with the ledger movement totals.
type RangeStats struct {
	WindowStats
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
}

// Dashboard is the combined business and personal snapshot.
type Dashboard struct {
	TodaySales         decimal.Decimal `json:"today_sales"`
	MonthSales         decimal.Decimal `json:"month_sales"`
	MonthExpenses      decimal.Decimal `json:"month_expenses"`
	MonthNetProfit     decimal.Decimal `json:"month_net_profit"`
	TotalReceivable    decimal.Decimal `json:"total_receivable"`
	TotalPayable       decimal.Decimal `json:"total_payable"`
	UnpaidInvoices     int64           `json:"unpaid_invoices"`
	LowStockProducts   int64           `json:"low_stock_products"`
	PartyCount         int64           `json:"party_count"`
	PersonalTheyOwe    decimal.Decimal `json:"personal_they_owe"`
	PersonalYouOwe     decimal.Decimal `json:"personal_you_owe"`
	MonthPersonalSpend decimal.Decimal `json:"month_personal_spend"`
}

// ChartPoint is one bucket of the chart series.
type ChartPoint struct {
	Label    string          `json:"label"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Bucket is the chart grouping granularity.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// Horizon caps per bucket granularity.
const (
	maxDays   = 31
	maxWeeks  = 12
	maxMonths = 24
)
