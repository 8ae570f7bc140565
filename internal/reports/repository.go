package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/shared"
)

// Repository runs the aggregate queries behind the reports.
type Repository interface {
	WindowStats(ctx context.Context, ownerID int64, w shared.Window) (WindowStats, error)
	LedgerTotals(ctx context.Context, ownerID int64, w shared.Window) (credit, debit decimal.Decimal, err error)
	// ReceivableTotal folds every party in one query:
	// sum(opening_balance) + sum(debit) - sum(credit).
	ReceivableTotal(ctx context.Context, ownerID int64) (decimal.Decimal, error)
	// PersonalTotal folds every personal contact the same way.
	PersonalTotal(ctx context.Context, ownerID int64) (decimal.Decimal, error)
	DashboardCounters(ctx context.Context, ownerID int64) (unpaidInvoices, lowStock, parties int64, err error)
	PersonalSpend(ctx context.Context, ownerID int64, w shared.Window) (decimal.Decimal, error)
	ChartBuckets(ctx context.Context, ownerID int64, bucket Bucket, w shared.Window) ([]ChartPoint, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WindowStats(ctx context.Context, ownerID int64, w shared.Window) (WindowStats, error) {
	stats := WindowStats{StartDate: w.From, EndDate: w.To}

	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
FROM invoices WHERE owner_id = $1 AND invoice_date BETWEEN $2 AND $3`,
		ownerID, w.From, w.To).Scan(&stats.TotalSales, &stats.InvoiceCount)
	if err != nil {
		return stats, err
	}

	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0)
FROM personal_expenses WHERE owner_id = $1 AND expense_date BETWEEN $2 AND $3`,
		ownerID, w.From, w.To).Scan(&stats.Expenses)
	if err != nil {
		return stats, err
	}

	err = r.pool.QueryRow(ctx, `SELECT COUNT(*)
FROM transactions WHERE owner_id = $1 AND transaction_date BETWEEN $2 AND $3`,
		ownerID, w.From, w.To).Scan(&stats.TransactionCount)
	if err != nil {
		return stats, err
	}

	stats.NetProfit = stats.TotalSales.Sub(stats.Expenses)
	return stats, nil
}

func (r *repository) LedgerTotals(ctx context.Context, ownerID int64, w shared.Window) (decimal.Decimal, decimal.Decimal, error) {
	var credit, debit decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE(SUM(amount) FILTER (WHERE type = 'credit'), 0),
COALESCE(SUM(amount) FILTER (WHERE type = 'debit'), 0)
FROM transactions WHERE owner_id = $1 AND transaction_date BETWEEN $2 AND $3`,
		ownerID, w.From, w.To).Scan(&credit, &debit)
	return credit, debit, err
}

func (r *repository) ReceivableTotal(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE((SELECT SUM(opening_balance) FROM parties WHERE owner_id = $1), 0)
+ COALESCE((SELECT SUM(amount) FILTER (WHERE type = 'debit') FROM transactions WHERE owner_id = $1), 0)
- COALESCE((SELECT SUM(amount) FILTER (WHERE type = 'credit') FROM transactions WHERE owner_id = $1), 0)`,
		ownerID).Scan(&total)
	return total, err
}

func (r *repository) PersonalTotal(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE((SELECT SUM(opening_balance) FROM personal_contacts WHERE owner_id = $1), 0)
+ COALESCE((SELECT SUM(amount) FILTER (WHERE type = 'given') FROM personal_transactions WHERE owner_id = $1), 0)
- COALESCE((SELECT SUM(amount) FILTER (WHERE type = 'received') FROM personal_transactions WHERE owner_id = $1), 0)`,
		ownerID).Scan(&total)
	return total, err
}

func (r *repository) DashboardCounters(ctx context.Context, ownerID int64) (int64, int64, int64, error) {
	var unpaid, lowStock, parties int64
	err := r.pool.QueryRow(ctx, `SELECT
(SELECT COUNT(*) FROM invoices WHERE owner_id = $1 AND payment_status <> 'paid'),
(SELECT COUNT(*) FROM products WHERE owner_id = $1 AND stock_quantity <= low_stock_threshold),
(SELECT COUNT(*) FROM parties WHERE owner_id = $1 AND status = 'active')`,
		ownerID).Scan(&unpaid, &lowStock, &parties)
	return unpaid, lowStock, parties, err
}

func (r *repository) PersonalSpend(ctx context.Context, ownerID int64, w shared.Window) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT
COALESCE((SELECT SUM(amount) FROM personal_expenses WHERE owner_id = $1 AND expense_date BETWEEN $2 AND $3), 0)
+ COALESCE((SELECT SUM(amount) FROM personal_purchases WHERE owner_id = $1 AND purchase_date BETWEEN $2 AND $3), 0)`,
		ownerID, w.From, w.To).Scan(&total)
	return total, err
}

func bucketTrunc(b Bucket) string {
	switch b {
	case BucketWeek:
		return "week"
	case BucketMonth:
		return "month"
	default:
		return "day"
	}
}

func bucketLabel(b Bucket, t time.Time) string {
	switch b {
	case BucketWeek:
		return t.Format("2006-01-02")
	case BucketMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func (r *repository) ChartBuckets(ctx context.Context, ownerID int64, bucket Bucket, w shared.Window) ([]ChartPoint, error) {
	trunc := bucketTrunc(bucket)
	rows, err := r.pool.Query(ctx, `SELECT bucket, COALESCE(SUM(sales), 0), COALESCE(SUM(expenses), 0) FROM (
SELECT date_trunc($1, invoice_date) AS bucket, total_amount AS sales, 0 AS expenses
FROM invoices WHERE owner_id = $2 AND invoice_date BETWEEN $3 AND $4
UNION ALL
SELECT date_trunc($1, expense_date) AS bucket, 0 AS sales, amount AS expenses
FROM personal_expenses WHERE owner_id = $2 AND expense_date BETWEEN $3 AND $4
) series GROUP BY bucket ORDER BY bucket`,
		trunc, ownerID, w.From, w.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChartPoint
	for rows.Next() {
		var bucketStart time.Time
		var p ChartPoint
		if err := rows.Scan(&bucketStart, &p.Sales, &p.Expenses); err != nil {
			return nil, err
		}
		p.Label = bucketLabel(bucket, bucketStart)
		out = append(out, p)
	}
	return out, rows.Err()
}
