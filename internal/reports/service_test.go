package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata-server/internal/shared"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type memoryRepo struct {
	receivableTotal decimal.Decimal
	personalTotal   decimal.Decimal
	stats           WindowStats
	credit, debit   decimal.Decimal
	spend           decimal.Decimal

	lastBucket Bucket
	lastWindow shared.Window
}

func (m *memoryRepo) WindowStats(_ context.Context, _ int64, w shared.Window) (WindowStats, error) {
	s := m.stats
	s.StartDate = w.From
	s.EndDate = w.To
	s.NetProfit = s.TotalSales.Sub(s.Expenses)
	return s, nil
}

func (m *memoryRepo) LedgerTotals(_ context.Context, _ int64, _ shared.Window) (decimal.Decimal, decimal.Decimal, error) {
	return m.credit, m.debit, nil
}

func (m *memoryRepo) ReceivableTotal(_ context.Context, _ int64) (decimal.Decimal, error) {
	return m.receivableTotal, nil
}

func (m *memoryRepo) PersonalTotal(_ context.Context, _ int64) (decimal.Decimal, error) {
	return m.personalTotal, nil
}

func (m *memoryRepo) DashboardCounters(_ context.Context, _ int64) (int64, int64, int64, error) {
	return 2, 1, 5, nil
}

func (m *memoryRepo) PersonalSpend(_ context.Context, _ int64, _ shared.Window) (decimal.Decimal, error) {
	return m.spend, nil
}

func (m *memoryRepo) ChartBuckets(_ context.Context, _ int64, bucket Bucket, w shared.Window) ([]ChartPoint, error) {
	m.lastBucket = bucket
	m.lastWindow = w
	return nil, nil
}

var testNow = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *memoryRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestDashboardSplitsReceivablePayable(t *testing.T) {
	repo := &memoryRepo{
		receivableTotal: d("450"),
		personalTotal:   d("-120"),
		stats:           WindowStats{TotalSales: d("1000"), Expenses: d("300")},
		spend:           d("80"),
	}
	svc := newTestService(repo)

	dash, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)

	require.True(t, dash.TotalReceivable.Equal(d("450")))
	require.True(t, dash.TotalPayable.IsZero())
	require.True(t, dash.PersonalTheyOwe.IsZero())
	require.True(t, dash.PersonalYouOwe.Equal(d("120")))
	require.True(t, dash.MonthNetProfit.Equal(d("700")))
	require.Equal(t, int64(2), dash.UnpaidInvoices)
	require.Equal(t, int64(1), dash.LowStockProducts)
	require.True(t, dash.MonthPersonalSpend.Equal(d("80")))
}

func TestDashboardNegativeTotalIsPayable(t *testing.T) {
	repo := &memoryRepo{receivableTotal: d("-90")}
	svc := newTestService(repo)

	dash, err := svc.Dashboard(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, dash.TotalReceivable.IsZero())
	require.True(t, dash.TotalPayable.Equal(d("90")))
}

func TestRangeIncludesLedgerTotals(t *testing.T) {
	repo := &memoryRepo{
		stats:  WindowStats{TotalSales: d("500"), Expenses: d("100")},
		credit: d("500"),
		debit:  d("250"),
	}
	svc := newTestService(repo)

	from := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	stats, err := svc.Range(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.True(t, stats.TotalCredit.Equal(d("500")))
	require.True(t, stats.TotalDebit.Equal(d("250")))
	require.True(t, stats.NetProfit.Equal(d("400")))
}

func TestRangeRejectsInvertedWindow(t *testing.T) {
	svc := newTestService(&memoryRepo{})
	from := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Range(context.Background(), 1, from, to)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestChartPlanDefaultHorizons(t *testing.T) {
	bucket, w, err := ChartPlan(BucketDay, testNow, nil, nil)
	require.NoError(t, err)
	require.Equal(t, BucketDay, bucket)
	require.Equal(t, 31, w.Days())

	bucket, w, err = ChartPlan(BucketWeek, testNow, nil, nil)
	require.NoError(t, err)
	require.Equal(t, BucketWeek, bucket)
	require.Equal(t, 7*12, w.Days())

	bucket, _, err = ChartPlan(BucketMonth, testNow, nil, nil)
	require.NoError(t, err)
	require.Equal(t, BucketMonth, bucket)
}

func TestChartPlanLongCustomRangeSwitchesToWeekly(t *testing.T) {
	from := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)

	bucket, _, err := ChartPlan(BucketDay, testNow, &from, &to)
	require.NoError(t, err)
	require.Equal(t, BucketWeek, bucket)

	// 14 days or fewer keeps daily buckets
	shortTo := from.AddDate(0, 0, 13)
	bucket, _, err = ChartPlan(BucketDay, testNow, &from, &shortTo)
	require.NoError(t, err)
	require.Equal(t, BucketDay, bucket)
}

func TestChartPlanCapsCustomRange(t *testing.T) {
	from := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	bucket, w, err := ChartPlan(BucketMonth, testNow, &from, &to)
	require.NoError(t, err)
	require.Equal(t, BucketMonth, bucket)
	require.True(t, w.From.After(from), "window must be capped, got %s", w.From)
}
