package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/ledger"
	"github.com/khata-app/khata-server/internal/shared"
)

// Service computes the report views.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Daily(ctx context.Context, ownerID int64, day time.Time) (WindowStats, error) {
	return s.repo.WindowStats(ctx, ownerID, shared.DayWindow(day))
}

func (s *Service) Weekly(ctx context.Context, ownerID int64, weekStart time.Time) (WindowStats, error) {
	return s.repo.WindowStats(ctx, ownerID, shared.WeekWindow(weekStart))
}

func (s *Service) Monthly(ctx context.Context, ownerID int64, month string) (WindowStats, error) {
	w, err := shared.MonthWindow(month)
	if err != nil {
		return WindowStats{}, fmt.Errorf("%w: %s", shared.ErrValidation, err)
	}
	return s.repo.WindowStats(ctx, ownerID, w)
}

// Range reports an arbitrary inclusive window, adding the ledger movement
// totals on top of the shared window aggregate.
func (s *Service) Range(ctx context.Context, ownerID int64, from, to time.Time) (RangeStats, error) {
	w, err := shared.RangeWindow(from, to)
	if err != nil {
		return RangeStats{}, err
	}
	stats, err := s.repo.WindowStats(ctx, ownerID, w)
	if err != nil {
		return RangeStats{}, err
	}
	credit, debit, err := s.repo.LedgerTotals(ctx, ownerID, w)
	if err != nil {
		return RangeStats{}, err
	}
	return RangeStats{WindowStats: stats, TotalCredit: credit, TotalDebit: debit}, nil
}

// Summary is the all-time aggregate plus the receivable/payable fold.
func (s *Service) Summary(ctx context.Context, ownerID int64) (map[string]any, error) {
	w := shared.Window{From: time.Time{}, To: s.now()}
	stats, err := s.repo.WindowStats(ctx, ownerID, w)
	if err != nil {
		return nil, err
	}
	receivable, payable, err := s.receivablePayable(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_sales":       stats.TotalSales,
		"expenses":          stats.Expenses,
		"net_profit":        stats.NetProfit,
		"invoice_count":     stats.InvoiceCount,
		"transaction_count": stats.TransactionCount,
		"total_receivable":  receivable,
		"total_payable":     payable,
	}, nil
}

func (s *Service) receivablePayable(ctx context.Context, ownerID int64) (decimal.Decimal, decimal.Decimal, error) {
	total, err := s.repo.ReceivableTotal(ctx, ownerID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	receivable, payable := ledger.Split(total)
	return receivable, payable, nil
}

// Dashboard assembles the combined business and personal snapshot.
func (s *Service) Dashboard(ctx context.Context, ownerID int64) (*Dashboard, error) {
	now := s.now()
	today := shared.DayWindow(now)
	month := shared.Window{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		To:   time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, -1),
	}

	todayStats, err := s.repo.WindowStats(ctx, ownerID, today)
	if err != nil {
		return nil, err
	}
	monthStats, err := s.repo.WindowStats(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	receivable, payable, err := s.receivablePayable(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	personalTotal, err := s.repo.PersonalTotal(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	personalTheyOwe, personalYouOwe := ledger.Split(personalTotal)
	unpaid, lowStock, parties, err := s.repo.DashboardCounters(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	monthSpend, err := s.repo.PersonalSpend(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TodaySales:         todayStats.TotalSales,
		MonthSales:         monthStats.TotalSales,
		MonthExpenses:      monthStats.Expenses,
		MonthNetProfit:     monthStats.NetProfit,
		TotalReceivable:    receivable,
		TotalPayable:       payable,
		UnpaidInvoices:     unpaid,
		LowStockProducts:   lowStock,
		PartyCount:         parties,
		PersonalTheyOwe:    personalTheyOwe,
		PersonalYouOwe:     personalYouOwe,
		MonthPersonalSpend: monthSpend,
	}, nil
}

// ChartPlan resolves the effective bucket and window for a chart request.
// Horizons are capped at 31 days, 12 weeks, or 24 months; a custom range
// longer than 14 days switches from daily to weekly buckets.
func ChartPlan(bucket Bucket, now time.Time, from, to *time.Time) (Bucket, shared.Window, error) {
	if from != nil && to != nil {
		w, err := shared.RangeWindow(*from, *to)
		if err != nil {
			return bucket, shared.Window{}, err
		}
		if bucket == BucketDay && w.Days() > 14 {
			bucket = BucketWeek
		}
		return bucket, capWindow(bucket, w), nil
	}

	today := shared.DayWindow(now).From
	switch bucket {
	case BucketWeek:
		return bucket, shared.Window{From: today.AddDate(0, 0, -7*maxWeeks+1), To: today}, nil
	case BucketMonth:
		return bucket, shared.Window{From: today.AddDate(0, -maxMonths+1, 0), To: today}, nil
	case BucketDay:
		return bucket, shared.Window{From: today.AddDate(0, 0, -maxDays+1), To: today}, nil
	default:
		return bucket, shared.Window{}, fmt.Errorf("%w: invalid chart period", shared.ErrValidation)
	}
}

func capWindow(bucket Bucket, w shared.Window) shared.Window {
	var earliest time.Time
	switch bucket {
	case BucketWeek:
		earliest = w.To.AddDate(0, 0, -7*maxWeeks+1)
	case BucketMonth:
		earliest = w.To.AddDate(0, -maxMonths+1, 0)
	default:
		earliest = w.To.AddDate(0, 0, -maxDays+1)
	}
	if w.From.Before(earliest) {
		w.From = earliest
	}
	return w
}

func (s *Service) Chart(ctx context.Context, ownerID int64, bucket Bucket, from, to *time.Time) ([]ChartPoint, error) {
	effective, w, err := ChartPlan(bucket, s.now(), from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ChartBuckets(ctx, ownerID, effective, w)
}
