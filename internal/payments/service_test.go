package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata-server/internal/invoices"
	"github.com/khata-app/khata-server/internal/shared"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type invoiceState struct {
	paid   decimal.Decimal
	total  decimal.Decimal
	status invoices.PaymentStatus
}

type ledgerEntry struct {
	typ    string
	amount decimal.Decimal
}

type memoryRepo struct {
	nextID   int64
	parties  map[int64]int64 // party id -> owner id
	invoices map[int64]*invoiceState
	payments []Payment
	ledger   []ledgerEntry
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{parties: map[int64]int64{}, invoices: map[int64]*invoiceState{}}
}

func (m *memoryRepo) Create(_ context.Context, p Payment) (*Payment, error) {
	if p.InvoiceID != nil {
		inv, ok := m.invoices[*p.InvoiceID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		inv.paid, inv.status = Reconcile(inv.paid, inv.total, p.Amount)
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	m.payments = append(m.payments, p)
	m.ledger = append(m.ledger, ledgerEntry{typ: "debit", amount: p.Amount})
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, req ListPaymentsRequest) ([]Payment, error) {
	var out []Payment
	for _, p := range m.payments {
		if p.OwnerID != req.OwnerID {
			continue
		}
		if req.PartyID != nil && p.PartyID != *req.PartyID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryRepo) PartyExists(_ context.Context, ownerID, partyID int64) (bool, error) {
	return m.parties[partyID] == ownerID, nil
}

var paymentDate = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

func TestRecordAdvancesInvoicePaidState(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[10] = 1
	invoiceID := int64(5)
	repo.invoices[invoiceID] = &invoiceState{paid: d("75"), total: d("270"), status: invoices.StatusPartiallyPaid}
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), 1, RecordPaymentRequest{
		PartyID:     10,
		InvoiceID:   &invoiceID,
		Amount:      d("100"),
		PaymentDate: paymentDate,
		Method:      MethodCash,
	})
	require.NoError(t, err)

	inv := repo.invoices[invoiceID]
	require.True(t, inv.paid.Equal(d("175")))
	require.Equal(t, invoices.StatusPartiallyPaid, inv.status)

	require.Len(t, repo.ledger, 1)
	require.Equal(t, "debit", repo.ledger[0].typ)
	require.True(t, repo.ledger[0].amount.Equal(d("100")))
}

func TestRecordOverpaymentClampsAtTotal(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[10] = 1
	invoiceID := int64(5)
	repo.invoices[invoiceID] = &invoiceState{paid: d("200"), total: d("270"), status: invoices.StatusPartiallyPaid}
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), 1, RecordPaymentRequest{
		PartyID:     10,
		InvoiceID:   &invoiceID,
		Amount:      d("100"),
		PaymentDate: paymentDate,
		Method:      MethodUPI,
	})
	require.NoError(t, err)

	inv := repo.invoices[invoiceID]
	require.True(t, inv.paid.Equal(d("270")), "paid clamped at total, got %s", inv.paid)
	require.Equal(t, invoices.StatusPaid, inv.status)

	// ledger keeps the full payment amount, not the clamped remainder
	require.True(t, repo.ledger[0].amount.Equal(d("100")))
}

func TestRecordWithoutInvoiceOnlyAppendsLedger(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[10] = 1
	svc := NewService(repo, nil)

	p, err := svc.Record(context.Background(), 1, RecordPaymentRequest{
		PartyID:     10,
		Amount:      d("40"),
		PaymentDate: paymentDate,
		Method:      MethodOther,
	})
	require.NoError(t, err)
	require.Nil(t, p.InvoiceID)
	require.Len(t, repo.ledger, 1)
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[10] = 1
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), 1, RecordPaymentRequest{
		PartyID:     10,
		Amount:      d("0"),
		PaymentDate: paymentDate,
		Method:      MethodCash,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestRecordForeignPartyIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[10] = 2
	svc := NewService(repo, nil)

	_, err := svc.Record(context.Background(), 1, RecordPaymentRequest{
		PartyID:     10,
		Amount:      d("10"),
		PaymentDate: paymentDate,
		Method:      MethodCash,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReconcileExactSettlement(t *testing.T) {
	paid, status := Reconcile(d("170"), d("270"), d("100"))
	require.True(t, paid.Equal(d("270")))
	require.Equal(t, invoices.StatusPaid, status)
}
