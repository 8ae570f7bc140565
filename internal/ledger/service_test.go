package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata-server/internal/shared"
)

type memoryRepo struct {
	txns    map[int64]Transaction
	parties map[int64]int64 // party id -> owner id
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{txns: make(map[int64]Transaction), parties: make(map[int64]int64)}
}

func (r *memoryRepo) Insert(ctx context.Context, txn Transaction) (int64, error) {
	r.nextID++
	txn.ID = r.nextID
	txn.CreatedAt = time.Now()
	r.txns[txn.ID] = txn
	return txn.ID, nil
}

func (r *memoryRepo) Get(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	txn, ok := r.txns[id]
	if !ok || txn.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &txn, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithParty, error) {
	var out []TransactionWithParty
	for _, txn := range r.txns {
		if txn.OwnerID != req.OwnerID {
			continue
		}
		if req.PartyID != nil && txn.PartyID != *req.PartyID {
			continue
		}
		if req.Type != nil && txn.Type != *req.Type {
			continue
		}
		out = append(out, TransactionWithParty{Transaction: txn})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	if req.PerPage > 0 {
		start := (req.Page - 1) * req.PerPage
		if start >= len(out) {
			return nil, nil
		}
		end := start + req.PerPage
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (r *memoryRepo) Count(ctx context.Context, req ListTransactionsRequest) (int, error) {
	req.Page, req.PerPage = 0, 0
	all, err := r.List(ctx, req)
	return len(all), err
}

func (r *memoryRepo) Update(ctx context.Context, ownerID, id int64, updates map[string]any) error {
	txn, ok := r.txns[id]
	if !ok || txn.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	if v, ok := updates["amount"]; ok {
		txn.Amount = v.(decimal.Decimal)
	}
	if v, ok := updates["type"]; ok {
		txn.Type = v.(TransactionType)
	}
	r.txns[id] = txn
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, ownerID, id int64) error {
	txn, ok := r.txns[id]
	if !ok || txn.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(r.txns, id)
	return nil
}

func (r *memoryRepo) PartyExists(ctx context.Context, ownerID, partyID int64) (bool, error) {
	owner, ok := r.parties[partyID]
	return ok && owner == ownerID, nil
}

func (r *memoryRepo) SumByParty(ctx context.Context, ownerID, partyID int64) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, txn := range r.txns {
		if txn.OwnerID != ownerID || txn.PartyID != partyID {
			continue
		}
		switch txn.Type {
		case TypeDebit:
			debit = debit.Add(txn.Amount)
		case TypeCredit:
			credit = credit.Add(txn.Amount)
		}
	}
	return debit, credit, nil
}

func TestCreateManualEntry(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 1
	svc := NewService(repo, nil)
	ctx := context.Background()

	txn, err := svc.Create(ctx, 1, CreateTransactionRequest{
		PartyID:         7,
		Type:            TypeCredit,
		Amount:          d("120.00"),
		TransactionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, ReferenceManual, txn.ReferenceType)
	require.True(t, txn.Amount.Equal(d("120.00")))
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 1
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		PartyID:         7,
		Type:            TypeDebit,
		Amount:          decimal.Zero,
		TransactionDate: time.Now(),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateForeignPartyIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 2 // belongs to another owner
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		PartyID:         7,
		Type:            TypeDebit,
		Amount:          d("10.00"),
		TransactionDate: time.Now(),
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 1
	svc := NewService(repo, nil)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, 1, CreateTransactionRequest{PartyID: 7, Type: TypeDebit, Amount: d("1.00"), TransactionDate: day})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 1, CreateTransactionRequest{PartyID: 7, Type: TypeDebit, Amount: d("1.00"), TransactionDate: day.AddDate(0, 0, 1)})
	require.NoError(t, err)

	result, err := svc.List(ctx, ListTransactionsRequest{OwnerID: 1})
	require.NoError(t, err)
	txns := result.Transactions
	require.Len(t, txns, 4)
	// Newest date first, then same-day entries in reverse insertion order.
	require.Equal(t, int64(4), txns[0].ID)
	require.Equal(t, int64(3), txns[1].ID)
	require.Equal(t, int64(2), txns[2].ID)
	require.Equal(t, int64(1), txns[3].ID)
}

func TestListPagination(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 1
	svc := NewService(repo, nil)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, 1, CreateTransactionRequest{PartyID: 7, Type: TypeDebit, Amount: d("1.00"), TransactionDate: day})
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, ListTransactionsRequest{OwnerID: 1, Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	require.Equal(t, 2, result.Pagination.Page)
	require.Equal(t, 5, result.Pagination.Total)
	require.Equal(t, 3, result.Pagination.TotalPages)
	require.Equal(t, int64(3), result.Transactions[0].ID)
	require.Equal(t, int64(2), result.Transactions[1].ID)
}

func TestPartyBalance(t *testing.T) {
	repo := newMemoryRepo()
	repo.parties[7] = 1
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateTransactionRequest{PartyID: 7, Type: TypeDebit, Amount: d("100.00"), TransactionDate: time.Now()})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateTransactionRequest{PartyID: 7, Type: TypeCredit, Amount: d("30.25"), TransactionDate: time.Now()})
	require.NoError(t, err)

	balance, err := svc.PartyBalance(ctx, 1, 7, d("5.00"))
	require.NoError(t, err)
	require.True(t, balance.Equal(d("74.75")), "got %s", balance)
}
