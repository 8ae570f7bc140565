package transactions

import (
	"context"
	"sort"
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
	nextID   int64
	txns     map[int64]Transaction
	contacts map[int64]int64 // contact id -> owner id
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{txns: map[int64]Transaction{}, contacts: map[int64]int64{}}
}

func (m *memoryRepo) Insert(_ context.Context, t Transaction) (*Transaction, error) {
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.txns[t.ID] = t
	return &t, nil
}

func (m *memoryRepo) Get(_ context.Context, ownerID, id int64) (*Transaction, error) {
	t, ok := m.txns[id]
	if !ok || t.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &t, nil
}

func (m *memoryRepo) List(_ context.Context, req ListTransactionsRequest) ([]TransactionWithContact, error) {
	var out []TransactionWithContact
	for _, t := range m.txns {
		if t.OwnerID != req.OwnerID {
			continue
		}
		if req.ContactID != nil && t.ContactID != *req.ContactID {
			continue
		}
		if req.Type != nil && t.Type != *req.Type {
			continue
		}
		out = append(out, TransactionWithContact{Transaction: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, ownerID, id int64, t Transaction) error {
	existing, ok := m.txns[id]
	if !ok || existing.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	t.ID = id
	t.OwnerID = ownerID
	m.txns[id] = t
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, ownerID, id int64) error {
	t, ok := m.txns[id]
	if !ok || t.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(m.txns, id)
	return nil
}

func (m *memoryRepo) ContactExists(_ context.Context, ownerID, contactID int64) (bool, error) {
	return m.contacts[contactID] == ownerID, nil
}

var baseDate = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

func TestCreateEntry(t *testing.T) {
	repo := newMemoryRepo()
	repo.contacts[7] = 1
	svc := NewService(repo)

	entry, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		ContactID:       7,
		Type:            TypeGiven,
		Amount:          d("500"),
		TransactionDate: baseDate,
	})
	require.NoError(t, err)
	require.Equal(t, TypeGiven, entry.Type)
	require.True(t, entry.Amount.Equal(d("500")))
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryRepo()
	repo.contacts[7] = 1
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		ContactID:       7,
		Type:            TypeReceived,
		Amount:          d("-5"),
		TransactionDate: baseDate,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateForeignContactIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	repo.contacts[7] = 2
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		ContactID:       7,
		Type:            TypeGiven,
		Amount:          d("10"),
		TransactionDate: baseDate,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListOrdersByDateThenID(t *testing.T) {
	repo := newMemoryRepo()
	repo.contacts[7] = 1
	svc := NewService(repo)

	for _, day := range []int{1, 3, 3, 2} {
		_, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
			ContactID:       7,
			Type:            TypeGiven,
			Amount:          d("10"),
			TransactionDate: baseDate.AddDate(0, 0, day),
		})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), ListTransactionsRequest{OwnerID: 1})
	require.NoError(t, err)
	require.Len(t, list, 4)
	// newest date first, same-date ties broken by insertion order
	require.Equal(t, []int64{3, 2, 4, 1}, []int64{list[0].ID, list[1].ID, list[2].ID, list[3].ID})
}

func TestUpdateRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryRepo()
	repo.contacts[7] = 1
	svc := NewService(repo)

	entry, err := svc.Create(context.Background(), 1, CreateTransactionRequest{
		ContactID:       7,
		Type:            TypeGiven,
		Amount:          d("10"),
		TransactionDate: baseDate,
	})
	require.NoError(t, err)

	zero := d("0")
	_, err = svc.Update(context.Background(), 1, entry.ID, UpdateTransactionRequest{Amount: &zero})
	require.ErrorIs(t, err, shared.ErrValidation)
}
