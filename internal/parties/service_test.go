package parties

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
	nextID  int64
	parties map[int64]Party

	// dependent row counts keyed by party id, consumed by CascadeDelete
	txns     map[int64]int64
	invoices map[int64]int64
	items    map[int64]int64
	payments map[int64]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		parties:  map[int64]Party{},
		txns:     map[int64]int64{},
		invoices: map[int64]int64{},
		items:    map[int64]int64{},
		payments: map[int64]int64{},
	}
}

func (m *memoryRepo) Create(_ context.Context, p Party) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.parties[p.ID] = p
	return p.ID, nil
}

func (m *memoryRepo) Get(_ context.Context, ownerID, id int64) (*Party, error) {
	p, ok := m.parties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, req ListPartiesRequest) ([]PartyWithBalance, error) {
	var out []PartyWithBalance
	for _, p := range m.parties {
		if p.OwnerID != req.OwnerID {
			continue
		}
		if req.Type != nil && p.Type != *req.Type {
			continue
		}
		if req.Status != nil && p.Status != *req.Status {
			continue
		}
		out = append(out, PartyWithBalance{Party: p, Balance: p.OpeningBalance})
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, ownerID, id int64, p Party) error {
	existing, ok := m.parties[id]
	if !ok || existing.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	p.ID = id
	p.OwnerID = ownerID
	m.parties[id] = p
	return nil
}

func (m *memoryRepo) CascadeDelete(_ context.Context, ownerID, id int64) (DeleteResult, error) {
	p, ok := m.parties[id]
	if !ok || p.OwnerID != ownerID {
		return DeleteResult{}, shared.ErrNotFound
	}
	result := DeleteResult{
		Transactions: m.txns[id],
		Invoices:     m.invoices[id],
		InvoiceItems: m.items[id],
		Payments:     m.payments[id],
	}
	delete(m.parties, id)
	delete(m.txns, id)
	delete(m.invoices, id)
	delete(m.items, id)
	delete(m.payments, id)
	return result, nil
}

type staticBalance struct {
	debit, credit decimal.Decimal
}

func (s staticBalance) SumByParty(context.Context, int64, int64) (decimal.Decimal, decimal.Decimal, error) {
	return s.debit, s.credit, nil
}

func TestGetComputesBalanceSplit(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticBalance{debit: d("250.00"), credit: d("100.00")}, nil)

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{
		Name:           "Sharma Traders",
		Type:           TypeCustomer,
		OpeningBalance: d("50.00"),
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	// 50 + 250 - 100 = 200, positive means the party owes us
	require.True(t, got.Balance.Equal(d("200.00")))
	require.True(t, got.TheyOwe.Equal(d("200.00")))
	require.True(t, got.YouOwe.IsZero())
}

func TestGetNegativeBalanceIsPayable(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticBalance{debit: d("20.00"), credit: d("120.00")}, nil)

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{
		Name: "Gupta Supplies",
		Type: TypeSupplier,
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(d("-100.00")))
	require.True(t, got.TheyOwe.IsZero())
	require.True(t, got.YouOwe.Equal(d("100.00")))
}

func TestGetForeignOwnerIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticBalance{}, nil)

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{Name: "Mine", Type: TypeBoth})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteReportsCascadeCounts(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticBalance{}, nil)

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{Name: "Cascade", Type: TypeCustomer})
	require.NoError(t, err)
	repo.txns[created.ID] = 7
	repo.invoices[created.ID] = 3
	repo.items[created.ID] = 9
	repo.payments[created.ID] = 2

	result, err := svc.Delete(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Transactions)
	require.Equal(t, int64(3), result.Invoices)
	require.Equal(t, int64(9), result.InvoiceItems)
	require.Equal(t, int64(2), result.Payments)

	_, err = svc.Get(context.Background(), 1, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, staticBalance{}, nil)

	created, err := svc.Create(context.Background(), 1, CreatePartyRequest{
		Name:           "Old Name",
		Type:           TypeCustomer,
		OpeningBalance: d("10.00"),
	})
	require.NoError(t, err)

	newName := "New Name"
	inactive := StatusInactive
	updated, err := svc.Update(context.Background(), 1, created.ID, UpdatePartyRequest{
		Name:   &newName,
		Status: &inactive,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, StatusInactive, updated.Status)
	require.True(t, updated.OpeningBalance.Equal(d("10.00")))
	require.Equal(t, TypeCustomer, updated.Type)
}
