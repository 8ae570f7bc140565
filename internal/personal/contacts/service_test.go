package contacts

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
	nextID   int64
	contacts map[int64]Contact
	given    map[int64]decimal.Decimal
	received map[int64]decimal.Decimal
	txnCount map[int64]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		contacts: map[int64]Contact{},
		given:    map[int64]decimal.Decimal{},
		received: map[int64]decimal.Decimal{},
		txnCount: map[int64]int64{},
	}
}

func (m *memoryRepo) Create(_ context.Context, c Contact) (int64, error) {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.contacts[c.ID] = c
	return c.ID, nil
}

func (m *memoryRepo) Get(_ context.Context, ownerID, id int64) (*Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (m *memoryRepo) List(_ context.Context, req ListContactsRequest) ([]ContactWithBalance, error) {
	var out []ContactWithBalance
	for _, c := range m.contacts {
		if c.OwnerID != req.OwnerID {
			continue
		}
		if req.Relationship != nil && c.Relationship != *req.Relationship {
			continue
		}
		balance := Balance(c.OpeningBalance, m.given[c.ID], m.received[c.ID])
		out = append(out, ContactWithBalance{Contact: c, Balance: balance})
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, ownerID, id int64, c Contact) error {
	existing, ok := m.contacts[id]
	if !ok || existing.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	c.ID = id
	c.OwnerID = ownerID
	m.contacts[id] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, ownerID, id int64) (int64, error) {
	c, ok := m.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return 0, shared.ErrNotFound
	}
	count := m.txnCount[id]
	delete(m.contacts, id)
	delete(m.txnCount, id)
	return count, nil
}

func (m *memoryRepo) SumByContact(_ context.Context, _, contactID int64) (decimal.Decimal, decimal.Decimal, error) {
	return m.given[contactID], m.received[contactID], nil
}

func TestGetFoldsGivenReceived(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), 1, CreateContactRequest{
		Name:           "Ravi",
		Relationship:   RelationshipFriend,
		OpeningBalance: d("100"),
	})
	require.NoError(t, err)
	repo.given[created.ID] = d("500")
	repo.received[created.ID] = d("250")

	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	// 100 + 500 - 250
	require.True(t, got.Balance.Equal(d("350")))
	require.True(t, got.TheyOwe.Equal(d("350")))
	require.True(t, got.YouOwe.IsZero())
}

func TestGetNegativeBalanceMeansOwnerOwes(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), 1, CreateContactRequest{
		Name:         "Meena",
		Relationship: RelationshipFamily,
	})
	require.NoError(t, err)
	repo.received[created.ID] = d("80")

	got, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(d("-80")))
	require.True(t, got.YouOwe.Equal(d("80")))
	require.True(t, got.TheyOwe.IsZero())
}

func TestDeleteReportsTransactionCount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), 1, CreateContactRequest{
		Name:         "Gone",
		Relationship: RelationshipOther,
	})
	require.NoError(t, err)
	repo.txnCount[created.ID] = 4

	deleted, err := svc.Delete(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), deleted)

	_, err = svc.Get(context.Background(), 1, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetForeignOwnerIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), 1, CreateContactRequest{
		Name:         "Private",
		Relationship: RelationshipColleague,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
