package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata-server/internal/shared"
)

type memoryRepo struct {
	nextID    int64
	movements []Movement
	// cached quantities keyed by product id; owner 1 owns everything
	quantities map[int64]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{quantities: map[int64]int64{}}
}

func (m *memoryRepo) Record(_ context.Context, mv Movement) (*Movement, error) {
	if _, ok := m.quantities[mv.ProductID]; !ok {
		return nil, shared.ErrNotFound
	}
	m.nextID++
	mv.ID = m.nextID
	mv.CreatedAt = time.Now()
	m.quantities[mv.ProductID] += mv.Delta()
	m.movements = append(m.movements, mv)
	return &mv, nil
}

func (m *memoryRepo) List(_ context.Context, req ListMovementsRequest) ([]Movement, error) {
	var out []Movement
	for i := len(m.movements) - 1; i >= 0; i-- {
		mv := m.movements[i]
		if req.ProductID != nil && mv.ProductID != *req.ProductID {
			continue
		}
		if req.Type != nil && mv.Type != *req.Type {
			continue
		}
		out = append(out, mv)
	}
	return out, nil
}

func (m *memoryRepo) Snapshot(_ context.Context, _, productID int64) (int64, int64, error) {
	cached, ok := m.quantities[productID]
	if !ok {
		return 0, 0, shared.ErrNotFound
	}
	var folded int64
	for _, mv := range m.movements {
		if mv.ProductID == productID {
			folded += mv.Delta()
		}
	}
	return cached, folded, nil
}

func TestRecordShiftsCachedQuantity(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[1] = 10
	svc := NewService(repo)

	_, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 5})
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementOut, Quantity: 3})
	require.NoError(t, err)

	require.Equal(t, int64(12), repo.quantities[1])
}

func TestRecordAllowsNegativeStock(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[1] = 2
	svc := NewService(repo)

	_, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementOut, Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, int64(-3), repo.quantities[1])
}

func TestRecordDefaultsToManualReference(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[1] = 0
	svc := NewService(repo)

	m, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, ReferenceManual, m.ReferenceType)
}

func TestRecordKeepsDeclaredReference(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[1] = 0
	svc := NewService(repo)

	// every declared reference tag must survive the write path unchanged
	for _, ref := range []ReferenceType{ReferenceInvoice, ReferencePurchase, ReferenceAdjustment, ReferenceManual} {
		ref := ref
		m, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 1, Reference: &ref})
		require.NoError(t, err)
		require.Equal(t, ref, m.ReferenceType)
	}
}

func TestRecordRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 0})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestReconcileReportsDrift(t *testing.T) {
	repo := newMemoryRepo()
	// seeded opening quantity with no movement behind it
	repo.quantities[1] = 7
	svc := NewService(repo)

	_, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 3})
	require.NoError(t, err)

	result, err := svc.Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), result.CachedQuantity)
	require.Equal(t, int64(3), result.MovementTotal)
	require.Equal(t, int64(7), result.Drift)
	require.False(t, result.Consistent)
}

func TestReconcileConsistentWhenAllMutationsLogged(t *testing.T) {
	repo := newMemoryRepo()
	repo.quantities[1] = 0
	svc := NewService(repo)

	_, err := svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementIn, Quantity: 4})
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), 1, RecordMovementRequest{ProductID: 1, Type: MovementOut, Quantity: 1})
	require.NoError(t, err)

	result, err := svc.Reconcile(context.Background(), 1, 1)
	require.NoError(t, err)
	require.True(t, result.Consistent)
	require.Equal(t, int64(3), result.CachedQuantity)
}

func TestFold(t *testing.T) {
	total := Fold([]Movement{
		{Type: MovementIn, Quantity: 10},
		{Type: MovementOut, Quantity: 4},
		{Type: MovementIn, Quantity: 1},
	})
	require.Equal(t, int64(7), total)
}
