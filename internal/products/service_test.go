package products

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
	products map[int64]Product
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{products: map[int64]Product{}}
}

func (m *memoryRepo) Create(_ context.Context, p Product) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *memoryRepo) Get(_ context.Context, ownerID, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, req ListProductsRequest) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.OwnerID != req.OwnerID {
			continue
		}
		if req.Category != nil && (p.Category == nil || *p.Category != *req.Category) {
			continue
		}
		if req.LowStock && p.StockQuantity > p.LowStockThreshold {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, ownerID, id int64, p Product) error {
	existing, ok := m.products[id]
	if !ok || existing.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	p.ID = id
	p.OwnerID = ownerID
	m.products[id] = p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, ownerID, id int64) error {
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memoryRepo) Categories(_ context.Context, ownerID int64) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range m.products {
		if p.OwnerID != ownerID || p.Category == nil || seen[*p.Category] {
			continue
		}
		seen[*p.Category] = true
		out = append(out, *p.Category)
	}
	return out, nil
}

func TestCreateRejectsBadTaxRate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	rate := d("101")
	_, err := svc.Create(context.Background(), 1, CreateProductRequest{
		Name:    "Widget",
		TaxRate: &rate,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), 1, CreateProductRequest{
		Name:         "Widget",
		SellingPrice: d("-1"),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestLowStockIncludesNegativeQuantities(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	threshold := int64(5)
	_, err := svc.Create(context.Background(), 1, CreateProductRequest{
		Name:              "Oversold",
		StockQuantity:     -3,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, CreateProductRequest{
		Name:              "Plenty",
		StockQuantity:     50,
		LowStockThreshold: &threshold,
	})
	require.NoError(t, err)

	low, err := svc.LowStock(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Oversold", low[0].Name)
	require.Equal(t, int64(-3), low[0].StockQuantity)
}

func TestUpdatePreservesUnsetFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	cat := "hardware"
	created, err := svc.Create(context.Background(), 1, CreateProductRequest{
		Name:          "Bolt",
		Category:      &cat,
		SellingPrice:  d("2.50"),
		StockQuantity: 10,
	})
	require.NoError(t, err)

	price := d("3.00")
	updated, err := svc.Update(context.Background(), 1, created.ID, UpdateProductRequest{
		SellingPrice: &price,
	})
	require.NoError(t, err)
	require.Equal(t, "Bolt", updated.Name)
	require.NotNil(t, updated.Category)
	require.Equal(t, "hardware", *updated.Category)
	require.True(t, updated.SellingPrice.Equal(d("3.00")))
	require.Equal(t, int64(10), updated.StockQuantity)
}
