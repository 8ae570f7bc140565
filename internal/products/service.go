package products

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/shared"
)

var hundred = decimal.NewFromInt(100)

// Service coordinates product operations.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validatePrices(purchase, selling, taxRate decimal.Decimal) error {
	if purchase.IsNegative() || selling.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", shared.ErrValidation)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: tax_rate must be between 0 and 100", shared.ErrValidation)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateProductRequest) (*Product, error) {
	p := Product{
		OwnerID:       ownerID,
		Name:          req.Name,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
	}
	if req.LowStockThreshold != nil {
		p.LowStockThreshold = *req.LowStockThreshold
	}
	if req.TaxRate != nil {
		p.TaxRate = *req.TaxRate
	}
	if err := validatePrices(p.PurchasePrice, p.SellingPrice, p.TaxRate); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Get(ctx context.Context, ownerID, id int64) (*Product, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, req ListProductsRequest) ([]Product, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Update(ctx context.Context, ownerID, id int64, req UpdateProductRequest) (*Product, error) {
	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.PurchasePrice != nil {
		existing.PurchasePrice = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		existing.SellingPrice = *req.SellingPrice
	}
	if req.StockQuantity != nil {
		existing.StockQuantity = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		existing.LowStockThreshold = *req.LowStockThreshold
	}
	if req.TaxRate != nil {
		existing.TaxRate = *req.TaxRate
	}
	if err := validatePrices(existing.PurchasePrice, existing.SellingPrice, existing.TaxRate); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ownerID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// LowStock lists products whose quantity is at or below their threshold,
// negative quantities included.
func (s *Service) LowStock(ctx context.Context, ownerID int64) ([]Product, error) {
	return s.repo.List(ctx, ListProductsRequest{OwnerID: ownerID, LowStock: true})
}

func (s *Service) Categories(ctx context.Context, ownerID int64) ([]string, error) {
	return s.repo.Categories(ctx, ownerID)
}
