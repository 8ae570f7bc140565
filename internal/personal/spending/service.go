package spending

import (
	"context"
	"fmt"

	"github.com/khata-app/khata-server/internal/shared"
)

// Service coordinates personal spending operations.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateExpense(ctx context.Context, ownerID int64, req CreateExpenseRequest) (*Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	return s.repo.InsertExpense(ctx, Expense{
		OwnerID:       ownerID,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		ExpenseDate:   req.ExpenseDate,
		PaymentMethod: req.PaymentMethod,
	})
}

func (s *Service) GetExpense(ctx context.Context, ownerID, id int64) (*Expense, error) {
	return s.repo.GetExpense(ctx, ownerID, id)
}

func (s *Service) ListExpenses(ctx context.Context, req ListSpendingRequest) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, req)
}

func (s *Service) UpdateExpense(ctx context.Context, ownerID, id int64, req UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.repo.GetExpense(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
		}
		existing.Amount = *req.Amount
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.ExpenseDate != nil {
		existing.ExpenseDate = *req.ExpenseDate
	}
	if req.PaymentMethod != nil {
		existing.PaymentMethod = req.PaymentMethod
	}
	if err := s.repo.UpdateExpense(ctx, ownerID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.GetExpense(ctx, ownerID, id)
}

func (s *Service) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	return s.repo.DeleteExpense(ctx, ownerID, id)
}

func (s *Service) CreatePurchase(ctx context.Context, ownerID int64, req CreatePurchaseRequest) (*Purchase, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	return s.repo.InsertPurchase(ctx, Purchase{
		OwnerID:       ownerID,
		ItemName:      req.ItemName,
		Amount:        req.Amount,
		Category:      req.Category,
		PurchaseDate:  req.PurchaseDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
}

func (s *Service) GetPurchase(ctx context.Context, ownerID, id int64) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, ownerID, id)
}

func (s *Service) ListPurchases(ctx context.Context, req ListSpendingRequest) ([]Purchase, error) {
	return s.repo.ListPurchases(ctx, req)
}

func (s *Service) UpdatePurchase(ctx context.Context, ownerID, id int64, req UpdatePurchaseRequest) (*Purchase, error) {
	existing, err := s.repo.GetPurchase(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.ItemName != nil {
		existing.ItemName = *req.ItemName
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
		}
		existing.Amount = *req.Amount
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.PurchaseDate != nil {
		existing.PurchaseDate = *req.PurchaseDate
	}
	if req.PaymentMethod != nil {
		existing.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if err := s.repo.UpdatePurchase(ctx, ownerID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.GetPurchase(ctx, ownerID, id)
}

func (s *Service) DeletePurchase(ctx context.Context, ownerID, id int64) error {
	return s.repo.DeletePurchase(ctx, ownerID, id)
}
