package transactions

import (
	"context"
	"fmt"

	"github.com/khata-app/khata-server/internal/shared"
)

// Service coordinates personal ledger operations.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateTransactionRequest) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	exists, err := s.repo.ContactExists(ctx, ownerID, req.ContactID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: contact %d", shared.ErrNotFound, req.ContactID)
	}
	t := Transaction{
		OwnerID:         ownerID,
		ContactID:       req.ContactID,
		Type:            req.Type,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		PaymentMethod:   req.PaymentMethod,
		Reference:       req.Reference,
		Notes:           req.Notes,
	}
	return s.repo.Insert(ctx, t)
}

func (s *Service) Get(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, req ListTransactionsRequest) ([]TransactionWithContact, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Update(ctx context.Context, ownerID, id int64, req UpdateTransactionRequest) (*Transaction, error) {
	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
		}
		existing.Amount = *req.Amount
	}
	if req.TransactionDate != nil {
		existing.TransactionDate = *req.TransactionDate
	}
	if req.PaymentMethod != nil {
		existing.PaymentMethod = req.PaymentMethod
	}
	if req.Reference != nil {
		existing.Reference = req.Reference
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, ownerID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}
