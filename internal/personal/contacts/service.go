package contacts

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/ledger"
)

// Service coordinates personal contact operations.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateContactRequest) (*Contact, error) {
	status := StatusActive
	if req.Status != nil {
		status = *req.Status
	}
	c := Contact{
		OwnerID:        ownerID,
		Name:           req.Name,
		Mobile:         req.Mobile,
		Relationship:   req.Relationship,
		OpeningBalance: req.OpeningBalance,
		Status:         status,
	}
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Get returns the contact with its derived balance. The personal ledger
// folds the same way as the business one: opening + given - received.
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*ContactWithBalance, error) {
	c, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	given, received, err := s.repo.SumByContact(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("contact balance: %w", err)
	}
	balance := Balance(c.OpeningBalance, given, received)
	theyOwe, youOwe := ledger.Split(balance)
	return &ContactWithBalance{Contact: *c, Balance: balance, TheyOwe: theyOwe, YouOwe: youOwe}, nil
}

// Balance computes opening + given - received. Positive means the contact
// owes the owner.
func Balance(opening, given, received decimal.Decimal) decimal.Decimal {
	return opening.Add(given).Sub(received)
}

func (s *Service) List(ctx context.Context, req ListContactsRequest) ([]ContactWithBalance, error) {
	out, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TheyOwe, out[i].YouOwe = ledger.Split(out[i].Balance)
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id int64, req UpdateContactRequest) (*Contact, error) {
	existing, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Mobile != nil {
		existing.Mobile = req.Mobile
	}
	if req.Relationship != nil {
		existing.Relationship = *req.Relationship
	}
	if req.OpeningBalance != nil {
		existing.OpeningBalance = *req.OpeningBalance
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if err := s.repo.Update(ctx, ownerID, id, *existing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Delete removes the contact along with its transaction history and reports
// how many ledger rows went with it.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	return s.repo.Delete(ctx, ownerID, id)
}
