package parties

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/ledger"
	"github.com/khata-app/khata-server/internal/shared"
)

// BalancePort exposes the ledger aggregate the party views need.
type BalancePort interface {
	SumByParty(ctx context.Context, ownerID, partyID int64) (debit, credit decimal.Decimal, err error)
}

// AuditPort records audit trail entries.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates party operations.
type Service struct {
	repo    Repository
	balance BalancePort
	audit   AuditPort
}

// NewService builds a Service instance.
func NewService(repo Repository, balance BalancePort, audit AuditPort) *Service {
	return &Service{repo: repo, balance: balance, audit: audit}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePartyRequest) (*Party, error) {
	status := StatusActive
	if req.Status != nil {
		status = *req.Status
	}
	p := Party{
		OwnerID:        ownerID,
		Name:           req.Name,
		Mobile:         req.Mobile,
		Address:        req.Address,
		Type:           req.Type,
		OpeningBalance: req.OpeningBalance,
		Status:         status,
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Get returns the party with its derived balance figures.
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*PartyWithBalance, error) {
	p, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	debit, credit, err := s.balance.SumByParty(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("party balance: %w", err)
	}
	balance := ledger.Balance(p.OpeningBalance, []ledger.Entry{
		{Type: ledger.TypeDebit, Amount: debit},
		{Type: ledger.TypeCredit, Amount: credit},
	})
	theyOwe, youOwe := ledger.Split(balance)
	return &PartyWithBalance{Party: *p, Balance: balance, TheyOwe: theyOwe, YouOwe: youOwe}, nil
}

func (s *Service) List(ctx context.Context, req ListPartiesRequest) ([]PartyWithBalance, error) {
	parties, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	for i := range parties {
		parties[i].TheyOwe, parties[i].YouOwe = ledger.Split(parties[i].Balance)
	}
	return parties, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id int64, req UpdatePartyRequest) (*Party, error) {
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
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.Type != nil {
		existing.Type = *req.Type
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

// Delete cascades over the party's transactions, invoices (and their items)
// and payments; all rows go in one atomic unit and exact counts come back.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) (DeleteResult, error) {
	result, err := s.repo.CascadeDelete(ctx, ownerID, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			OwnerID:  ownerID,
			Action:   "party:delete",
			Entity:   "party",
			EntityID: fmt.Sprintf("%d", id),
			Meta: map[string]any{
				"transactions_deleted": result.Transactions,
				"invoices_deleted":     result.Invoices,
				"payments_deleted":     result.Payments,
			},
		})
	}
	return result, nil
}
