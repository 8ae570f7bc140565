package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/shared"
)

// AuditPort records audit trail entries.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles manual khata entries and balance reads.
type Service struct {
	repo  Repository
	audit AuditPort
}

// NewService builds a Service instance.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

func (s *Service) recordAudit(ctx context.Context, ownerID, id int64, action string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		OwnerID:  ownerID,
		Action:   action,
		Entity:   "transaction",
		EntityID: fmt.Sprintf("%d", id),
	})
}

// Create appends a manual ledger entry for the owner.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateTransactionRequest) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	ok, err := s.repo.PartyExists(ctx, ownerID, req.PartyID)
	if err != nil {
		return nil, fmt.Errorf("verify party: %w", err)
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	txn := Transaction{
		OwnerID:         ownerID,
		PartyID:         req.PartyID,
		Type:            req.Type,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Note:            req.Note,
		ReferenceType:   ReferenceManual,
	}
	id, err := s.repo.Insert(ctx, txn)
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, ownerID, id, "transaction:create")
	return s.repo.Get(ctx, ownerID, id)
}

// Get fetches a single entry scoped to the owner.
func (s *Service) Get(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	return s.repo.Get(ctx, ownerID, id)
}

// ListResult is a page of entries with its pagination metadata.
type ListResult struct {
	Transactions []TransactionWithParty `json:"transactions"`
	Pagination   shared.Pagination      `json:"pagination"`
}

// List returns entries ordered by (transaction_date desc, insertion desc).
func (s *Service) List(ctx context.Context, req ListTransactionsRequest) (*ListResult, error) {
	total, err := s.repo.Count(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}
	p := shared.NewPagination(req.Page, req.PerPage, total)
	req.Page, req.PerPage = p.Page, p.PerPage

	txns, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ListResult{Transactions: txns, Pagination: p}, nil
}

// Update applies partial field changes to an existing entry. It deliberately
// does not re-synchronize any invoice that references the entry (accepted gap).
func (s *Service) Update(ctx context.Context, ownerID, id int64, req UpdateTransactionRequest) (*Transaction, error) {
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if req.PartyID != nil {
		ok, err := s.repo.PartyExists(ctx, ownerID, *req.PartyID)
		if err != nil {
			return nil, fmt.Errorf("verify party: %w", err)
		}
		if !ok {
			return nil, shared.ErrNotFound
		}
	}

	updates := make(map[string]any)
	if req.PartyID != nil {
		updates["party_id"] = *req.PartyID
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.TransactionDate != nil {
		updates["transaction_date"] = *req.TransactionDate
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, ownerID, id, updates); err != nil {
			return nil, err
		}
		s.recordAudit(ctx, ownerID, id, "transaction:update")
	}
	return s.repo.Get(ctx, ownerID, id)
}

// Delete removes an entry. Referencing documents are left untouched.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.recordAudit(ctx, ownerID, id, "transaction:delete")
	return nil
}

// PartyBalance computes opening + Σdebit − Σcredit for one party.
func (s *Service) PartyBalance(ctx context.Context, ownerID, partyID int64, opening decimal.Decimal) (decimal.Decimal, error) {
	debit, credit, err := s.repo.SumByParty(ctx, ownerID, partyID)
	if err != nil {
		return decimal.Zero, err
	}
	return opening.Add(debit).Sub(credit), nil
}
