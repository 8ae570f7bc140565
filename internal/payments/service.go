package payments

import (
	"context"
	"fmt"

	"github.com/khata-app/khata-server/internal/shared"
)

// AuditPort records audit trail entries.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates payment recording and reads.
type Service struct {
	repo  Repository
	audit AuditPort
}

// NewService builds a Service instance.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Record validates and persists a payment. The payment insert, the invoice
// paid-state advance and the debit ledger transaction commit together.
func (s *Service) Record(ctx context.Context, ownerID int64, req RecordPaymentRequest) (*Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	exists, err := s.repo.PartyExists(ctx, ownerID, req.PartyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: party %d", shared.ErrNotFound, req.PartyID)
	}

	p := Payment{
		OwnerID:     ownerID,
		PartyID:     req.PartyID,
		InvoiceID:   req.InvoiceID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			OwnerID:  ownerID,
			Action:   "payment:record",
			Entity:   "payment",
			EntityID: fmt.Sprintf("%d", created.ID),
			Meta: map[string]any{
				"amount":   created.Amount.String(),
				"party_id": created.PartyID,
			},
		})
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error) {
	return s.repo.List(ctx, req)
}
