package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/khata-app/khata-server/internal/shared"
)

// maxNumberRetries bounds how often a creation is retried after losing the
// invoice-number race to a concurrent writer.
const maxNumberRetries = 5

// AuditPort records audit trail entries.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates invoice creation and reads.
type Service struct {
	repo  Repository
	audit AuditPort
}

// NewService builds a Service instance.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Create validates the request, materializes line totals with exact decimal
// arithmetic and writes the invoice atomically with its items, stock
// movements, and the credit ledger transaction. Numbering conflicts from
// concurrent writers are retried with a fresh sequence.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateInvoiceRequest) (*InvoiceDetail, error) {
	if err := s.validateItems(ctx, ownerID, req); err != nil {
		return nil, err
	}

	totals := ComputeTotals(req.Items)
	paid := decimal.Zero
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, fmt.Errorf("%w: paid_amount must not be negative", shared.ErrValidation)
		}
		paid = *req.PaidAmount
	}
	if paid.GreaterThan(totals.Total) {
		paid = totals.Total
	}

	inv := Invoice{
		OwnerID:       ownerID,
		PartyID:       req.PartyID,
		InvoiceDate:   req.InvoiceDate,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.Total,
		PaidAmount:    paid,
		PaymentStatus: ResolveStatus(paid, totals.Total, req.PaymentStatus),
		Notes:         req.Notes,
	}

	var created *Invoice
	var err error
	for attempt := 0; attempt <= maxNumberRetries; attempt++ {
		created, err = s.repo.Create(ctx, inv, totals.Items)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			OwnerID:  ownerID,
			Action:   "invoice:create",
			Entity:   "invoice",
			EntityID: fmt.Sprintf("%d", created.ID),
			Meta: map[string]any{
				"invoice_number": created.InvoiceNumber,
				"total_amount":   created.TotalAmount.String(),
				"items":          len(totals.Items),
			},
		})
	}

	return s.repo.Get(ctx, ownerID, created.ID)
}

func (s *Service) validateItems(ctx context.Context, ownerID int64, req CreateInvoiceRequest) error {
	exists, err := s.repo.PartyExists(ctx, ownerID, req.PartyID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: party %d", shared.ErrNotFound, req.PartyID)
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit_price must not be negative", shared.ErrValidation)
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(hundred) {
			return fmt.Errorf("%w: tax_rate must be between 0 and 100", shared.ErrValidation)
		}
		ids = append(ids, item.ProductID)
	}

	missing, err := s.repo.MissingProducts(ctx, ownerID, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: product %d", shared.ErrNotFound, missing[0])
	}
	return nil
}

func (s *Service) Get(ctx context.Context, ownerID, id int64) (*InvoiceDetail, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceDetail, error) {
	return s.repo.List(ctx, req)
}
