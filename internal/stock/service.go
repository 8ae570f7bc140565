package stock

import (
	"context"
	"fmt"

	"github.com/khata-app/khata-server/internal/shared"
)

// Service coordinates stock ledger operations.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends a movement and shifts the cached quantity. Stock may go
// negative; callers surface that through the low-stock read path rather
// than a write-time rejection.
func (s *Service) Record(ctx context.Context, ownerID int64, req RecordMovementRequest) (*Movement, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
	}
	ref := ReferenceManual
	if req.Reference != nil {
		ref = *req.Reference
	}
	m := Movement{
		OwnerID:       ownerID,
		ProductID:     req.ProductID,
		Type:          req.Type,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		ReferenceType: ref,
		ReferenceID:   req.ReferenceID,
		Notes:         req.Notes,
	}
	return s.repo.Record(ctx, m)
}

func (s *Service) List(ctx context.Context, req ListMovementsRequest) ([]Movement, error) {
	return s.repo.List(ctx, req)
}

// Reconcile folds the movement log against the cached counter and reports
// the drift. Products seeded with an opening quantity and no movement show
// that opening amount as drift, which is expected.
func (s *Service) Reconcile(ctx context.Context, ownerID, productID int64) (*ReconcileResult, error) {
	cached, folded, err := s.repo.Snapshot(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	drift := cached - folded
	return &ReconcileResult{
		ProductID:      productID,
		CachedQuantity: cached,
		MovementTotal:  folded,
		Drift:          drift,
		Consistent:     drift == 0,
	}, nil
}
