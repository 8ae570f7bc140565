// Package stock keeps the append-only movement log for product quantities.
// The cached Product.stock_quantity counter is mutated only in the same
// transaction as the movement insert; the log is the source of truth for
// reconciliation.
package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// ReferenceType tags a movement with its originating document.
type ReferenceType string

const (
	ReferenceInvoice    ReferenceType = "invoice"
	ReferencePurchase   ReferenceType = "purchase"
	ReferenceAdjustment ReferenceType = "adjustment"
	ReferenceManual     ReferenceType = "manual"
)

// Movement is one append-only stock ledger entry.
type Movement struct {
	ID            int64            `json:"id"`
	OwnerID       int64            `json:"-"`
	ProductID     int64            `json:"product_id"`
	Type          MovementType     `json:"type"`
	Quantity      int64            `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	ReferenceType ReferenceType    `json:"reference_type"`
	ReferenceID   *int64           `json:"reference_id,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Delta is the signed effect a movement has on the cached quantity.
func (m Movement) Delta() int64 {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// ReconcileResult compares the cached counter against the movement fold.
type ReconcileResult struct {
	ProductID      int64 `json:"product_id"`
	CachedQuantity int64 `json:"cached_quantity"`
	MovementTotal  int64 `json:"movement_total"`
	Drift          int64 `json:"drift"`
	Consistent     bool  `json:"consistent"`
}

// Fold reduces a movement list to its net quantity effect.
func Fold(movements []Movement) int64 {
	var total int64
	for _, m := range movements {
		total += m.Delta()
	}
	return total
}
