package stock

import "github.com/shopspring/decimal"

type RecordMovementRequest struct {
	ProductID   int64            `json:"product_id" validate:"required,gt=0"`
	Type        MovementType     `json:"type" validate:"required,oneof=in out"`
	Quantity    int64            `json:"quantity" validate:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Reference   *ReferenceType   `json:"reference_type,omitempty" validate:"omitempty,oneof=invoice purchase adjustment manual"`
	ReferenceID *int64           `json:"reference_id,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

type ListMovementsRequest struct {
	OwnerID   int64
	ProductID *int64
	Type      *MovementType
}
