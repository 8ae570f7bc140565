package spending

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	Description   *string         `json:"description,omitempty"`
	ExpenseDate   time.Time       `json:"expense_date" validate:"required"`
	PaymentMethod *string         `json:"payment_method,omitempty" validate:"omitempty,max=50"`
}

type UpdateExpenseRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Description   *string          `json:"description,omitempty"`
	ExpenseDate   *time.Time       `json:"expense_date,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,max=50"`
}

type CreatePurchaseRequest struct {
	ItemName      string          `json:"item_name" validate:"required,max=255"`
	Amount        decimal.Decimal `json:"amount"`
	Category      *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	PurchaseDate  time.Time       `json:"purchase_date" validate:"required"`
	PaymentMethod *string         `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	Notes         *string         `json:"notes,omitempty"`
}

type UpdatePurchaseRequest struct {
	ItemName      *string          `json:"item_name,omitempty" validate:"omitempty,max=255"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,max=50"`
	Notes         *string          `json:"notes,omitempty"`
}

type ListSpendingRequest struct {
	OwnerID  int64
	Category *string
	DateFrom *time.Time
	DateTo   *time.Time
}
