// Package spending holds the owner's dated personal spend records. Expenses
// and purchases have no ledger relationship; reports sum them by window.
package spending

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated personal outgoing.
type Expense struct {
	ID            int64           `json:"id"`
	OwnerID       int64           `json:"-"`
	Amount        decimal.Decimal `json:"amount"`
	Category      *string         `json:"category,omitempty"`
	Description   *string         `json:"description,omitempty"`
	ExpenseDate   time.Time       `json:"expense_date"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Purchase is a dated personal acquisition.
type Purchase struct {
	ID            int64           `json:"id"`
	OwnerID       int64           `json:"-"`
	ItemName      string          `json:"item_name"`
	Amount        decimal.Decimal `json:"amount"`
	Category      *string         `json:"category,omitempty"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
