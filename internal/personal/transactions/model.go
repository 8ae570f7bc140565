// Package transactions is the personal ledger: given/received entries
// against a personal contact, mirroring the business ledger's contract.
package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType carries the direction of a personal ledger entry. Given
// increases what the contact owes the owner, received decreases it.
type EntryType string

const (
	TypeGiven    EntryType = "given"
	TypeReceived EntryType = "received"
)

// Transaction is one personal ledger entry. Amount is strictly positive;
// direction lives in Type, never in the sign.
type Transaction struct {
	ID              int64           `json:"id"`
	OwnerID         int64           `json:"-"`
	ContactID       int64           `json:"personal_contact_id"`
	Type            EntryType       `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	Reference       *string         `json:"reference,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionWithContact attaches the contact name for listings.
type TransactionWithContact struct {
	Transaction
	ContactName string `json:"contact_name"`
}
