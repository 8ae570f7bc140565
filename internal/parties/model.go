package parties

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType distinguishes customers from suppliers.
type PartyType string

const (
	TypeCustomer PartyType = "customer"
	TypeSupplier PartyType = "supplier"
	TypeBoth     PartyType = "both"
)

// Status marks whether a party is in active use.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Party is a customer or supplier with a running ledger balance.
type Party struct {
	ID             int64           `json:"id"`
	OwnerID        int64           `json:"-"`
	Name           string          `json:"name"`
	Mobile         *string         `json:"mobile,omitempty"`
	Address        *string         `json:"address,omitempty"`
	Type           PartyType       `json:"type"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyWithBalance attaches the derived balance figures. Balance is never
// stored; it is recomputed from the opening balance and the ledger on read.
type PartyWithBalance struct {
	Party
	Balance decimal.Decimal `json:"balance"`
	TheyOwe decimal.Decimal `json:"they_owe"`
	YouOwe  decimal.Decimal `json:"you_owe"`
}

// DeleteResult reports how many dependent rows a cascade delete removed.
type DeleteResult struct {
	Transactions int64 `json:"transactions_deleted"`
	Invoices     int64 `json:"invoices_deleted"`
	InvoiceItems int64 `json:"invoice_items_deleted"`
	Payments     int64 `json:"payments_deleted"`
}
