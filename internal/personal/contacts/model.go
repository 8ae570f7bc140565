// Package contacts keeps the owner's personal lending circle: friends and
// family money is tracked on a separate ledger from the business one, with
// given/received vocabulary instead of debit/credit.
package contacts

import (
	"time"

	"github.com/shopspring/decimal"
)

// Relationship categorizes a personal contact.
type Relationship string

const (
	RelationshipFriend    Relationship = "friend"
	RelationshipFamily    Relationship = "family"
	RelationshipColleague Relationship = "colleague"
	RelationshipNeighbor  Relationship = "neighbor"
	RelationshipOther     Relationship = "other"
)

// Status marks whether a contact is in active use.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Contact is a person in the owner's informal lending ledger.
type Contact struct {
	ID             int64           `json:"id"`
	OwnerID        int64           `json:"-"`
	Name           string          `json:"name"`
	Mobile         *string         `json:"mobile,omitempty"`
	Relationship   Relationship    `json:"relationship"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ContactWithBalance attaches the derived figures. Balance is recomputed
// from opening balance plus the given/received fold, never stored.
type ContactWithBalance struct {
	Contact
	Balance decimal.Decimal `json:"balance"`
	TheyOwe decimal.Decimal `json:"they_owe"`
	YouOwe  decimal.Decimal `json:"you_owe"`
}
