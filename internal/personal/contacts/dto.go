package contacts

import "github.com/shopspring/decimal"

type CreateContactRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Mobile         *string         `json:"mobile,omitempty" validate:"omitempty,max=15"`
	Relationship   Relationship    `json:"relationship" validate:"required,oneof=friend family colleague neighbor other"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Status         *Status         `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type UpdateContactRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Mobile         *string          `json:"mobile,omitempty" validate:"omitempty,max=15"`
	Relationship   *Relationship    `json:"relationship,omitempty" validate:"omitempty,oneof=friend family colleague neighbor other"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	Status         *Status          `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type ListContactsRequest struct {
	OwnerID      int64
	Relationship *Relationship
	Status       *Status
	Search       *string
}
