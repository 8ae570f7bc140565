package parties

import "github.com/shopspring/decimal"

type CreatePartyRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Mobile         *string         `json:"mobile,omitempty" validate:"omitempty,max=15"`
	Address        *string         `json:"address,omitempty"`
	Type           PartyType       `json:"type" validate:"required,oneof=customer supplier both"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Status         *Status         `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type UpdatePartyRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Mobile         *string          `json:"mobile,omitempty" validate:"omitempty,max=15"`
	Address        *string          `json:"address,omitempty"`
	Type           *PartyType       `json:"type,omitempty" validate:"omitempty,oneof=customer supplier both"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
	Status         *Status          `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type ListPartiesRequest struct {
	OwnerID int64
	Type    *PartyType
	Status  *Status
	Search  *string
}
