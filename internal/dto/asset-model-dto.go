package dto

import "github.com/shopspring/decimal"

type CreateAssetModelDTO struct {
	PartidaID     uint64          `json:"partida_id" validate:"required,gt=0"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	EntryDate     string          `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Cost          decimal.Decimal `json:"cost" validate:"required"`
	PreviousCode  *string         `json:"previous_code,omitempty"`
	PurchaseOrder *string         `json:"purchase_order,omitempty"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	Condition     string          `json:"condition" validate:"required,oneof=Nuevo Bueno Regular Malo"`
}

type AssetModelDTO struct {
	ID            uint64          `json:"id"`
	PartidaID     uint64          `json:"partida_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	EntryDate     string          `json:"entry_date"`
	Cost          decimal.Decimal `json:"cost"`
	Code          string          `json:"code"`
	PreviousCode  *string         `json:"previous_code,omitempty"`
	PurchaseOrder *string         `json:"purchase_order,omitempty"`
	Quantity      int             `json:"quantity"`
	AvailableQty  int             `json:"available_quantity"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type ShortAssetModelDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
