package dto

import "github.com/shopspring/decimal"

type AssetUnitDTO struct {
	ID             uint64             `json:"id"`
	Code           string             `json:"code"`
	Assigned       bool               `json:"assigned"`
	StockCondition string             `json:"stock_condition"`
	PhysicalState  string             `json:"physical_state"`
	CurrentCost    decimal.Decimal    `json:"current_cost"`
	HolderID       *uint64            `json:"holder_id,omitempty"`
	Model          ShortAssetModelDTO `json:"model"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

type AssetUnitFilterDTO struct {
	ModelID        *uint64 `query:"model_id"`
	HolderID       *uint64 `query:"holder_id"`
	StockCondition *string `query:"stock_condition"`
	Assigned       *bool   `query:"assigned"`
	Limit          uint64  `query:"limit"`
	Offset         uint64  `query:"offset"`
}

type ChangeConditionDTO struct {
	NewCondition string `json:"new_condition" validate:"required,oneof=Nuevo Bueno Regular Malo"`
	Reason       string `json:"reason" validate:"required"`
}
