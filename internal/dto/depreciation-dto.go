package dto

import "github.com/shopspring/decimal"

type CreateDepreciationDTO struct {
	AssetUnitID  uint64  `json:"asset_unit_id" validate:"required,gt=0"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	Method       string  `json:"method" validate:"required,oneof=LINEA_RECTA SALDO_DECRECIENTE"`
	SpecialCause *string `json:"special_cause,omitempty"`
}

type BatchDepreciationDTO struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Method string `json:"method" validate:"required,oneof=LINEA_RECTA SALDO_DECRECIENTE"`
}

type DepreciationDTO struct {
	ID           uint64          `json:"id"`
	AssetUnitID  uint64          `json:"asset_unit_id"`
	Date         string          `json:"date"`
	Value        decimal.Decimal `json:"value"`
	NetValue     decimal.Decimal `json:"net_value"`
	Period       string          `json:"period"`
	Method       string          `json:"method"`
	SpecialCause *string         `json:"special_cause,omitempty"`
}

// BatchDepreciationResultDTO resume una corrida masiva: las unidades que
// fallaron no bloquean a las demas.
type BatchDepreciationResultDTO struct {
	Processed int                     `json:"processed"`
	Skipped   int                     `json:"skipped"`
	Failed    []BatchDepreciationFail `json:"failed,omitempty"`
}

type BatchDepreciationFail struct {
	AssetUnitID uint64 `json:"asset_unit_id"`
	Error       string `json:"error"`
}
