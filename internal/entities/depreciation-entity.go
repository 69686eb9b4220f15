package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// DepreciationMethod es el método de cálculo aplicado.
type DepreciationMethod string

const (
	MethodStraightLine     DepreciationMethod = "LINEA_RECTA"
	MethodDecliningBalance DepreciationMethod = "SALDO_DECRECIENTE"
)

func (m DepreciationMethod) Valid() bool {
	return m == MethodStraightLine || m == MethodDecliningBalance
}

// Depreciation registra una corrida de depreciación sobre una unidad. Es
// única por (unidad, período, método): repetir la corrida dentro del mismo
// período actualiza la fila en lugar de duplicarla.
type Depreciation struct {
	ID           uint64             `json:"id"`
	AssetUnitID  uint64             `json:"asset_unit_id"`
	Date         time.Time          `json:"date"`
	Value        decimal.Decimal    `json:"value"`
	NetValue     decimal.Decimal    `json:"net_value"`
	Period       string             `json:"period"`
	Method       DepreciationMethod `json:"method"`
	SpecialCause null.String        `json:"special_cause"`

	types.BaseEntity
}
