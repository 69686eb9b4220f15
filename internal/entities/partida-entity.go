package entities

import (
	"asset-system/pkg/types"

	"github.com/shopspring/decimal"
)

// Partida es la categoría presupuestaria; aporta la vida útil y el porcentaje
// de depreciación que usa el cálculo.
type Partida struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	UsefulLife     int             `json:"useful_life_years"`
	RatePercentage decimal.Decimal `json:"depreciation_rate_percent"`

	types.BaseEntity
}
