package entities

import (
	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// StockCondition (estadoCondicion) describe en qué punto del ciclo de vida
// está la unidad. Solo los casos de uso del orquestador la mutan.
type StockCondition string

const (
	StockRegistered StockCondition = "REGISTRADO"
	StockInStock    StockCondition = "EN_STOCK"
	StockAssigned   StockCondition = "ASIGNADO"
	StockReassigned StockCondition = "REASIGNADO"
	StockAvailable  StockCondition = "DISPONIBLE"
	StockDisposed   StockCondition = "BAJA"
)

// PhysicalCondition (estadoActual) describe el estado físico de la unidad.
type PhysicalCondition string

const (
	PhysicalNew  PhysicalCondition = "Nuevo"
	PhysicalGood PhysicalCondition = "Bueno"
	PhysicalFair PhysicalCondition = "Regular"
	PhysicalPoor PhysicalCondition = "Malo"
)

func (p PhysicalCondition) Valid() bool {
	switch p {
	case PhysicalNew, PhysicalGood, PhysicalFair, PhysicalPoor:
		return true
	}
	return false
}

// AssetUnit es la instancia física rastreable de un AssetModel. Sus campos de
// estado solo cambian dentro de una transacción que además agrega la entrada
// correspondiente al ledger.
type AssetUnit struct {
	ID              uint64            `json:"id"`
	AssetModelID    uint64            `json:"asset_model_id"`
	Code            string            `json:"code"`
	Assigned        bool              `json:"assigned"`
	StockCondition  StockCondition    `json:"stock_condition"`
	PhysicalState   PhysicalCondition `json:"physical_state"`
	CurrentCost     decimal.Decimal   `json:"current_cost"`
	CurrentHolderID null.Uint64       `json:"current_holder_id"`

	types.BaseEntity

	// Relación cargada aparte, no es columna.
	AssetModel *AssetModel `db:"-" json:"asset_model,omitempty"`
}
