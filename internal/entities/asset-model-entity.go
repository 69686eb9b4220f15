package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// AssetModel es la plantilla de la que se recortan las unidades físicas. El
// campo AvailableQuantity es informativo (se descuenta al asignar) y nunca se
// usa como invariante: la verdad está en las unidades.
type AssetModel struct {
	ID            uint64          `json:"id"`
	PartidaID     uint64          `json:"partida_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"entry_date"`
	Cost          decimal.Decimal `json:"cost"`
	Code          string          `json:"code"`
	PreviousCode  null.String     `json:"previous_code"`
	PurchaseOrder null.String     `json:"purchase_order"`
	Quantity      int             `json:"quantity"`
	AvailableQty  int             `json:"available_quantity"`
	CreatedBy     string          `json:"created_by"`

	types.BaseEntity

	Partida *Partida     `db:"-" json:"partida,omitempty"`
	Units   []*AssetUnit `db:"-" json:"units,omitempty"`
}
