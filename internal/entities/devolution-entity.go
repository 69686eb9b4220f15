package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Devolution registra la devolución de una unidad por parte del personal que
// la tenía asignada.
type Devolution struct {
	ID          uint64      `json:"id"`
	UserID      uint64      `json:"user_id"`
	PersonnelID uint64      `json:"personnel_id"`
	AssetUnitID uint64      `json:"asset_unit_id"`
	Date        time.Time   `json:"date"`
	Detail      string      `json:"detail"`
	ActaDoc     null.String `json:"acta_doc"`

	types.BaseEntity
}
