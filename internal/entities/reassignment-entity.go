package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Reassignment registra el traspaso de una unidad ya asignada de un tenedor a
// otro sin devolución intermedia.
type Reassignment struct {
	ID                  uint64      `json:"id"`
	AssetUnitID         uint64      `json:"asset_unit_id"`
	PreviousUserID      uint64      `json:"previous_user_id"`
	NewUserID           uint64      `json:"new_user_id"`
	PreviousPersonnelID uint64      `json:"previous_personnel_id"`
	NewPersonnelID      uint64      `json:"new_personnel_id"`
	Date                time.Time   `json:"date"`
	Detail              string      `json:"detail"`
	ApprovalDoc         null.String `json:"approval_doc"`

	types.BaseEntity
}
