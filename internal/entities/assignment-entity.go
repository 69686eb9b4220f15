package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Assignment registra una entrega de unidades a un miembro del personal. Las
// unidades concretas cuelgan de AssignmentUnit.
type Assignment struct {
	ID          uint64      `json:"id"`
	UserID      uint64      `json:"user_id"`
	PersonnelID uint64      `json:"personnel_id"`
	Date        time.Time   `json:"date"`
	Detail      string      `json:"detail"`
	ApprovalDoc null.String `json:"approval_doc"`

	types.BaseEntity

	Units []*AssignmentUnit `db:"-" json:"units,omitempty"`
}

type AssignmentUnit struct {
	ID           uint64 `json:"id"`
	AssignmentID uint64 `json:"assignment_id"`
	AssetUnitID  uint64 `json:"asset_unit_id"`
}
