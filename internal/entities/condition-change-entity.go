package entities

import (
	"time"

	"asset-system/pkg/types"
)

// ConditionChange registra una transición de estado físico validada por la
// máquina de estados.
type ConditionChange struct {
	ID                uint64            `json:"id"`
	AssetUnitID       uint64            `json:"asset_unit_id"`
	PreviousCondition PhysicalCondition `json:"previous_condition"`
	NewCondition      PhysicalCondition `json:"new_condition"`
	Reason            string            `json:"reason"`
	ChangedAt         time.Time         `json:"changed_at"`

	types.BaseEntity
}
