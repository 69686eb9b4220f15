package entities

import (
	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Personnel es el empleado que puede tener unidades asignadas. La relación es
// una referencia débil desde AssetUnit.CurrentHolderID, no una propiedad.
type Personnel struct {
	ID       uint64      `json:"id"`
	Name     string      `json:"name"`
	CI       string      `json:"ci"`
	Position string      `json:"position"`
	Email    null.String `json:"email"`
	Active   bool        `json:"active"`

	types.BaseEntity
}
