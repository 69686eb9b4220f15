package entities

import (
	"time"

	"asset-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// DisposalStatus es el estado del flujo de aprobación de una baja.
type DisposalStatus string

const (
	DisposalPending  DisposalStatus = "PENDIENTE"
	DisposalApproved DisposalStatus = "APROBADA"
	DisposalRejected DisposalStatus = "RECHAZADA"
)

// Disposal registra la solicitud de baja de una unidad y su resolución. Es el
// único registro de caso de uso que admite una actualización posterior: el
// paso de aprobación.
type Disposal struct {
	ID          uint64         `json:"id"`
	AssetUnitID uint64         `json:"asset_unit_id"`
	Date        time.Time      `json:"date"`
	Reason      string         `json:"reason"`
	Status      DisposalStatus `json:"status"`
	RequestedBy uint64         `json:"requested_by"`
	ResolvedBy  null.Uint64    `json:"resolved_by"`

	types.BaseEntity

	AssetUnit *AssetUnit `db:"-" json:"asset_unit,omitempty"`
}
