package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ChangeType clasifica cada entrada del ledger de ciclo de vida.
type ChangeType string

const (
	ChangeCreation         ChangeType = "CREACION"
	ChangeAssignment       ChangeType = "ASIGNACION"
	ChangeReassignment     ChangeType = "REASIGNACION"
	ChangeReturn           ChangeType = "DEVOLUCION"
	ChangeDisposal         ChangeType = "BAJA"
	ChangeDisposalRequest  ChangeType = "SOLICITUD_BAJA"
	ChangeDisposalRejected ChangeType = "BAJA_RECHAZADA"
	ChangeDisposalRestored ChangeType = "BAJA_RESTAURADA"
	ChangeCondition        ChangeType = "CAMBIO_ESTADO"
	ChangeDepreciation     ChangeType = "DEPRECIACION"
)

// LifecycleLedgerEntry es una fila inmutable del historial de cambios de una
// unidad. Se inserta siempre en la misma transacción que muta el snapshot de
// la unidad; en todo el código no existe UPDATE ni DELETE sobre esta tabla.
type LifecycleLedgerEntry struct {
	ID          uint64     `json:"id"`
	AssetUnitID uint64     `json:"asset_unit_id"`
	ChangeType  ChangeType `json:"change_type"`
	Detail      string     `json:"detail"`
	Timestamp   time.Time  `json:"timestamp"`

	// Referencia opcional al registro del caso de uso que originó la entrada.
	AssignmentID      null.Uint64 `json:"assignment_id"`
	ReassignmentID    null.Uint64 `json:"reassignment_id"`
	ReturnID          null.Uint64 `json:"return_id"`
	DisposalID        null.Uint64 `json:"disposal_id"`
	ConditionChangeID null.Uint64 `json:"condition_change_id"`
	DepreciationID    null.Uint64 `json:"depreciation_id"`
}
