package events

import (
	"asset-system/internal/entities"
)

// LedgerEntryCreatedEvent se publica despues de confirmar la transaccion
// que agrego una entrada al historial de vida util.
type LedgerEntryCreatedEvent struct {
	Entry   entities.LifecycleLedgerEntry
	Unit    *entities.AssetUnit
	ActorID uint64
}

func (e LedgerEntryCreatedEvent) Name() string {
	return "asset.ledger.entry.created"
}

// DisposalRequestedEvent notifica a los administradores que hay una baja pendiente.
type DisposalRequestedEvent struct {
	Disposal *entities.Disposal
	Unit     *entities.AssetUnit
	ActorID  uint64
}

func (e DisposalRequestedEvent) Name() string {
	return "asset.disposal.requested"
}

// DisposalResolvedEvent se publica cuando una baja pendiente fue aprobada o rechazada.
type DisposalResolvedEvent struct {
	Disposal *entities.Disposal
	Unit     *entities.AssetUnit
	ActorID  uint64
}

func (e DisposalResolvedEvent) Name() string {
	return "asset.disposal.resolved"
}

// AssignmentCreatedEvent avisa al personal receptor que tiene unidades nuevas
// a su nombre.
type AssignmentCreatedEvent struct {
	Assignment *entities.Assignment
	Units      []*entities.AssetUnit
	Personnel  *entities.Personnel
	ActorID    uint64
}

func (e AssignmentCreatedEvent) Name() string {
	return "asset.assignment.created"
}

// ReassignmentCreatedEvent avisa al nuevo portador de una unidad traspasada.
type ReassignmentCreatedEvent struct {
	Reassignment *entities.Reassignment
	Unit         *entities.AssetUnit
	NewPersonnel *entities.Personnel
	ActorID      uint64
}

func (e ReassignmentCreatedEvent) Name() string {
	return "asset.reassignment.created"
}

// DevolutionCompletedEvent lleva el lote completo de unidades devueltas en una
// sola llamada, para el correo con el listado.
type DevolutionCompletedEvent struct {
	Personnel *entities.Personnel
	Units     []*entities.AssetUnit
	Detail    string
	ActorID   uint64
}

func (e DevolutionCompletedEvent) Name() string {
	return "asset.devolution.completed"
}
