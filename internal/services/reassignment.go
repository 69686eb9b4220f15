package services

import (
	"context"
	"fmt"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/internal/lifecycle"
	"asset-system/internal/repositories"
	"asset-system/pkg/clock"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReassignmentServiceInterface interface {
	CreateReassignment(ctx context.Context, payload dto.CreateReassignmentDTO) (uint64, error)
}

type ReassignmentService struct {
	txManager        repositories.TxManagerInterface
	reassignmentRepo repositories.ReassignmentRepositoryInterface
	unitRepo         repositories.AssetUnitRepositoryInterface
	personnelRepo    repositories.PersonnelRepositoryInterface
	ledgerRepo       repositories.LedgerRepositoryInterface
	bus              *eventbus.Bus
	clock            clock.Clock
	logger           *zap.Logger
}

func NewReassignmentService(
	txManager repositories.TxManagerInterface,
	reassignmentRepo repositories.ReassignmentRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	personnelRepo repositories.PersonnelRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) ReassignmentServiceInterface {
	return &ReassignmentService{
		txManager:        txManager,
		reassignmentRepo: reassignmentRepo,
		unitRepo:         unitRepo,
		personnelRepo:    personnelRepo,
		ledgerRepo:       ledgerRepo,
		bus:              bus,
		clock:            clk,
		logger:           logger,
	}
}

// CreateReassignment traspasa una unidad asignada a otro personal sin pasar
// por una devolución intermedia. El registro guarda el portador anterior y el
// nuevo para el seguimiento.
func (s *ReassignmentService) CreateReassignment(ctx context.Context, payload dto.CreateReassignmentDTO) (uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	newPerson, err := s.personnelRepo.FindByID(ctx, payload.NewPersonnelID)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("el personal %d no existe", payload.NewPersonnelID)
	}
	if !newPerson.Active {
		return 0, apperrors.NewInvalidInputError("el personal %d no está activo", payload.NewPersonnelID)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}

	now := s.clock.Now()
	var entry entities.LifecycleLedgerEntry
	var unit *entities.AssetUnit
	var reassignment *entities.Reassignment
	var reassignmentID uint64

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		unit, err = s.unitRepo.FindForUpdateInTx(ctx, tx, payload.AssetUnitID)
		if err != nil {
			return err
		}
		if err := lifecycle.CanReassign(unit); err != nil {
			return err
		}
		if unit.CurrentHolderID.Valid && unit.CurrentHolderID.Uint64 == payload.NewPersonnelID {
			return apperrors.NewInvalidInputError("la unidad %d ya está asignada al personal %d", unit.ID, payload.NewPersonnelID)
		}

		reassignment = &entities.Reassignment{
			AssetUnitID:         unit.ID,
			PreviousUserID:      userID,
			NewUserID:           userID,
			PreviousPersonnelID: unit.CurrentHolderID.Uint64,
			NewPersonnelID:      payload.NewPersonnelID,
			Date:                date,
			Detail:              payload.Detail,
			ApprovalDoc:         null.StringFromPtr(payload.ApprovalDoc),
		}
		reassignmentID, err = s.reassignmentRepo.CreateInTx(ctx, tx, reassignment)
		if err != nil {
			return err
		}
		reassignment.ID = reassignmentID

		err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
			true, entities.StockReassigned, null.Uint64From(payload.NewPersonnelID))
		if err != nil {
			return err
		}

		entry = entities.LifecycleLedgerEntry{
			AssetUnitID:    unit.ID,
			ChangeType:     entities.ChangeReassignment,
			Detail:         fmt.Sprintf("Unidad %s reasignada a %s", unit.Code, newPerson.Name),
			Timestamp:      now,
			ReassignmentID: null.Uint64From(reassignmentID),
		}
		entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
		if err != nil {
			return err
		}
		entry.ID = entryID
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo crear la reasignación", zap.Error(err))
		return 0, err
	}

	publishLedgerEvent(ctx, s.bus, entry, unit, userID)
	if s.bus != nil {
		s.bus.Publish(ctx, events.ReassignmentCreatedEvent{
			Reassignment: reassignment,
			Unit:         unit,
			NewPersonnel: newPerson,
			ActorID:      userID,
		})
	}
	s.logger.Info("reasignación registrada",
		zap.Uint64("reassignmentID", reassignmentID),
		zap.Uint64("assetUnitID", payload.AssetUnitID),
		zap.Uint64("newPersonnelID", payload.NewPersonnelID),
	)
	return reassignmentID, nil
}
