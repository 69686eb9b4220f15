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

type DisposalServiceInterface interface {
	CreateDisposal(ctx context.Context, payload dto.CreateDisposalDTO) (*dto.DisposalDTO, error)
	ResolveDisposal(ctx context.Context, disposalID uint64, approve bool) (*dto.DisposalDTO, error)
	RestoreDisposal(ctx context.Context, assetUnitID uint64, payload dto.RestoreDisposalDTO) error
	FindDisposal(ctx context.Context, id uint64) (*dto.DisposalDTO, error)
	GetDisposals(ctx context.Context, status string, limit, offset uint64) ([]dto.DisposalDTO, uint64, error)
}

type DisposalService struct {
	txManager    repositories.TxManagerInterface
	disposalRepo repositories.DisposalRepositoryInterface
	unitRepo     repositories.AssetUnitRepositoryInterface
	ledgerRepo   repositories.LedgerRepositoryInterface
	bus          *eventbus.Bus
	clock        clock.Clock
	logger       *zap.Logger
}

func NewDisposalService(
	txManager repositories.TxManagerInterface,
	disposalRepo repositories.DisposalRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) DisposalServiceInterface {
	return &DisposalService{
		txManager:    txManager,
		disposalRepo: disposalRepo,
		unitRepo:     unitRepo,
		ledgerRepo:   ledgerRepo,
		bus:          bus,
		clock:        clk,
		logger:       logger,
	}
}

// CreateDisposal inicia la baja de una unidad. Un Administrador la aprueba en
// el acto; un Encargado deja la solicitud PENDIENTE y la unidad no cambia
// hasta que alguien la resuelva.
func (s *DisposalService) CreateDisposal(ctx context.Context, payload dto.CreateDisposalDTO) (*dto.DisposalDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !role.CanRequestDisposal() {
		return nil, apperrors.ErrForbidden
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}

	immediate := role.CanApproveDisposal()
	now := s.clock.Now()

	var disposal *entities.Disposal
	var unit *entities.AssetUnit
	var entry entities.LifecycleLedgerEntry

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		unit, err = s.unitRepo.FindForUpdateInTx(ctx, tx, payload.AssetUnitID)
		if err != nil {
			return err
		}
		if err := lifecycle.CanDispose(unit); err != nil {
			return err
		}
		if _, err := s.disposalRepo.FindPendingByUnitInTx(ctx, tx, unit.ID); err == nil {
			return fmt.Errorf("%w: la unidad %d ya tiene una baja pendiente", apperrors.ErrConflict, unit.ID)
		}

		disposal = &entities.Disposal{
			AssetUnitID: unit.ID,
			Date:        date,
			Reason:      payload.Reason,
			Status:      entities.DisposalPending,
			RequestedBy: userID,
		}
		if immediate {
			disposal.Status = entities.DisposalApproved
			disposal.ResolvedBy = null.Uint64From(userID)
		}

		disposalID, err := s.disposalRepo.CreateInTx(ctx, tx, disposal)
		if err != nil {
			return err
		}
		disposal.ID = disposalID

		changeType := entities.ChangeDisposalRequest
		detail := fmt.Sprintf("Solicitud de baja de la unidad %s: %s", unit.Code, payload.Reason)
		if immediate {
			changeType = entities.ChangeDisposal
			detail = fmt.Sprintf("Unidad %s dada de baja: %s", unit.Code, payload.Reason)
			err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
				false, entities.StockDisposed, null.Uint64{})
			if err != nil {
				return err
			}
		}

		entry = entities.LifecycleLedgerEntry{
			AssetUnitID: unit.ID,
			ChangeType:  changeType,
			Detail:      detail,
			Timestamp:   now,
			DisposalID:  null.Uint64From(disposalID),
		}
		entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
		if err != nil {
			return err
		}
		entry.ID = entryID
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo crear la baja", zap.Error(err))
		return nil, err
	}

	publishLedgerEvent(ctx, s.bus, entry, unit, userID)
	if !immediate && s.bus != nil {
		s.bus.Publish(ctx, events.DisposalRequestedEvent{Disposal: disposal, Unit: unit, ActorID: userID})
	}

	s.logger.Info("baja registrada",
		zap.Uint64("disposalID", disposal.ID),
		zap.Uint64("assetUnitID", payload.AssetUnitID),
		zap.String("status", string(disposal.Status)),
	)
	return disposalToDTO(disposal), nil
}

// ResolveDisposal aprueba o rechaza una baja pendiente. Solo un Administrador
// resuelve, y solo las bajas en estado PENDIENTE admiten resolución.
func (s *DisposalService) ResolveDisposal(ctx context.Context, disposalID uint64, approve bool) (*dto.DisposalDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !role.CanApproveDisposal() {
		return nil, apperrors.ErrForbidden
	}

	now := s.clock.Now()
	var disposal *entities.Disposal
	var unit *entities.AssetUnit
	var entry entities.LifecycleLedgerEntry

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		disposal, err = s.disposalRepo.FindForUpdateInTx(ctx, tx, disposalID)
		if err != nil {
			return err
		}
		if disposal.Status != entities.DisposalPending {
			return apperrors.NewInvalidInputError("la baja %d ya fue resuelta (%s)", disposalID, disposal.Status)
		}

		unit, err = s.unitRepo.FindForUpdateInTx(ctx, tx, disposal.AssetUnitID)
		if err != nil {
			return err
		}

		if approve {
			if err := lifecycle.CanDispose(unit); err != nil {
				return err
			}
			disposal.Status = entities.DisposalApproved
			err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
				false, entities.StockDisposed, null.Uint64{})
			if err != nil {
				return err
			}
			entry = entities.LifecycleLedgerEntry{
				AssetUnitID: unit.ID,
				ChangeType:  entities.ChangeDisposal,
				Detail:      fmt.Sprintf("Baja de la unidad %s aprobada", unit.Code),
				Timestamp:   now,
				DisposalID:  null.Uint64From(disposalID),
			}
		} else {
			disposal.Status = entities.DisposalRejected
			entry = entities.LifecycleLedgerEntry{
				AssetUnitID: unit.ID,
				ChangeType:  entities.ChangeDisposalRejected,
				Detail:      fmt.Sprintf("Baja de la unidad %s rechazada", unit.Code),
				Timestamp:   now,
				DisposalID:  null.Uint64From(disposalID),
			}
		}
		disposal.ResolvedBy = null.Uint64From(userID)

		if err := s.disposalRepo.UpdateStatusInTx(ctx, tx, disposalID, disposal.Status, userID); err != nil {
			return err
		}

		entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
		if err != nil {
			return err
		}
		entry.ID = entryID
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo resolver la baja", zap.Error(err), zap.Uint64("disposalID", disposalID))
		return nil, err
	}

	publishLedgerEvent(ctx, s.bus, entry, unit, userID)
	if s.bus != nil {
		s.bus.Publish(ctx, events.DisposalResolvedEvent{Disposal: disposal, Unit: unit, ActorID: userID})
	}

	s.logger.Info("baja resuelta",
		zap.Uint64("disposalID", disposalID),
		zap.String("status", string(disposal.Status)),
	)
	return disposalToDTO(disposal), nil
}

// RestoreDisposal revierte una baja: la unidad vuelve a DISPONIBLE. Solo un
// Administrador puede restaurar.
func (s *DisposalService) RestoreDisposal(ctx context.Context, assetUnitID uint64, payload dto.RestoreDisposalDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return err
	}
	if !role.CanApproveDisposal() {
		return apperrors.ErrForbidden
	}

	now := s.clock.Now()
	var unit *entities.AssetUnit
	var entry entities.LifecycleLedgerEntry

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		unit, err = s.unitRepo.FindForUpdateInTx(ctx, tx, assetUnitID)
		if err != nil {
			return err
		}
		if err := lifecycle.CanRestore(unit); err != nil {
			return err
		}

		err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
			false, entities.StockAvailable, null.Uint64{})
		if err != nil {
			return err
		}

		entry = entities.LifecycleLedgerEntry{
			AssetUnitID: unit.ID,
			ChangeType:  entities.ChangeDisposalRestored,
			Detail:      fmt.Sprintf("Unidad %s restaurada de la baja: %s", unit.Code, payload.Reason),
			Timestamp:   now,
		}
		entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
		if err != nil {
			return err
		}
		entry.ID = entryID
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo restaurar la unidad", zap.Error(err), zap.Uint64("assetUnitID", assetUnitID))
		return err
	}

	publishLedgerEvent(ctx, s.bus, entry, unit, userID)
	s.logger.Info("unidad restaurada de la baja", zap.Uint64("assetUnitID", assetUnitID))
	return nil
}

func (s *DisposalService) FindDisposal(ctx context.Context, id uint64) (*dto.DisposalDTO, error) {
	disposal, err := s.disposalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return disposalToDTO(disposal), nil
}

func (s *DisposalService) GetDisposals(ctx context.Context, status string, limit, offset uint64) ([]dto.DisposalDTO, uint64, error) {
	filter := repositories.DisposalFilter{Limit: limit, Offset: offset}
	if status != "" {
		st := entities.DisposalStatus(status)
		if st != entities.DisposalPending && st != entities.DisposalApproved && st != entities.DisposalRejected {
			return nil, 0, apperrors.NewInvalidInputError("estado de baja desconocido: %s", status)
		}
		filter.Status = st
	}

	disposals, total, err := s.disposalRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.DisposalDTO, 0, len(disposals))
	for _, d := range disposals {
		result = append(result, *disposalToDTO(d))
	}
	return result, total, nil
}

func disposalToDTO(d *entities.Disposal) *dto.DisposalDTO {
	out := &dto.DisposalDTO{
		ID:          d.ID,
		AssetUnitID: d.AssetUnitID,
		Date:        d.Date.Format("2006-01-02"),
		Reason:      d.Reason,
		Status:      string(d.Status),
		RequestedBy: d.RequestedBy,
		ResolvedBy:  d.ResolvedBy.Ptr(),
	}
	if d.CreatedAt != nil {
		out.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	return out
}
