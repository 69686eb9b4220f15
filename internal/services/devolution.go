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

type DevolutionServiceInterface interface {
	CreateDevolution(ctx context.Context, payload dto.CreateDevolutionDTO) ([]uint64, error)
}

type DevolutionService struct {
	txManager      repositories.TxManagerInterface
	devolutionRepo repositories.DevolutionRepositoryInterface
	unitRepo       repositories.AssetUnitRepositoryInterface
	modelRepo      repositories.AssetModelRepositoryInterface
	ledgerRepo     repositories.LedgerRepositoryInterface
	personnelRepo  repositories.PersonnelRepositoryInterface
	bus            *eventbus.Bus
	clock          clock.Clock
	logger         *zap.Logger
}

func NewDevolutionService(
	txManager repositories.TxManagerInterface,
	devolutionRepo repositories.DevolutionRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	modelRepo repositories.AssetModelRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	personnelRepo repositories.PersonnelRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) DevolutionServiceInterface {
	return &DevolutionService{
		txManager:      txManager,
		devolutionRepo: devolutionRepo,
		unitRepo:       unitRepo,
		modelRepo:      modelRepo,
		ledgerRepo:     ledgerRepo,
		personnelRepo:  personnelRepo,
		bus:            bus,
		clock:          clk,
		logger:         logger,
	}
}

// CreateDevolution registra la devolución de un lote de unidades asignadas al
// mismo personal. Primero valida todas las unidades bajo bloqueo y recién
// después muta: si una sola falla, ninguna cambia. Cada unidad vuelve a estar
// disponible y sin portador.
func (s *DevolutionService) CreateDevolution(ctx context.Context, payload dto.CreateDevolutionDTO) ([]uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	person, err := s.personnelRepo.FindByID(ctx, payload.PersonnelID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("el personal %d no existe", payload.PersonnelID)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}

	seen := make(map[uint64]struct{}, len(payload.AssetUnitIDs))
	for _, id := range payload.AssetUnitIDs {
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewInvalidInputError("la unidad %d está repetida en la solicitud", id)
		}
		seen[id] = struct{}{}
	}

	now := s.clock.Now()
	var ledgerEntries []entities.LifecycleLedgerEntry
	var lockedUnits []*entities.AssetUnit
	var devolutionIDs []uint64

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		lockedUnits = lockedUnits[:0]
		for _, unitID := range payload.AssetUnitIDs {
			unit, err := s.unitRepo.FindForUpdateInTx(ctx, tx, unitID)
			if err != nil {
				return err
			}
			if err := lifecycle.CanReturn(unit, payload.PersonnelID); err != nil {
				return err
			}
			lockedUnits = append(lockedUnits, unit)
		}

		for _, unit := range lockedUnits {
			devolution := &entities.Devolution{
				UserID:      userID,
				PersonnelID: payload.PersonnelID,
				AssetUnitID: unit.ID,
				Date:        date,
				Detail:      payload.Detail,
				ActaDoc:     null.StringFromPtr(payload.ActaDoc),
			}
			devolutionID, err := s.devolutionRepo.CreateInTx(ctx, tx, devolution)
			if err != nil {
				return err
			}
			devolutionIDs = append(devolutionIDs, devolutionID)

			err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
				false, entities.StockAvailable, null.Uint64{})
			if err != nil {
				return err
			}

			entry := entities.LifecycleLedgerEntry{
				AssetUnitID: unit.ID,
				ChangeType:  entities.ChangeReturn,
				Detail:      fmt.Sprintf("Unidad %s devuelta por %s", unit.Code, person.Name),
				Timestamp:   now,
				ReturnID:    null.Uint64From(devolutionID),
			}
			entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
			if err != nil {
				return err
			}
			entry.ID = entryID
			ledgerEntries = append(ledgerEntries, entry)

			if err := s.modelRepo.IncrementAvailableInTx(ctx, tx, unit.AssetModelID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo registrar la devolución", zap.Error(err))
		return nil, err
	}

	for i, entry := range ledgerEntries {
		publishLedgerEvent(ctx, s.bus, entry, lockedUnits[i], userID)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.DevolutionCompletedEvent{
			Personnel: person,
			Units:     lockedUnits,
			Detail:    payload.Detail,
			ActorID:   userID,
		})
	}

	s.logger.Info("devolución registrada",
		zap.Uint64("personnelID", payload.PersonnelID),
		zap.Int("unidades", len(devolutionIDs)),
	)
	return devolutionIDs, nil
}
