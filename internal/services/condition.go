package services

import (
	"context"
	"fmt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/lifecycle"
	"asset-system/internal/repositories"
	"asset-system/pkg/clock"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConditionServiceInterface interface {
	ChangeCondition(ctx context.Context, assetUnitID uint64, payload dto.ChangeConditionDTO) error
	GetConditionHistory(ctx context.Context, assetUnitID uint64) ([]*entities.ConditionChange, error)
}

type ConditionService struct {
	txManager     repositories.TxManagerInterface
	unitRepo      repositories.AssetUnitRepositoryInterface
	conditionRepo repositories.ConditionChangeRepositoryInterface
	ledgerRepo    repositories.LedgerRepositoryInterface
	bus           *eventbus.Bus
	clock         clock.Clock
	logger        *zap.Logger
}

func NewConditionService(
	txManager repositories.TxManagerInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	conditionRepo repositories.ConditionChangeRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) ConditionServiceInterface {
	return &ConditionService{
		txManager:     txManager,
		unitRepo:      unitRepo,
		conditionRepo: conditionRepo,
		ledgerRepo:    ledgerRepo,
		bus:           bus,
		clock:         clk,
		logger:        logger,
	}
}

// ChangeCondition degrada el estado físico de una unidad según las reglas de
// transición. El cambio, su registro y la entrada del ledger van en la misma
// transacción.
func (s *ConditionService) ChangeCondition(ctx context.Context, assetUnitID uint64, payload dto.ChangeConditionDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	newCondition := entities.PhysicalCondition(payload.NewCondition)
	now := s.clock.Now()

	var unit *entities.AssetUnit
	var entry entities.LifecycleLedgerEntry

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		unit, err = s.unitRepo.FindForUpdateInTx(ctx, tx, assetUnitID)
		if err != nil {
			return err
		}
		if err := lifecycle.ValidatePhysicalTransition(unit, newCondition); err != nil {
			return err
		}

		change := &entities.ConditionChange{
			AssetUnitID:       unit.ID,
			PreviousCondition: unit.PhysicalState,
			NewCondition:      newCondition,
			Reason:            payload.Reason,
			ChangedAt:         now,
		}
		changeID, err := s.conditionRepo.CreateInTx(ctx, tx, change)
		if err != nil {
			return err
		}

		if err := s.unitRepo.UpdatePhysicalStateInTx(ctx, tx, unit.ID, newCondition); err != nil {
			return err
		}

		entry = entities.LifecycleLedgerEntry{
			AssetUnitID:       unit.ID,
			ChangeType:        entities.ChangeCondition,
			Detail:            fmt.Sprintf("Estado físico de %s: %s a %s (%s)", unit.Code, unit.PhysicalState, newCondition, payload.Reason),
			Timestamp:         now,
			ConditionChangeID: null.Uint64From(changeID),
		}
		entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
		if err != nil {
			return err
		}
		entry.ID = entryID
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo cambiar el estado físico", zap.Error(err), zap.Uint64("assetUnitID", assetUnitID))
		return err
	}

	publishLedgerEvent(ctx, s.bus, entry, unit, userID)
	s.logger.Info("estado físico actualizado",
		zap.Uint64("assetUnitID", assetUnitID),
		zap.String("nuevo", payload.NewCondition),
	)
	return nil
}

func (s *ConditionService) GetConditionHistory(ctx context.Context, assetUnitID uint64) ([]*entities.ConditionChange, error) {
	if _, err := s.unitRepo.FindByID(ctx, assetUnitID); err != nil {
		return nil, err
	}
	return s.conditionRepo.ListByUnit(ctx, assetUnitID)
}
