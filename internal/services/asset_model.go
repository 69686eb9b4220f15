package services

import (
	"context"
	"fmt"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/internal/repositories"
	"asset-system/pkg/clock"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AssetModelServiceInterface interface {
	CreateAssetModel(ctx context.Context, payload dto.CreateAssetModelDTO) (*dto.AssetModelDTO, error)
	FindAssetModel(ctx context.Context, id uint64) (*dto.AssetModelDTO, error)
	GetAssetModels(ctx context.Context, limit, offset uint64) ([]dto.AssetModelDTO, uint64, error)
	DeleteAssetModel(ctx context.Context, id uint64) error
}

type AssetModelService struct {
	txManager   repositories.TxManagerInterface
	modelRepo   repositories.AssetModelRepositoryInterface
	unitRepo    repositories.AssetUnitRepositoryInterface
	ledgerRepo  repositories.LedgerRepositoryInterface
	partidaRepo repositories.PartidaRepositoryInterface
	bus         *eventbus.Bus
	clock       clock.Clock
	logger      *zap.Logger
}

func NewAssetModelService(
	txManager repositories.TxManagerInterface,
	modelRepo repositories.AssetModelRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	partidaRepo repositories.PartidaRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) AssetModelServiceInterface {
	return &AssetModelService{
		txManager:   txManager,
		modelRepo:   modelRepo,
		unitRepo:    unitRepo,
		ledgerRepo:  ledgerRepo,
		partidaRepo: partidaRepo,
		bus:         bus,
		clock:       clk,
		logger:      logger,
	}
}

// CreateAssetModel registra el modelo y recorta sus N unidades físicas, cada
// una con su entrada CREACION en el ledger. Todo ocurre en una transacción:
// o quedan el modelo, las unidades y el historial, o no queda nada.
func (s *AssetModelService) CreateAssetModel(ctx context.Context, payload dto.CreateAssetModelDTO) (*dto.AssetModelDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	partida, err := s.partidaRepo.FindByID(ctx, payload.PartidaID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("la partida %d no existe", payload.PartidaID)
	}

	entryDate, err := time.Parse("2006-01-02", payload.EntryDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha de ingreso inválida: %s", payload.EntryDate)
	}

	condition := entities.PhysicalCondition(payload.Condition)
	if !condition.Valid() {
		return nil, apperrors.NewInvalidInputError("estado físico desconocido: %s", payload.Condition)
	}
	if payload.Cost.IsNegative() {
		return nil, apperrors.NewInvalidInputError("el costo no puede ser negativo")
	}

	model := &entities.AssetModel{
		PartidaID:     payload.PartidaID,
		Name:          payload.Name,
		Description:   payload.Description,
		EntryDate:     entryDate,
		Cost:          payload.Cost,
		PreviousCode:  null.StringFromPtr(payload.PreviousCode),
		PurchaseOrder: null.StringFromPtr(payload.PurchaseOrder),
		Quantity:      payload.Quantity,
		AvailableQty:  payload.Quantity,
		CreatedBy:     fmt.Sprintf("%d", userID),
	}

	now := s.clock.Now()
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		seq, err := s.modelRepo.NextSequenceByPartidaInTx(ctx, tx, payload.PartidaID)
		if err != nil {
			return err
		}
		model.Code = fmt.Sprintf("AF-%d-%04d", payload.PartidaID, seq)

		modelID, err := s.modelRepo.CreateInTx(ctx, tx, model)
		if err != nil {
			return err
		}
		model.ID = modelID

		for i := 1; i <= payload.Quantity; i++ {
			unit := &entities.AssetUnit{
				AssetModelID:   modelID,
				Code:           fmt.Sprintf("%s-%d", model.Code, i),
				Assigned:       false,
				StockCondition: entities.StockRegistered,
				PhysicalState:  condition,
				CurrentCost:    payload.Cost,
			}
			unitID, err := s.unitRepo.CreateInTx(ctx, tx, unit)
			if err != nil {
				return err
			}

			_, err = s.ledgerRepo.AppendInTx(ctx, tx, &entities.LifecycleLedgerEntry{
				AssetUnitID: unitID,
				ChangeType:  entities.ChangeCreation,
				Detail:      fmt.Sprintf("Unidad registrada con código %s (partida %s)", unit.Code, partida.Name),
				Timestamp:   now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo registrar el modelo de activo", zap.Error(err))
		return nil, err
	}

	s.logger.Info("modelo de activo registrado",
		zap.Uint64("modelID", model.ID),
		zap.String("code", model.Code),
		zap.Int("unidades", payload.Quantity),
	)
	return assetModelToDTO(model), nil
}

func (s *AssetModelService) FindAssetModel(ctx context.Context, id uint64) (*dto.AssetModelDTO, error) {
	model, err := s.modelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return assetModelToDTO(model), nil
}

func (s *AssetModelService) GetAssetModels(ctx context.Context, limit, offset uint64) ([]dto.AssetModelDTO, uint64, error) {
	models, total, err := s.modelRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AssetModelDTO, 0, len(models))
	for _, m := range models {
		result = append(result, *assetModelToDTO(m))
	}
	return result, total, nil
}

// DeleteAssetModel elimina el modelo y sus unidades solo si ninguna está
// asignada.
func (s *AssetModelService) DeleteAssetModel(ctx context.Context, id uint64) error {
	assigned, err := s.unitRepo.CountAssignedByModel(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return apperrors.NewInvalidInputError("el modelo %d tiene %d unidades asignadas, no se puede eliminar", id, assigned)
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.unitRepo.DeleteByModelInTx(ctx, tx, id); err != nil {
			return err
		}
		return s.modelRepo.DeleteInTx(ctx, tx, id)
	})
}

func assetModelToDTO(m *entities.AssetModel) *dto.AssetModelDTO {
	out := &dto.AssetModelDTO{
		ID:            m.ID,
		PartidaID:     m.PartidaID,
		Name:          m.Name,
		Description:   m.Description,
		EntryDate:     m.EntryDate.Format("2006-01-02"),
		Cost:          m.Cost,
		Code:          m.Code,
		PreviousCode:  m.PreviousCode.Ptr(),
		PurchaseOrder: m.PurchaseOrder.Ptr(),
		Quantity:      m.Quantity,
		AvailableQty:  m.AvailableQty,
	}
	if m.CreatedAt != nil {
		out.CreatedAt = m.CreatedAt.Format(time.RFC3339)
	}
	if m.UpdatedAt != nil {
		out.UpdatedAt = m.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

// publishLedgerEvent publica el evento de ledger después de confirmar la
// transacción. Compartido por los casos de uso del ciclo de vida.
func publishLedgerEvent(ctx context.Context, bus *eventbus.Bus, entry entities.LifecycleLedgerEntry, unit *entities.AssetUnit, actorID uint64) {
	if bus == nil {
		return
	}
	bus.Publish(ctx, events.LedgerEntryCreatedEvent{
		Entry:   entry,
		Unit:    unit,
		ActorID: actorID,
	})
}
