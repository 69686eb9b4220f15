package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/lifecycle"
	"asset-system/internal/repositories"
	"asset-system/pkg/clock"
	"asset-system/pkg/config"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DepreciationServiceInterface interface {
	CreateDepreciation(ctx context.Context, payload dto.CreateDepreciationDTO) (*dto.DepreciationDTO, error)
	RunBatch(ctx context.Context, payload dto.BatchDepreciationDTO) (*dto.BatchDepreciationResultDTO, error)
	RunAnnual(ctx context.Context, date time.Time) (*dto.BatchDepreciationResultDTO, error)
	GetByUnit(ctx context.Context, assetUnitID uint64) ([]dto.DepreciationDTO, error)
	GetByPeriod(ctx context.Context, period string) ([]dto.DepreciationDTO, error)
}

type DepreciationService struct {
	txManager   repositories.TxManagerInterface
	depRepo     repositories.DepreciationRepositoryInterface
	unitRepo    repositories.AssetUnitRepositoryInterface
	modelRepo   repositories.AssetModelRepositoryInterface
	partidaRepo repositories.PartidaRepositoryInterface
	ledgerRepo  repositories.LedgerRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	cfg         config.DepreciationConfig
	bus         *eventbus.Bus
	clock       clock.Clock
	logger      *zap.Logger
}

func NewDepreciationService(
	txManager repositories.TxManagerInterface,
	depRepo repositories.DepreciationRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	modelRepo repositories.AssetModelRepositoryInterface,
	partidaRepo repositories.PartidaRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg config.DepreciationConfig,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) DepreciationServiceInterface {
	return &DepreciationService{
		txManager:   txManager,
		depRepo:     depRepo,
		unitRepo:    unitRepo,
		modelRepo:   modelRepo,
		partidaRepo: partidaRepo,
		ledgerRepo:  ledgerRepo,
		cacheRepo:   cacheRepo,
		cfg:         cfg,
		bus:         bus,
		clock:       clk,
		logger:      logger,
	}
}

// CreateDepreciation corre la depreciación de una unidad para el período
// mensual de la fecha indicada. Repetir la corrida en el mismo período y con
// el mismo método actualiza la fila existente en lugar de duplicarla.
func (s *DepreciationService) CreateDepreciation(ctx context.Context, payload dto.CreateDepreciationDTO) (*dto.DepreciationDTO, error) {
	if _, err := utils.GetUserIDFromCtx(ctx); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}
	method := entities.DepreciationMethod(payload.Method)
	if !method.Valid() {
		return nil, apperrors.NewInvalidInputError("método de depreciación desconocido: %s", payload.Method)
	}

	period := date.Format("2006-01")
	var dep *entities.Depreciation

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		dep, err = s.depreciateUnitInTx(ctx, tx, payload.AssetUnitID, date, period, method, payload.SpecialCause)
		return err
	})
	if err != nil {
		s.logger.Error("no se pudo correr la depreciación", zap.Error(err), zap.Uint64("assetUnitID", payload.AssetUnitID))
		return nil, err
	}

	return depreciationToDTO(dep), nil
}

// RunBatch corre la depreciación mensual sobre todas las unidades vivas. Cada
// unidad va en su propia transacción: las fallas se acumulan en el resumen y
// no frenan al resto.
func (s *DepreciationService) RunBatch(ctx context.Context, payload dto.BatchDepreciationDTO) (*dto.BatchDepreciationResultDTO, error) {
	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}
	method := entities.DepreciationMethod(payload.Method)
	if !method.Valid() {
		return nil, apperrors.NewInvalidInputError("método de depreciación desconocido: %s", payload.Method)
	}
	return s.run(ctx, date, date.Format("2006-01"), method)
}

// RunAnnual corre la depreciación anual con el método de línea recta. La llama
// el arranque del servidor para cubrir períodos anuales no liquidados.
func (s *DepreciationService) RunAnnual(ctx context.Context, date time.Time) (*dto.BatchDepreciationResultDTO, error) {
	return s.run(ctx, date, date.Format("2006"), entities.MethodStraightLine)
}

func (s *DepreciationService) run(ctx context.Context, date time.Time, period string, method entities.DepreciationMethod) (*dto.BatchDepreciationResultDTO, error) {
	unitIDs, err := s.unitRepo.ListIDsForDepreciation(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.BatchDepreciationResultDTO{}
	chunk := s.cfg.BatchChunkSize
	if chunk <= 0 {
		chunk = 100
	}

	for start := 0; start < len(unitIDs); start += chunk {
		end := start + chunk
		if end > len(unitIDs) {
			end = len(unitIDs)
		}
		for _, unitID := range unitIDs[start:end] {
			err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
				_, err := s.depreciateUnitInTx(ctx, tx, unitID, date, period, method, nil)
				return err
			})
			switch {
			case err == nil:
				result.Processed++
			case errors.Is(err, apperrors.ErrBadRequest):
				result.Skipped++
			default:
				result.Failed = append(result.Failed, dto.BatchDepreciationFail{
					AssetUnitID: unitID,
					Error:       err.Error(),
				})
			}
		}
	}

	s.logger.Info("corrida de depreciación terminada",
		zap.String("period", period),
		zap.String("method", string(method)),
		zap.Int("procesadas", result.Processed),
		zap.Int("omitidas", result.Skipped),
		zap.Int("fallidas", len(result.Failed)),
	)
	return result, nil
}

// depreciateUnitInTx hace el trabajo real bajo bloqueo de la unidad. Devuelve
// la fila creada o actualizada.
func (s *DepreciationService) depreciateUnitInTx(ctx context.Context, tx pgx.Tx, unitID uint64, date time.Time, period string, method entities.DepreciationMethod, specialCause *string) (*entities.Depreciation, error) {
	unit, err := s.unitRepo.FindForUpdateInTx(ctx, tx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.StockCondition == entities.StockDisposed {
		return nil, apperrors.NewAssetDisposedError(unit.ID)
	}

	model, err := s.modelRepo.FindByID(ctx, unit.AssetModelID)
	if err != nil {
		return nil, err
	}
	rate, err := s.partidaRate(ctx, model.PartidaID)
	if err != nil {
		return nil, err
	}

	calc, err := lifecycle.Depreciate(lifecycle.DepreciationInput{
		OriginalCost: model.Cost,
		RatePercent:  rate,
		Method:       method,
		PeriodStart:  model.EntryDate,
		PeriodEnd:    date,
	})
	if err != nil {
		return nil, err
	}

	// El valor neto nunca baja de cero: el activo se deprecia a lo sumo
	// hasta su costo original.
	value, netValue := calc.Value, calc.NetValue
	if netValue.IsNegative() {
		value = model.Cost
		netValue = decimal.Zero
	}

	existing, err := s.depRepo.FindByUnitPeriodMethodInTx(ctx, tx, unit.ID, period, method)
	if err == nil {
		if err := s.depRepo.UpdateValuesInTx(ctx, tx, existing.ID, value, netValue); err != nil {
			return nil, err
		}
		if err := s.unitRepo.UpdateCostInTx(ctx, tx, unit.ID, netValue); err != nil {
			return nil, err
		}
		existing.Value = value
		existing.NetValue = netValue
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	dep := &entities.Depreciation{
		AssetUnitID:  unit.ID,
		Date:         date,
		Value:        value,
		NetValue:     netValue,
		Period:       period,
		Method:       method,
		SpecialCause: null.StringFromPtr(specialCause),
	}
	depID, err := s.depRepo.CreateInTx(ctx, tx, dep)
	if err != nil {
		return nil, err
	}
	dep.ID = depID

	if err := s.unitRepo.UpdateCostInTx(ctx, tx, unit.ID, netValue); err != nil {
		return nil, err
	}

	_, err = s.ledgerRepo.AppendInTx(ctx, tx, &entities.LifecycleLedgerEntry{
		AssetUnitID:    unit.ID,
		ChangeType:     entities.ChangeDepreciation,
		Detail:         fmt.Sprintf("Depreciación %s del período %s: valor %s, neto %s", method, period, value.StringFixed(2), netValue.StringFixed(2)),
		Timestamp:      s.clock.Now(),
		DepreciationID: null.Uint64From(depID),
	})
	if err != nil {
		return nil, err
	}
	return dep, nil
}

// partidaRate resuelve la tasa de la partida pasando primero por el cache.
func (s *DepreciationService) partidaRate(ctx context.Context, partidaID uint64) (decimal.Decimal, error) {
	key := fmt.Sprintf("partida:rate:%d", partidaID)

	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
			if rate, err := decimal.NewFromString(cached); err == nil {
				return rate, nil
			}
		}
	}

	partida, err := s.partidaRepo.FindByID(ctx, partidaID)
	if err != nil {
		return decimal.Zero, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(ctx, key, partida.RatePercentage.String(), s.cfg.PartidaRateTTL); err != nil {
			s.logger.Warn("no se pudo cachear la tasa de la partida", zap.Error(err), zap.Uint64("partidaID", partidaID))
		}
	}
	return partida.RatePercentage, nil
}

func (s *DepreciationService) GetByUnit(ctx context.Context, assetUnitID uint64) ([]dto.DepreciationDTO, error) {
	deps, err := s.depRepo.ListByUnit(ctx, assetUnitID)
	if err != nil {
		return nil, err
	}
	return depreciationsToDTO(deps), nil
}

func (s *DepreciationService) GetByPeriod(ctx context.Context, period string) ([]dto.DepreciationDTO, error) {
	deps, err := s.depRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	return depreciationsToDTO(deps), nil
}

func depreciationToDTO(d *entities.Depreciation) *dto.DepreciationDTO {
	return &dto.DepreciationDTO{
		ID:           d.ID,
		AssetUnitID:  d.AssetUnitID,
		Date:         d.Date.Format("2006-01-02"),
		Value:        d.Value,
		NetValue:     d.NetValue,
		Period:       d.Period,
		Method:       string(d.Method),
		SpecialCause: d.SpecialCause.Ptr(),
	}
}

func depreciationsToDTO(deps []*entities.Depreciation) []dto.DepreciationDTO {
	result := make([]dto.DepreciationDTO, 0, len(deps))
	for _, d := range deps {
		result = append(result, *depreciationToDTO(d))
	}
	return result
}
