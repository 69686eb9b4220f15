package services

import (
	"testing"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/clock"
	"asset-system/pkg/config"
	"asset-system/pkg/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type depreciationFixture struct {
	svc      DepreciationServiceInterface
	unitRepo *fakeUnitRepo
	depRepo  *fakeDepreciationRepo
	ledger   *fakeLedgerRepo
	cache    *fakeCacheRepo
}

func newDepreciationFixture(partida *entities.Partida, models []*entities.AssetModel, units []*entities.AssetUnit) *depreciationFixture {
	f := &depreciationFixture{
		unitRepo: newFakeUnitRepo(units...),
		depRepo:  newFakeDepreciationRepo(),
		ledger:   &fakeLedgerRepo{},
		cache:    newFakeCacheRepo(),
	}
	fixed := clock.Fixed{Instant: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	cfg := config.DepreciationConfig{PartidaRateTTL: time.Minute, BatchChunkSize: 2}

	f.svc = NewDepreciationService(&fakeTxManager{}, f.depRepo, f.unitRepo,
		newFakeModelRepo(models...), newFakePartidaRepo(partida), f.ledger, f.cache,
		cfg, nil, fixed, testLogger())
	return f
}

func computersPartida() *entities.Partida {
	return &entities.Partida{
		ID:             1,
		Name:           "Equipos de Computación",
		UsefulLife:     4,
		RatePercentage: decimal.NewFromInt(25),
	}
}

func laptopModel(entryDate time.Time) *entities.AssetModel {
	return &entities.AssetModel{
		ID:        1,
		PartidaID: 1,
		Name:      "Laptop Dell Latitude",
		EntryDate: entryDate,
		Cost:      decimal.NewFromInt(1000),
	}
}

func TestCreateDepreciation_StraightLine(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.CreateDepreciation(ctx, dto.CreateDepreciationDTO{
		AssetUnitID: 1,
		Date:        "2026-03-10",
		Method:      string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03", result.Period)

	// Un año de vida a 25% anual sobre 1000 ronda los 250.
	assert.InDelta(t, 250, result.Value.InexactFloat64(), 1.0)
	assert.True(t, result.NetValue.Add(result.Value).Equal(decimal.NewFromInt(1000)),
		"neto + depreciado debe dar el costo original")

	unit, err := f.unitRepo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, unit.CurrentCost.Equal(result.NetValue))

	assert.Len(t, f.ledger.byType(entities.ChangeDepreciation), 1)
	_, cached := f.cache.values["partida:rate:1"]
	assert.True(t, cached, "la tasa de la partida debe quedar cacheada")
}

func TestCreateDepreciation_SamePeriodUpdatesInsteadOfDuplicating(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	first, err := f.svc.CreateDepreciation(ctx, dto.CreateDepreciationDTO{
		AssetUnitID: 1, Date: "2026-03-05", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)

	second, err := f.svc.CreateDepreciation(ctx, dto.CreateDepreciationDTO{
		AssetUnitID: 1, Date: "2026-03-20", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el mismo período reusa la fila")

	rows, err := f.depRepo.ListByUnit(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// El ledger registra solo la primera liquidación del período.
	assert.Len(t, f.ledger.byType(entities.ChangeDepreciation), 1)

	// La fecha posterior acumula más depreciación.
	assert.True(t, second.Value.GreaterThan(first.Value))
}

func TestCreateDepreciation_NetValueFlooredAtZero(t *testing.T) {
	entry := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.CreateDepreciation(ctx, dto.CreateDepreciationDTO{
		AssetUnitID: 1, Date: "2026-03-10", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.True(t, result.NetValue.IsZero(), "el neto no baja de cero")
	assert.True(t, result.Value.Equal(decimal.NewFromInt(1000)),
		"lo depreciado se corta en el costo original")

	unit, err := f.unitRepo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, unit.CurrentCost.IsZero())
}

func TestCreateDepreciation_DecliningBalanceKeepsNetPositive(t *testing.T) {
	entry := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.CreateDepreciation(ctx, dto.CreateDepreciationDTO{
		AssetUnitID: 1, Date: "2026-03-10", Method: string(entities.MethodDecliningBalance),
	})
	require.NoError(t, err)
	// El saldo decreciente nunca llega a cero por sí solo.
	assert.True(t, result.NetValue.GreaterThan(decimal.Zero))
	assert.True(t, result.Value.LessThan(decimal.NewFromInt(1000)))
}

func TestRunBatch_SkipsDisposedUnitsAndKeepsGoing(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	disposed := availableUnit(3)
	disposed.StockCondition = entities.StockDisposed

	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1), availableUnit(2), disposed})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.RunBatch(ctx, dto.BatchDepreciationDTO{
		Date: "2026-03-10", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	// ListIDsForDepreciation ya excluye las bajas, así que nada queda omitido.
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Failed)
}

func TestRunBatch_CollectsFailuresWithoutAborting(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	orphan := availableUnit(2)
	orphan.AssetModelID = 99 // modelo inexistente

	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1), orphan})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.RunBatch(ctx, dto.BatchDepreciationDTO{
		Date: "2026-03-10", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, uint64(2), result.Failed[0].AssetUnitID)
}

func TestRunBatch_MissingPartidaRateIsSkipped(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	partida := computersPartida()
	partida.RatePercentage = decimal.Zero

	f := newDepreciationFixture(partida,
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.RunBatch(ctx, dto.BatchDepreciationDTO{
		Date: "2026-03-10", Method: string(entities.MethodStraightLine),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Failed)
}

func TestRunAnnual_UsesYearPeriodAndStraightLine(t *testing.T) {
	entry := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f := newDepreciationFixture(computersPartida(),
		[]*entities.AssetModel{laptopModel(entry)},
		[]*entities.AssetUnit{availableUnit(1)})
	ctx := testCtx(1, constants.RoleAdministrator)

	result, err := f.svc.RunAnnual(ctx, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	rows, err := f.depRepo.ListByPeriod(ctx, "2026")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entities.MethodStraightLine, rows[0].Method)

	// Repetir la corrida en el mismo año no duplica filas.
	_, err = f.svc.RunAnnual(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	rows, err = f.depRepo.ListByPeriod(ctx, "2026")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
