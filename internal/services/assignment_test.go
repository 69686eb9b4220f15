package services

import (
	"sync"
	"testing"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/clock"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableUnit(id uint64) *entities.AssetUnit {
	return &entities.AssetUnit{
		ID:             id,
		AssetModelID:   1,
		Code:           "AF-1-0001-1",
		StockCondition: entities.StockAvailable,
		PhysicalState:  entities.PhysicalGood,
		CurrentCost:    decimal.NewFromInt(1000),
	}
}

func newAssignmentFixture(units ...*entities.AssetUnit) (AssignmentServiceInterface, *fakeUnitRepo, *fakeLedgerRepo, *fakeModelRepo) {
	unitRepo := newFakeUnitRepo(units...)
	ledgerRepo := &fakeLedgerRepo{}
	modelRepo := newFakeModelRepo(&entities.AssetModel{ID: 1, PartidaID: 1, AvailableQty: len(units)})
	personnelRepo := newFakePersonnelRepo(&entities.Personnel{ID: 7, Name: "María Flores", Active: true})
	fixed := clock.Fixed{Instant: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}

	svc := NewAssignmentService(&fakeTxManager{}, newFakeAssignmentRepo(), unitRepo, modelRepo,
		ledgerRepo, personnelRepo, nil, fixed, testLogger())
	return svc, unitRepo, ledgerRepo, modelRepo
}

func TestCreateAssignment_MultipleUnits(t *testing.T) {
	svc, unitRepo, ledgerRepo, modelRepo := newAssignmentFixture(
		availableUnit(1), availableUnit(2), availableUnit(3))
	ctx := testCtx(1, constants.RoleManager)

	result, err := svc.CreateAssignment(ctx, dto.CreateAssignmentDTO{
		PersonnelID:  7,
		AssetUnitIDs: []uint64{1, 2},
		Date:         "2026-03-10",
		Detail:       "Entrega de equipos nuevos",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2}, result.AssetUnitIDs)

	for _, id := range []uint64{1, 2} {
		unit, err := unitRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, unit.Assigned)
		assert.Equal(t, entities.StockAssigned, unit.StockCondition)
		assert.Equal(t, null.Uint64From(7), unit.CurrentHolderID)
	}

	unit, err := unitRepo.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.False(t, unit.Assigned, "la unidad no pedida no debe cambiar")

	assert.Len(t, ledgerRepo.byType(entities.ChangeAssignment), 2)

	model, err := modelRepo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, model.AvailableQty)
}

func TestCreateAssignment_OneBadUnitRollsNothingForward(t *testing.T) {
	assigned := availableUnit(2)
	assigned.Assigned = true
	assigned.StockCondition = entities.StockAssigned
	assigned.CurrentHolderID = null.Uint64From(9)

	svc, unitRepo, ledgerRepo, _ := newAssignmentFixture(availableUnit(1), assigned)
	ctx := testCtx(1, constants.RoleManager)

	_, err := svc.CreateAssignment(ctx, dto.CreateAssignmentDTO{
		PersonnelID:  7,
		AssetUnitIDs: []uint64{1, 2},
		Date:         "2026-03-10",
		Detail:       "Entrega parcial",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// La unidad sana tampoco debe haber cambiado.
	unit, findErr := unitRepo.FindByID(ctx, 1)
	require.NoError(t, findErr)
	assert.False(t, unit.Assigned)
	assert.Equal(t, entities.StockAvailable, unit.StockCondition)
	assert.Empty(t, ledgerRepo.entries)
}

func TestCreateAssignment_RejectsDuplicateUnitIDs(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture(availableUnit(1))
	ctx := testCtx(1, constants.RoleManager)

	_, err := svc.CreateAssignment(ctx, dto.CreateAssignmentDTO{
		PersonnelID:  7,
		AssetUnitIDs: []uint64{1, 1},
		Date:         "2026-03-10",
		Detail:       "Duplicado",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateAssignment_RejectsInactivePersonnel(t *testing.T) {
	unitRepo := newFakeUnitRepo(availableUnit(1))
	personnelRepo := newFakePersonnelRepo(&entities.Personnel{ID: 7, Name: "Jorge Mamani", Active: false})
	svc := NewAssignmentService(&fakeTxManager{}, newFakeAssignmentRepo(), unitRepo,
		newFakeModelRepo(&entities.AssetModel{ID: 1}), &fakeLedgerRepo{}, personnelRepo,
		nil, clock.Fixed{Instant: time.Now()}, testLogger())

	_, err := svc.CreateAssignment(testCtx(1, constants.RoleManager), dto.CreateAssignmentDTO{
		PersonnelID:  7,
		AssetUnitIDs: []uint64{1},
		Date:         "2026-03-10",
		Detail:       "Entrega",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateAssignment_ConcurrentRequestsAtMostOneWinner(t *testing.T) {
	svc, unitRepo, ledgerRepo, _ := newAssignmentFixture(availableUnit(1))
	ctx := testCtx(1, constants.RoleManager)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateAssignment(ctx, dto.CreateAssignmentDTO{
				PersonnelID:  7,
				AssetUnitIDs: []uint64{1},
				Date:         "2026-03-10",
				Detail:       "Carrera",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactamente una solicitud debe ganar la unidad")

	unit, err := unitRepo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, unit.Assigned)
	assert.Len(t, ledgerRepo.byType(entities.ChangeAssignment), 1)
}
