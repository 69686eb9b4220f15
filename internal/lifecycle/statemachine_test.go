package lifecycle

import (
	"errors"
	"testing"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitInState(stock entities.StockCondition, physical entities.PhysicalCondition) *entities.AssetUnit {
	return &entities.AssetUnit{
		ID:             1,
		Code:           "EQ-001-1",
		StockCondition: stock,
		PhysicalState:  physical,
	}
}

func TestValidatePhysicalTransition_Table(t *testing.T) {
	cases := []struct {
		name    string
		from    entities.PhysicalCondition
		to      entities.PhysicalCondition
		allowed bool
	}{
		{"nuevo a bueno", entities.PhysicalNew, entities.PhysicalGood, true},
		{"nuevo a regular", entities.PhysicalNew, entities.PhysicalFair, true},
		{"nuevo a malo", entities.PhysicalNew, entities.PhysicalPoor, true},
		{"bueno a regular", entities.PhysicalGood, entities.PhysicalFair, true},
		{"bueno a malo", entities.PhysicalGood, entities.PhysicalPoor, true},
		{"regular a malo", entities.PhysicalFair, entities.PhysicalPoor, true},
		{"bueno a nuevo", entities.PhysicalGood, entities.PhysicalNew, false},
		{"regular a bueno", entities.PhysicalFair, entities.PhysicalGood, false},
		{"malo a regular", entities.PhysicalPoor, entities.PhysicalFair, false},
		{"malo a bueno", entities.PhysicalPoor, entities.PhysicalGood, false},
		{"malo a nuevo", entities.PhysicalPoor, entities.PhysicalNew, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unit := unitInState(entities.StockAvailable, tc.from)
			err := ValidatePhysicalTransition(unit, tc.to)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				var invalid *apperrors.InvalidTransitionError
				require.Error(t, err)
				assert.True(t, errors.As(err, &invalid))
				assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
			}
		})
	}
}

func TestValidatePhysicalTransition_SameStateRejected(t *testing.T) {
	unit := unitInState(entities.StockAssigned, entities.PhysicalGood)
	err := ValidatePhysicalTransition(unit, entities.PhysicalGood)

	var invalid *apperrors.InvalidTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &invalid))
}

func TestValidatePhysicalTransition_DisposedRejectsAll(t *testing.T) {
	unit := unitInState(entities.StockDisposed, entities.PhysicalNew)

	for _, to := range []entities.PhysicalCondition{
		entities.PhysicalGood, entities.PhysicalFair, entities.PhysicalPoor,
	} {
		err := ValidatePhysicalTransition(unit, to)
		var disposed *apperrors.AssetDisposedError
		require.Error(t, err)
		assert.True(t, errors.As(err, &disposed))
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	}
}

func TestCanAssign(t *testing.T) {
	t.Run("disponible", func(t *testing.T) {
		unit := unitInState(entities.StockAvailable, entities.PhysicalGood)
		assert.NoError(t, CanAssign(unit))
	})

	t.Run("recien registrada", func(t *testing.T) {
		unit := unitInState(entities.StockRegistered, entities.PhysicalNew)
		assert.NoError(t, CanAssign(unit))
	})

	t.Run("ya asignada", func(t *testing.T) {
		unit := unitInState(entities.StockAssigned, entities.PhysicalGood)
		unit.Assigned = true
		err := CanAssign(unit)
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("dada de baja", func(t *testing.T) {
		unit := unitInState(entities.StockDisposed, entities.PhysicalGood)
		err := CanAssign(unit)
		var disposed *apperrors.AssetDisposedError
		assert.True(t, errors.As(err, &disposed))
	})
}

func TestCanReassign(t *testing.T) {
	t.Run("asignada", func(t *testing.T) {
		unit := unitInState(entities.StockAssigned, entities.PhysicalGood)
		unit.Assigned = true
		unit.CurrentHolderID = null.Uint64From(7)
		assert.NoError(t, CanReassign(unit))
	})

	t.Run("no asignada", func(t *testing.T) {
		unit := unitInState(entities.StockAvailable, entities.PhysicalGood)
		assert.True(t, errors.Is(CanReassign(unit), apperrors.ErrBadRequest))
	})

	t.Run("dada de baja", func(t *testing.T) {
		unit := unitInState(entities.StockDisposed, entities.PhysicalGood)
		unit.Assigned = true
		var disposed *apperrors.AssetDisposedError
		assert.True(t, errors.As(CanReassign(unit), &disposed))
	})
}

func TestCanReturn(t *testing.T) {
	unit := unitInState(entities.StockAssigned, entities.PhysicalGood)
	unit.Assigned = true
	unit.CurrentHolderID = null.Uint64From(7)

	assert.NoError(t, CanReturn(unit, 7))
	assert.True(t, errors.Is(CanReturn(unit, 9), apperrors.ErrBadRequest), "otro personal no puede devolverla")

	unit.Assigned = false
	unit.CurrentHolderID = null.Uint64{}
	assert.True(t, errors.Is(CanReturn(unit, 7), apperrors.ErrBadRequest), "no asignada")
}

func TestCanDispose(t *testing.T) {
	t.Run("asignada debe devolverse primero", func(t *testing.T) {
		unit := unitInState(entities.StockAssigned, entities.PhysicalPoor)
		unit.Assigned = true
		assert.True(t, errors.Is(CanDispose(unit), apperrors.ErrBadRequest))
	})

	t.Run("disponible", func(t *testing.T) {
		unit := unitInState(entities.StockAvailable, entities.PhysicalPoor)
		assert.NoError(t, CanDispose(unit))
	})

	t.Run("ya de baja", func(t *testing.T) {
		unit := unitInState(entities.StockDisposed, entities.PhysicalPoor)
		var disposed *apperrors.AssetDisposedError
		assert.True(t, errors.As(CanDispose(unit), &disposed))
	})
}

func TestCanRestore(t *testing.T) {
	unit := unitInState(entities.StockDisposed, entities.PhysicalFair)
	assert.NoError(t, CanRestore(unit))

	unit = unitInState(entities.StockAvailable, entities.PhysicalFair)
	assert.True(t, errors.Is(CanRestore(unit), apperrors.ErrBadRequest))
}
