package lifecycle

import (
	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

// Reglas de transición del estado físico. Dirigidas, sin regreso a una
// condición mejor; Malo es terminal.
var physicalTransitions = map[entities.PhysicalCondition][]entities.PhysicalCondition{
	entities.PhysicalNew:  {entities.PhysicalGood, entities.PhysicalFair, entities.PhysicalPoor},
	entities.PhysicalGood: {entities.PhysicalFair, entities.PhysicalPoor},
	entities.PhysicalFair: {entities.PhysicalPoor},
	entities.PhysicalPoor: {},
}

// ValidatePhysicalTransition decide si la unidad puede pasar al nuevo estado
// físico. Una unidad dada de baja rechaza cualquier cambio.
func ValidatePhysicalTransition(unit *entities.AssetUnit, to entities.PhysicalCondition) error {
	if unit.StockCondition == entities.StockDisposed {
		return apperrors.NewAssetDisposedError(unit.ID)
	}
	if !to.Valid() {
		return apperrors.NewInvalidInputError("estado físico desconocido: %s", to)
	}

	from := unit.PhysicalState
	if from == to {
		return apperrors.NewInvalidTransitionError(string(from), string(to))
	}
	for _, allowed := range physicalTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperrors.NewInvalidTransitionError(string(from), string(to))
}

// CanAssign valida las precondiciones de asignación de una unidad.
func CanAssign(unit *entities.AssetUnit) error {
	if unit.StockCondition == entities.StockDisposed {
		return apperrors.NewAssetDisposedError(unit.ID)
	}
	if unit.Assigned {
		return apperrors.NewInvalidInputError("la unidad de activo %d ya está asignada", unit.ID)
	}
	return nil
}

// CanReassign valida que la unidad esté asignada y no dada de baja.
func CanReassign(unit *entities.AssetUnit) error {
	if unit.StockCondition == entities.StockDisposed {
		return apperrors.NewAssetDisposedError(unit.ID)
	}
	if !unit.Assigned {
		return apperrors.NewInvalidInputError("la unidad de activo %d no está asignada, no se puede reasignar", unit.ID)
	}
	return nil
}

// CanReturn valida que la unidad esté asignada al personal indicado.
func CanReturn(unit *entities.AssetUnit, personnelID uint64) error {
	if unit.StockCondition == entities.StockDisposed {
		return apperrors.NewAssetDisposedError(unit.ID)
	}
	if !unit.Assigned || !unit.CurrentHolderID.Valid || unit.CurrentHolderID.Uint64 != personnelID {
		return apperrors.NewInvalidInputError("la unidad de activo %d no está asignada a este personal", unit.ID)
	}
	return nil
}

// CanDispose valida que la unidad pueda darse de baja: no estar ya de baja y
// no estar asignada (debe devolverse primero).
func CanDispose(unit *entities.AssetUnit) error {
	if unit.StockCondition == entities.StockDisposed {
		return apperrors.NewAssetDisposedError(unit.ID)
	}
	if unit.Assigned {
		return apperrors.NewInvalidInputError("la unidad de activo %d está asignada, debe devolverse antes de darse de baja", unit.ID)
	}
	return nil
}

// CanRestore valida que la unidad esté efectivamente dada de baja.
func CanRestore(unit *entities.AssetUnit) error {
	if unit.StockCondition != entities.StockDisposed {
		return apperrors.NewInvalidInputError("la unidad de activo %d no está dada de baja", unit.ID)
	}
	return nil
}
