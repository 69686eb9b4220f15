package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const assetUnitFields = "id, asset_model_id, code, assigned, stock_condition, physical_state, current_cost, current_holder_id, created_at, updated_at"

type AssetUnitFilter struct {
	ModelID        uint64
	HolderID       uint64
	StockCondition entities.StockCondition
	Assigned       *bool
	Limit          uint64
	Offset         uint64
}

type AssetUnitRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.AssetUnit, error)
	FindWithModel(ctx context.Context, id uint64) (*entities.AssetUnit, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetUnit, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, unit *entities.AssetUnit) (uint64, error)
	UpdateAssignmentStateInTx(ctx context.Context, tx pgx.Tx, id uint64, assigned bool, stock entities.StockCondition, holderID null.Uint64) error
	UpdatePhysicalStateInTx(ctx context.Context, tx pgx.Tx, id uint64, state entities.PhysicalCondition) error
	UpdateCostInTx(ctx context.Context, tx pgx.Tx, id uint64, cost decimal.Decimal) error
	List(ctx context.Context, filter AssetUnitFilter) ([]*entities.AssetUnit, uint64, error)
	ListIDsForDepreciation(ctx context.Context) ([]uint64, error)
	CountAssignedByModel(ctx context.Context, modelID uint64) (int, error)
	DeleteByModelInTx(ctx context.Context, tx pgx.Tx, modelID uint64) error
}

type AssetUnitRepository struct {
	storage *pgxpool.Pool
}

func NewAssetUnitRepository(storage *pgxpool.Pool) AssetUnitRepositoryInterface {
	return &AssetUnitRepository{storage: storage}
}

func scanAssetUnit(row pgx.Row) (*entities.AssetUnit, error) {
	var unit entities.AssetUnit
	err := row.Scan(
		&unit.ID,
		&unit.AssetModelID,
		&unit.Code,
		&unit.Assigned,
		&unit.StockCondition,
		&unit.PhysicalState,
		&unit.CurrentCost,
		&unit.CurrentHolderID,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

func (r *AssetUnitRepository) findByID(ctx context.Context, q querier, id uint64, forUpdate bool) (*entities.AssetUnit, error) {
	query := fmt.Sprintf("SELECT %s FROM asset_units WHERE id = $1", assetUnitFields)
	if forUpdate {
		query += " FOR UPDATE"
	}
	return scanAssetUnit(q.QueryRow(ctx, query, id))
}

func (r *AssetUnitRepository) FindByID(ctx context.Context, id uint64) (*entities.AssetUnit, error) {
	return r.findByID(ctx, r.storage, id, false)
}

// FindForUpdateInTx bloquea la fila de la unidad por el resto de la
// transacción. Dos Assign concurrentes sobre la misma unidad se serializan
// aquí: el segundo ve assigned=true al re-validar y falla.
func (r *AssetUnitRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetUnit, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *AssetUnitRepository) FindWithModel(ctx context.Context, id uint64) (*entities.AssetUnit, error) {
	query := `
		SELECT u.id, u.asset_model_id, u.code, u.assigned, u.stock_condition, u.physical_state,
		       u.current_cost, u.current_holder_id, u.created_at, u.updated_at,
		       m.id, m.partida_id, m.name, m.description, m.entry_date, m.cost, m.code, m.quantity, m.available_quantity,
		       p.id, p.name, p.useful_life_years, p.depreciation_rate_percent
		FROM asset_units u
			JOIN asset_models m ON m.id = u.asset_model_id
			JOIN partidas p ON p.id = m.partida_id
		WHERE u.id = $1`

	var unit entities.AssetUnit
	var model entities.AssetModel
	var partida entities.Partida

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&unit.ID, &unit.AssetModelID, &unit.Code, &unit.Assigned, &unit.StockCondition,
		&unit.PhysicalState, &unit.CurrentCost, &unit.CurrentHolderID, &unit.CreatedAt, &unit.UpdatedAt,
		&model.ID, &model.PartidaID, &model.Name, &model.Description, &model.EntryDate,
		&model.Cost, &model.Code, &model.Quantity, &model.AvailableQty,
		&partida.ID, &partida.Name, &partida.UsefulLife, &partida.RatePercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	model.Partida = &partida
	unit.AssetModel = &model
	return &unit, nil
}

func (r *AssetUnitRepository) CreateInTx(ctx context.Context, tx pgx.Tx, unit *entities.AssetUnit) (uint64, error) {
	query := `
		INSERT INTO asset_units (asset_model_id, code, assigned, stock_condition, physical_state, current_cost, current_holder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		unit.AssetModelID,
		unit.Code,
		unit.Assigned,
		unit.StockCondition,
		unit.PhysicalState,
		unit.CurrentCost,
		unit.CurrentHolderID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la unidad de activo: %w", err)
	}
	return id, nil
}

func (r *AssetUnitRepository) UpdateAssignmentStateInTx(ctx context.Context, tx pgx.Tx, id uint64, assigned bool, stock entities.StockCondition, holderID null.Uint64) error {
	query := `
		UPDATE asset_units
		SET assigned = $1, stock_condition = $2, current_holder_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`

	result, err := tx.Exec(ctx, query, assigned, stock, holderID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetUnitRepository) UpdatePhysicalStateInTx(ctx context.Context, tx pgx.Tx, id uint64, state entities.PhysicalCondition) error {
	result, err := tx.Exec(ctx,
		"UPDATE asset_units SET physical_state = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		state, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetUnitRepository) UpdateCostInTx(ctx context.Context, tx pgx.Tx, id uint64, cost decimal.Decimal) error {
	result, err := tx.Exec(ctx,
		"UPDATE asset_units SET current_cost = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		cost, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetUnitRepository) List(ctx context.Context, filter AssetUnitFilter) ([]*entities.AssetUnit, uint64, error) {
	builder := sq.Select(assetUnitFields).
		From("asset_units").
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").From("asset_units").PlaceholderFormat(sq.Dollar)

	applyFilter := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.ModelID != 0 {
			b = b.Where(sq.Eq{"asset_model_id": filter.ModelID})
		}
		if filter.HolderID != 0 {
			b = b.Where(sq.Eq{"current_holder_id": filter.HolderID})
		}
		if filter.StockCondition != "" {
			b = b.Where(sq.Eq{"stock_condition": filter.StockCondition})
		}
		if filter.Assigned != nil {
			b = b.Where(sq.Eq{"assigned": *filter.Assigned})
		}
		return b
	}

	builder = applyFilter(builder)
	countBuilder = applyFilter(countBuilder)

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var units []*entities.AssetUnit
	for rows.Next() {
		unit, err := scanAssetUnit(rows)
		if err != nil {
			return nil, 0, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return units, total, nil
}

// ListIDsForDepreciation devuelve las unidades que participan de la corrida:
// todas las que no están dadas de baja.
func (r *AssetUnitRepository) ListIDsForDepreciation(ctx context.Context) ([]uint64, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id FROM asset_units WHERE stock_condition <> $1 ORDER BY id",
		entities.StockDisposed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *AssetUnitRepository) CountAssignedByModel(ctx context.Context, modelID uint64) (int, error) {
	var count int
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM asset_units WHERE asset_model_id = $1 AND assigned = TRUE",
		modelID).Scan(&count)
	return count, err
}

func (r *AssetUnitRepository) DeleteByModelInTx(ctx context.Context, tx pgx.Tx, modelID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM asset_units WHERE asset_model_id = $1", modelID)
	return err
}
