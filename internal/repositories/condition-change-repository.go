package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conditionChangeFields = "id, asset_unit_id, previous_condition, new_condition, reason, changed_at"

type ConditionChangeRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, c *entities.ConditionChange) (uint64, error)
	ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.ConditionChange, error)
}

type ConditionChangeRepository struct {
	storage *pgxpool.Pool
}

func NewConditionChangeRepository(storage *pgxpool.Pool) ConditionChangeRepositoryInterface {
	return &ConditionChangeRepository{storage: storage}
}

func (r *ConditionChangeRepository) CreateInTx(ctx context.Context, tx pgx.Tx, c *entities.ConditionChange) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO condition_changes (asset_unit_id, previous_condition, new_condition, reason, changed_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		c.AssetUnitID, c.PreviousCondition, c.NewCondition, c.Reason, c.ChangedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo registrar el cambio de estado: %w", err)
	}
	return id, nil
}

func (r *ConditionChangeRepository) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.ConditionChange, error) {
	query := fmt.Sprintf("SELECT %s FROM condition_changes WHERE asset_unit_id = $1 ORDER BY changed_at, id", conditionChangeFields)
	rows, err := r.storage.Query(ctx, query, assetUnitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*entities.ConditionChange
	for rows.Next() {
		var c entities.ConditionChange
		err := rows.Scan(&c.ID, &c.AssetUnitID, &c.PreviousCondition, &c.NewCondition, &c.Reason, &c.ChangedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}
