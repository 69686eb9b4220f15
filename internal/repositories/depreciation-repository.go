package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const depreciationFields = "id, asset_unit_id, date, value, net_value, period, method, special_cause, created_at, updated_at"

type DepreciationRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Depreciation) (uint64, error)
	FindByUnitPeriodMethodInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64, period string, method entities.DepreciationMethod) (*entities.Depreciation, error)
	UpdateValuesInTx(ctx context.Context, tx pgx.Tx, id uint64, value, netValue decimal.Decimal) error
	ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Depreciation, error)
	ListByPeriod(ctx context.Context, period string) ([]*entities.Depreciation, error)
}

type DepreciationRepository struct {
	storage *pgxpool.Pool
}

func NewDepreciationRepository(storage *pgxpool.Pool) DepreciationRepositoryInterface {
	return &DepreciationRepository{storage: storage}
}

func (r *DepreciationRepository) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Depreciation) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO depreciations (asset_unit_id, date, value, net_value, period, method, special_cause) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		d.AssetUnitID, d.Date, d.Value, d.NetValue, d.Period, d.Method, d.SpecialCause,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo registrar la depreciacion: %w", err)
	}
	return id, nil
}

func scanDepreciation(row pgx.Row) (*entities.Depreciation, error) {
	var d entities.Depreciation
	err := row.Scan(&d.ID, &d.AssetUnitID, &d.Date, &d.Value, &d.NetValue, &d.Period, &d.Method, &d.SpecialCause, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepreciationRepository) FindByUnitPeriodMethodInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64, period string, method entities.DepreciationMethod) (*entities.Depreciation, error) {
	query := fmt.Sprintf("SELECT %s FROM depreciations WHERE asset_unit_id = $1 AND period = $2 AND method = $3 FOR UPDATE", depreciationFields)
	return scanDepreciation(tx.QueryRow(ctx, query, assetUnitID, period, method))
}

func (r *DepreciationRepository) UpdateValuesInTx(ctx context.Context, tx pgx.Tx, id uint64, value, netValue decimal.Decimal) error {
	result, err := tx.Exec(ctx,
		"UPDATE depreciations SET value = $1, net_value = $2, updated_at = NOW() WHERE id = $3",
		value, netValue, id)
	if err != nil {
		return fmt.Errorf("no se pudo actualizar la depreciacion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DepreciationRepository) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Depreciation, error) {
	query := fmt.Sprintf("SELECT %s FROM depreciations WHERE asset_unit_id = $1 ORDER BY date, id", depreciationFields)
	return r.queryMany(ctx, query, assetUnitID)
}

func (r *DepreciationRepository) ListByPeriod(ctx context.Context, period string) ([]*entities.Depreciation, error) {
	query := fmt.Sprintf("SELECT %s FROM depreciations WHERE period = $1 ORDER BY asset_unit_id, id", depreciationFields)
	return r.queryMany(ctx, query, period)
}

func (r *DepreciationRepository) queryMany(ctx context.Context, query string, args ...any) ([]*entities.Depreciation, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*entities.Depreciation
	for rows.Next() {
		d, err := scanDepreciation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
