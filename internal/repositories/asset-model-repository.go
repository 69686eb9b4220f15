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

const assetModelFields = "id, partida_id, name, description, entry_date, cost, code, previous_code, purchase_order, quantity, available_quantity, created_by, created_at, updated_at"

type AssetModelRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, model *entities.AssetModel) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.AssetModel, error)
	List(ctx context.Context, limit, offset uint64) ([]*entities.AssetModel, uint64, error)
	DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error
	IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	NextSequenceByPartidaInTx(ctx context.Context, tx pgx.Tx, partidaID uint64) (uint64, error)
}

type AssetModelRepository struct {
	storage *pgxpool.Pool
}

func NewAssetModelRepository(storage *pgxpool.Pool) AssetModelRepositoryInterface {
	return &AssetModelRepository{storage: storage}
}

func scanAssetModel(row pgx.Row) (*entities.AssetModel, error) {
	var m entities.AssetModel
	err := row.Scan(
		&m.ID, &m.PartidaID, &m.Name, &m.Description, &m.EntryDate, &m.Cost,
		&m.Code, &m.PreviousCode, &m.PurchaseOrder, &m.Quantity, &m.AvailableQty,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *AssetModelRepository) CreateInTx(ctx context.Context, tx pgx.Tx, model *entities.AssetModel) (uint64, error) {
	query := `
		INSERT INTO asset_models
			(partida_id, name, description, entry_date, cost, code, previous_code, purchase_order, quantity, available_quantity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		model.PartidaID, model.Name, model.Description, model.EntryDate, model.Cost,
		model.Code, model.PreviousCode, model.PurchaseOrder, model.Quantity, model.Quantity,
		model.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear el modelo de activo: %w", err)
	}
	return id, nil
}

func (r *AssetModelRepository) FindByID(ctx context.Context, id uint64) (*entities.AssetModel, error) {
	query := fmt.Sprintf("SELECT %s FROM asset_models WHERE id = $1", assetModelFields)
	return scanAssetModel(r.storage.QueryRow(ctx, query, id))
}

func (r *AssetModelRepository) List(ctx context.Context, limit, offset uint64) ([]*entities.AssetModel, uint64, error) {
	query := fmt.Sprintf("SELECT %s FROM asset_models ORDER BY id", assetModelFields)
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var models []*entities.AssetModel
	for rows.Next() {
		m, err := scanAssetModel(rows)
		if err != nil {
			return nil, 0, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM asset_models").Scan(&total); err != nil {
		return nil, 0, err
	}
	return models, total, nil
}

// DecrementAvailableInTx descuenta la cantidad disponible del modelo. Es un
// dato informativo: si quedara en negativo se fija en cero y no se considera
// error.
func (r *AssetModelRepository) DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error {
	_, err := tx.Exec(ctx,
		"UPDATE asset_models SET available_quantity = GREATEST(available_quantity - $1, 0), updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		by, id)
	return err
}

func (r *AssetModelRepository) IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error {
	_, err := tx.Exec(ctx,
		"UPDATE asset_models SET available_quantity = available_quantity + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		by, id)
	return err
}

// NextSequenceByPartidaInTx devuelve el correlativo siguiente para generar el
// código de un modelo dentro de su partida. Debe llamarse dentro de la misma
// transacción que inserta el modelo.
func (r *AssetModelRepository) NextSequenceByPartidaInTx(ctx context.Context, tx pgx.Tx, partidaID uint64) (uint64, error) {
	var count uint64
	err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM asset_models WHERE partida_id = $1", partidaID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

func (r *AssetModelRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM asset_models WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
