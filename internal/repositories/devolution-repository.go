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

const devolutionFields = "id, user_id, personnel_id, asset_unit_id, date, detail, acta_doc, created_at, updated_at"

type DevolutionRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Devolution) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Devolution, error)
	ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Devolution, error)
}

type DevolutionRepository struct {
	storage *pgxpool.Pool
}

func NewDevolutionRepository(storage *pgxpool.Pool) DevolutionRepositoryInterface {
	return &DevolutionRepository{storage: storage}
}

func (r *DevolutionRepository) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Devolution) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO devolutions (user_id, personnel_id, asset_unit_id, date, detail, acta_doc) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		d.UserID, d.PersonnelID, d.AssetUnitID, d.Date, d.Detail, d.ActaDoc,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la devolucion: %w", err)
	}
	return id, nil
}

func scanDevolution(row pgx.Row) (*entities.Devolution, error) {
	var d entities.Devolution
	err := row.Scan(&d.ID, &d.UserID, &d.PersonnelID, &d.AssetUnitID, &d.Date, &d.Detail, &d.ActaDoc, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DevolutionRepository) FindByID(ctx context.Context, id uint64) (*entities.Devolution, error) {
	query := fmt.Sprintf("SELECT %s FROM devolutions WHERE id = $1", devolutionFields)
	return scanDevolution(r.storage.QueryRow(ctx, query, id))
}

func (r *DevolutionRepository) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Devolution, error) {
	query := fmt.Sprintf("SELECT %s FROM devolutions WHERE asset_unit_id = $1 ORDER BY date, id", devolutionFields)
	rows, err := r.storage.Query(ctx, query, assetUnitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*entities.Devolution
	for rows.Next() {
		d, err := scanDevolution(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
