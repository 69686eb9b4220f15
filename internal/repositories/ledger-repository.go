package repositories

import (
	"context"
	"fmt"

	"asset-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepositoryInterface es el escritor del ledger de ciclo de vida. Solo
// expone inserción (siempre dentro de una transacción abierta) y lecturas: el
// ledger es inmutable y aquí no existe ningún UPDATE ni DELETE.
type LedgerRepositoryInterface interface {
	AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.LifecycleLedgerEntry) (uint64, error)
	ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.LifecycleLedgerEntry, error)
	CountByUnit(ctx context.Context, assetUnitID uint64) (uint64, error)
}

type LedgerRepository struct {
	storage *pgxpool.Pool
}

func NewLedgerRepository(storage *pgxpool.Pool) LedgerRepositoryInterface {
	return &LedgerRepository{storage: storage}
}

func (r *LedgerRepository) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.LifecycleLedgerEntry) (uint64, error) {
	query := `
		INSERT INTO lifecycle_ledger
			(asset_unit_id, change_type, detail, ts,
			 assignment_id, reassignment_id, return_id, disposal_id, condition_change_id, depreciation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id uint64
	err := tx.QueryRow(ctx, query,
		entry.AssetUnitID,
		entry.ChangeType,
		entry.Detail,
		entry.Timestamp,
		entry.AssignmentID,
		entry.ReassignmentID,
		entry.ReturnID,
		entry.DisposalID,
		entry.ConditionChangeID,
		entry.DepreciationID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo registrar la entrada del ledger: %w", err)
	}
	return id, nil
}

func (r *LedgerRepository) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.LifecycleLedgerEntry, error) {
	query, args, err := sq.Select(
		"id", "asset_unit_id", "change_type", "detail", "ts",
		"assignment_id", "reassignment_id", "return_id", "disposal_id", "condition_change_id", "depreciation_id",
	).
		From("lifecycle_ledger").
		Where(sq.Eq{"asset_unit_id": assetUnitID}).
		OrderBy("ts", "id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entities.LifecycleLedgerEntry
	for rows.Next() {
		var e entities.LifecycleLedgerEntry
		err := rows.Scan(
			&e.ID, &e.AssetUnitID, &e.ChangeType, &e.Detail, &e.Timestamp,
			&e.AssignmentID, &e.ReassignmentID, &e.ReturnID, &e.DisposalID, &e.ConditionChangeID, &e.DepreciationID,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *LedgerRepository) CountByUnit(ctx context.Context, assetUnitID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM lifecycle_ledger WHERE asset_unit_id = $1", assetUnitID).Scan(&count)
	return count, err
}
