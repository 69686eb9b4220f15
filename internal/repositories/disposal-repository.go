package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const disposalFields = "id, asset_unit_id, date, reason, status, requested_by, resolved_by, created_at, updated_at"

type DisposalFilter struct {
	Status entities.DisposalStatus
	Limit  uint64
	Offset uint64
}

type DisposalRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Disposal) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Disposal, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Disposal, error)
	FindPendingByUnitInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64) (*entities.Disposal, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status entities.DisposalStatus, resolvedBy uint64) error
	List(ctx context.Context, filter DisposalFilter) ([]*entities.Disposal, uint64, error)
}

type DisposalRepository struct {
	storage *pgxpool.Pool
}

func NewDisposalRepository(storage *pgxpool.Pool) DisposalRepositoryInterface {
	return &DisposalRepository{storage: storage}
}

func (r *DisposalRepository) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Disposal) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO disposals (asset_unit_id, date, reason, status, requested_by, resolved_by) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		d.AssetUnitID, d.Date, d.Reason, d.Status, d.RequestedBy, d.ResolvedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la baja: %w", err)
	}
	return id, nil
}

func scanDisposal(row pgx.Row) (*entities.Disposal, error) {
	var d entities.Disposal
	err := row.Scan(&d.ID, &d.AssetUnitID, &d.Date, &d.Reason, &d.Status, &d.RequestedBy, &d.ResolvedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DisposalRepository) FindByID(ctx context.Context, id uint64) (*entities.Disposal, error) {
	query := fmt.Sprintf("SELECT %s FROM disposals WHERE id = $1", disposalFields)
	return scanDisposal(r.storage.QueryRow(ctx, query, id))
}

func (r *DisposalRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Disposal, error) {
	query := fmt.Sprintf("SELECT %s FROM disposals WHERE id = $1 FOR UPDATE", disposalFields)
	return scanDisposal(tx.QueryRow(ctx, query, id))
}

func (r *DisposalRepository) FindPendingByUnitInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64) (*entities.Disposal, error) {
	query := fmt.Sprintf("SELECT %s FROM disposals WHERE asset_unit_id = $1 AND status = $2 FOR UPDATE", disposalFields)
	return scanDisposal(tx.QueryRow(ctx, query, assetUnitID, entities.DisposalPending))
}

func (r *DisposalRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status entities.DisposalStatus, resolvedBy uint64) error {
	result, err := tx.Exec(ctx,
		"UPDATE disposals SET status = $1, resolved_by = $2, updated_at = NOW() WHERE id = $3",
		status, resolvedBy, id)
	if err != nil {
		return fmt.Errorf("no se pudo actualizar el estado de la baja: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DisposalRepository) List(ctx context.Context, filter DisposalFilter) ([]*entities.Disposal, uint64, error) {
	builder := sq.Select(disposalFields).From("disposals").
		OrderBy("date DESC, id DESC").
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").From("disposals").PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
		countBuilder = countBuilder.Where(sq.Eq{"status": filter.Status})
	}
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

	var disposals []*entities.Disposal
	for rows.Next() {
		d, err := scanDisposal(rows)
		if err != nil {
			return nil, 0, err
		}
		disposals = append(disposals, d)
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
	return disposals, total, nil
}
