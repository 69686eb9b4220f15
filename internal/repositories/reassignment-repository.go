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

const reassignmentFields = "id, asset_unit_id, previous_user_id, new_user_id, previous_personnel_id, new_personnel_id, date, detail, approval_doc, created_at, updated_at"

type ReassignmentRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, r *entities.Reassignment) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Reassignment, error)
	ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Reassignment, error)
}

type ReassignmentRepository struct {
	storage *pgxpool.Pool
}

func NewReassignmentRepository(storage *pgxpool.Pool) ReassignmentRepositoryInterface {
	return &ReassignmentRepository{storage: storage}
}

func (r *ReassignmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, re *entities.Reassignment) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO reassignments (asset_unit_id, previous_user_id, new_user_id, previous_personnel_id, new_personnel_id, date, detail, approval_doc)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		re.AssetUnitID, re.PreviousUserID, re.NewUserID, re.PreviousPersonnelID, re.NewPersonnelID, re.Date, re.Detail, re.ApprovalDoc,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la reasignacion: %w", err)
	}
	return id, nil
}

func scanReassignment(row pgx.Row) (*entities.Reassignment, error) {
	var re entities.Reassignment
	err := row.Scan(&re.ID, &re.AssetUnitID, &re.PreviousUserID, &re.NewUserID,
		&re.PreviousPersonnelID, &re.NewPersonnelID, &re.Date, &re.Detail, &re.ApprovalDoc,
		&re.CreatedAt, &re.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &re, nil
}

func (r *ReassignmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Reassignment, error) {
	query := fmt.Sprintf("SELECT %s FROM reassignments WHERE id = $1", reassignmentFields)
	return scanReassignment(r.storage.QueryRow(ctx, query, id))
}

func (r *ReassignmentRepository) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Reassignment, error) {
	query := fmt.Sprintf("SELECT %s FROM reassignments WHERE asset_unit_id = $1 ORDER BY date, id", reassignmentFields)
	rows, err := r.storage.Query(ctx, query, assetUnitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*entities.Reassignment
	for rows.Next() {
		re, err := scanReassignment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, re)
	}
	return result, rows.Err()
}
