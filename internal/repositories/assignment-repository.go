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

const assignmentFields = "id, user_id, personnel_id, date, detail, approval_doc, created_at, updated_at"

type AssignmentRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, a *entities.Assignment) (uint64, error)
	AddUnitInTx(ctx context.Context, tx pgx.Tx, assignmentID, assetUnitID uint64) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Assignment, error)
	List(ctx context.Context, limit, offset uint64) ([]*entities.Assignment, uint64, error)
}

type AssignmentRepository struct {
	storage *pgxpool.Pool
}

func NewAssignmentRepository(storage *pgxpool.Pool) AssignmentRepositoryInterface {
	return &AssignmentRepository{storage: storage}
}

func (r *AssignmentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, a *entities.Assignment) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO assignments (user_id, personnel_id, date, detail, approval_doc) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		a.UserID, a.PersonnelID, a.Date, a.Detail, a.ApprovalDoc,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la asignacion: %w", err)
	}
	return id, nil
}

func (r *AssignmentRepository) AddUnitInTx(ctx context.Context, tx pgx.Tx, assignmentID, assetUnitID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		"INSERT INTO assignment_units (assignment_id, asset_unit_id) VALUES ($1, $2) RETURNING id",
		assignmentID, assetUnitID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo vincular la unidad a la asignacion: %w", err)
	}
	return id, nil
}

func scanAssignment(row pgx.Row) (*entities.Assignment, error) {
	var a entities.Assignment
	err := row.Scan(&a.ID, &a.UserID, &a.PersonnelID, &a.Date, &a.Detail, &a.ApprovalDoc, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE id = $1", assignmentFields)
	a, err := scanAssignment(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx,
		"SELECT id, assignment_id, asset_unit_id FROM assignment_units WHERE assignment_id = $1 ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u entities.AssignmentUnit
		if err := rows.Scan(&u.ID, &u.AssignmentID, &u.AssetUnitID); err != nil {
			return nil, err
		}
		a.Units = append(a.Units, &u)
	}
	return a, rows.Err()
}

func (r *AssignmentRepository) List(ctx context.Context, limit, offset uint64) ([]*entities.Assignment, uint64, error) {
	builder := sq.Select(assignmentFields).From("assignments").
		OrderBy("date DESC, id DESC").
		PlaceholderFormat(sq.Dollar)
	if limit > 0 {
		builder = builder.Limit(limit).Offset(offset)
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

	var assignments []*entities.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM assignments").Scan(&total); err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}
