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

const personnelFields = "id, name, ci, position, email, active, created_at, updated_at"

type PersonnelRepositoryInterface interface {
	Create(ctx context.Context, p *entities.Personnel) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Personnel, error)
	List(ctx context.Context, limit, offset uint64) ([]*entities.Personnel, uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type PersonnelRepository struct {
	storage *pgxpool.Pool
}

func NewPersonnelRepository(storage *pgxpool.Pool) PersonnelRepositoryInterface {
	return &PersonnelRepository{storage: storage}
}

func scanPersonnel(row pgx.Row) (*entities.Personnel, error) {
	var p entities.Personnel
	err := row.Scan(&p.ID, &p.Name, &p.CI, &p.Position, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PersonnelRepository) Create(ctx context.Context, p *entities.Personnel) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO personnel (name, ci, position, email, active) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		p.Name, p.CI, p.Position, p.Email, p.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear el personal: %w", err)
	}
	return id, nil
}

func (r *PersonnelRepository) FindByID(ctx context.Context, id uint64) (*entities.Personnel, error) {
	query := fmt.Sprintf("SELECT %s FROM personnel WHERE id = $1", personnelFields)
	return scanPersonnel(r.storage.QueryRow(ctx, query, id))
}

func (r *PersonnelRepository) List(ctx context.Context, limit, offset uint64) ([]*entities.Personnel, uint64, error) {
	query := fmt.Sprintf("SELECT %s FROM personnel ORDER BY id", personnelFields)
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

	var people []*entities.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, 0, err
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM personnel").Scan(&total); err != nil {
		return nil, 0, err
	}
	return people, total, nil
}

func (r *PersonnelRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM personnel WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
