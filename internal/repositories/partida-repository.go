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

const partidaFields = "id, name, useful_life_years, depreciation_rate_percent, created_at, updated_at"

type PartidaRepositoryInterface interface {
	Create(ctx context.Context, partida *entities.Partida) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Partida, error)
	List(ctx context.Context) ([]*entities.Partida, error)
	Delete(ctx context.Context, id uint64) error
}

type PartidaRepository struct {
	storage *pgxpool.Pool
}

func NewPartidaRepository(storage *pgxpool.Pool) PartidaRepositoryInterface {
	return &PartidaRepository{storage: storage}
}

func scanPartida(row pgx.Row) (*entities.Partida, error) {
	var p entities.Partida
	err := row.Scan(&p.ID, &p.Name, &p.UsefulLife, &p.RatePercentage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PartidaRepository) Create(ctx context.Context, partida *entities.Partida) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO partidas (name, useful_life_years, depreciation_rate_percent) VALUES ($1, $2, $3) RETURNING id",
		partida.Name, partida.UsefulLife, partida.RatePercentage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear la partida: %w", err)
	}
	return id, nil
}

func (r *PartidaRepository) FindByID(ctx context.Context, id uint64) (*entities.Partida, error) {
	query := fmt.Sprintf("SELECT %s FROM partidas WHERE id = $1", partidaFields)
	return scanPartida(r.storage.QueryRow(ctx, query, id))
}

func (r *PartidaRepository) List(ctx context.Context) ([]*entities.Partida, error) {
	query := fmt.Sprintf("SELECT %s FROM partidas ORDER BY id", partidaFields)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partidas []*entities.Partida
	for rows.Next() {
		p, err := scanPartida(rows)
		if err != nil {
			return nil, err
		}
		partidas = append(partidas, p)
	}
	return partidas, rows.Err()
}

func (r *PartidaRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM partidas WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
