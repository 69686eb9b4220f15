package repositories

import (
	"context"
	"errors"
	"fmt"

	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userFields = "id, username, email, password_hash, role, created_at, updated_at"

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *entities.User) (uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ListByRoles(ctx context.Context, roles []constants.Role) ([]*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entities.User) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id",
		u.Username, u.Email, u.PasswordHash, u.Role,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("no se pudo crear el usuario: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userFields)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) ListByRoles(ctx context.Context, roles []constants.Role) ([]*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE role = ANY($1) ORDER BY id", userFields)
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	rows, err := r.storage.Query(ctx, query, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
