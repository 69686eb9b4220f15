package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/pkg/config"
	"asset-system/pkg/constants"
	"asset-system/pkg/utils"
)

type userSeed struct {
	Username string
	Email    string
	Role     constants.Role
}

var userSeeds = []userSeed{
	{Username: "admin", Email: "admin@activos.local", Role: constants.RoleAdministrator},
	{Username: "encargado", Email: "encargado@activos.local", Role: constants.RoleManager},
	{Username: "tecnico", Email: "tecnico@activos.local", Role: constants.RoleTechnician},
}

func seedInitialUsers(ctx context.Context, db *pgxpool.Pool, _ *config.Config) error {
	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		password = "cambiar123"
		log.Println("  - SEED_USER_PASSWORD no definido, se usa la contraseña por defecto")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("no se pudo hashear la contraseña inicial: %w", err)
	}

	for _, u := range userSeeds {
		var existing uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", u.Email).Scan(&existing)
		if err == nil {
			log.Printf("  - el usuario %s ya existe, se omite", u.Email)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("no se pudo verificar el usuario %q: %w", u.Email, err)
		}

		_, err = db.Exec(ctx, `
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)`,
			u.Username, u.Email, hash, string(u.Role))
		if err != nil {
			return fmt.Errorf("no se pudo crear el usuario %q: %w", u.Email, err)
		}
		log.Printf("  - usuario %s (%s) creado", u.Username, u.Role)
	}
	return nil
}
