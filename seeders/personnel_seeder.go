package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type personnelSeed struct {
	Name     string
	CI       string
	Position string
	Email    string
}

var personnelSeeds = []personnelSeed{
	{Name: "María Flores", CI: "4578123", Position: "Jefa de Unidad", Email: "maria.flores@example.org"},
	{Name: "Jorge Mamani", CI: "6891245", Position: "Técnico de Campo", Email: "jorge.mamani@example.org"},
	{Name: "Lucía Quispe", CI: "7012389", Position: "Analista Administrativa", Email: "lucia.quispe@example.org"},
}

func seedPersonnel(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - personal...")
	for _, p := range personnelSeeds {
		_, err := db.Exec(ctx, `
			INSERT INTO personnel (name, ci, position, email, active)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (ci) DO NOTHING`,
			p.Name, p.CI, p.Position, p.Email)
		if err != nil {
			return fmt.Errorf("no se pudo insertar al personal %q: %w", p.Name, err)
		}
	}
	return nil
}
