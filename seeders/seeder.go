package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"asset-system/pkg/config"
)

// SeedCatalogs llena los catálogos base que no dependen de nada más.
func SeedCatalogs(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Sembrando catálogos base...")

	if err := seedPartidas(ctx, db); err != nil {
		log.Fatalf("error sembrando partidas: %v", err)
	}
	if err := seedPersonnel(ctx, db); err != nil {
		log.Fatalf("error sembrando personal: %v", err)
	}
	log.Println("Catálogos base listos.")
}

// SeedUsers crea los usuarios iniciales del sistema, uno por rol.
func SeedUsers(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("Sembrando usuarios iniciales...")

	if err := seedInitialUsers(ctx, db, cfg); err != nil {
		log.Fatalf("error sembrando usuarios: %v", err)
	}
	log.Println("Usuarios iniciales listos.")
}
