package main

import (
	"flag"
	"log"

	"asset-system/pkg/config"
	"asset-system/pkg/database/postgresql"
	"asset-system/seeders"
)

func main() {
	runCatalogs := flag.Bool("catalogs", false, "Sembrar partidas y personal de ejemplo")
	runUsers := flag.Bool("users", false, "Crear los usuarios iniciales (uno por rol)")
	runAll := flag.Bool("all", false, "Ejecutar todos los sembradores")
	flag.Parse()

	if !*runCatalogs && !*runUsers && !*runAll {
		log.Println("Ningún sembrador seleccionado.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCatalogs {
		seeders.SeedCatalogs(dbPool)
	}
	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool, cfg)
	}

	log.Println("Sembrado completado.")
}
