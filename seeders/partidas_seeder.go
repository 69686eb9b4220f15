package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type partidaSeed struct {
	Name            string
	UsefulLifeYears int
	RatePercent     string
}

// Partidas contables típicas de un inventario institucional, con la vida
// útil y la tasa anual de depreciación que la norma les asigna.
var partidaSeeds = []partidaSeed{
	{Name: "Equipos de Computación", UsefulLifeYears: 4, RatePercent: "25.00"},
	{Name: "Muebles y Enseres", UsefulLifeYears: 10, RatePercent: "10.00"},
	{Name: "Vehículos", UsefulLifeYears: 5, RatePercent: "20.00"},
	{Name: "Maquinaria y Equipo", UsefulLifeYears: 8, RatePercent: "12.50"},
	{Name: "Equipos de Comunicación", UsefulLifeYears: 8, RatePercent: "12.50"},
}

func seedPartidas(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - partidas...")
	for _, p := range partidaSeeds {
		_, err := db.Exec(ctx, `
			INSERT INTO partidas (name, useful_life_years, depreciation_rate_percent)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			p.Name, p.UsefulLifeYears, p.RatePercent)
		if err != nil {
			return fmt.Errorf("no se pudo insertar la partida %q: %w", p.Name, err)
		}
	}
	return nil
}
