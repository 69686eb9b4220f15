package repositories

import (
	"context"

	"asset-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetInventoryReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error)
	GetDepreciationReport(ctx context.Context, year string) ([]entities.DepreciationReportItem, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetInventoryReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	builder := sq.Select(
		"u.id", "u.code", "m.name", "p.name", "m.entry_date",
		"m.cost", "u.current_cost", "u.stock_condition", "u.physical_state", "per.name",
	).
		From("asset_units u").
		Join("asset_models m ON m.id = u.asset_model_id").
		Join("partidas p ON p.id = m.partida_id").
		LeftJoin("personnel per ON per.id = u.current_holder_id").
		OrderBy("u.code").
		PlaceholderFormat(sq.Dollar)

	if filter.PartidaID > 0 {
		builder = builder.Where(sq.Eq{"m.partida_id": filter.PartidaID})
	}
	if filter.StockCondition != "" {
		builder = builder.Where(sq.Eq{"u.stock_condition": filter.StockCondition})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"m.entry_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"m.entry_date": *filter.DateTo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.ReportItem
	for rows.Next() {
		var item entities.ReportItem
		err := rows.Scan(
			&item.UnitID, &item.UnitCode, &item.ModelName, &item.PartidaName, &item.EntryDate,
			&item.OriginalCost, &item.CurrentCost, &item.StockCondition, &item.PhysicalState, &item.HolderName,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetDepreciationReport trae las corridas de un año, tanto la anual (período
// "2006") como las mensuales ("2006-01").
func (r *ReportRepository) GetDepreciationReport(ctx context.Context, year string) ([]entities.DepreciationReportItem, error) {
	query, args, err := sq.Select(
		"u.code", "m.name", "p.name", "d.period", "d.method", "d.date", "d.value", "d.net_value",
	).
		From("depreciations d").
		Join("asset_units u ON u.id = d.asset_unit_id").
		Join("asset_models m ON m.id = u.asset_model_id").
		Join("partidas p ON p.id = m.partida_id").
		Where(sq.Or{
			sq.Eq{"d.period": year},
			sq.Like{"d.period": year + "-%"},
		}).
		OrderBy("d.period", "u.code").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.DepreciationReportItem
	for rows.Next() {
		var item entities.DepreciationReportItem
		err := rows.Scan(
			&item.UnitCode, &item.ModelName, &item.PartidaName,
			&item.Period, &item.Method, &item.Date, &item.Value, &item.NetValue,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
