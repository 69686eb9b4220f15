package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// ReportFilter acota el reporte de inventario.
type ReportFilter struct {
	PartidaID      uint64
	StockCondition StockCondition
	DateFrom       *time.Time
	DateTo         *time.Time
}

// DepreciationReportItem es una fila del reporte de depreciaciones de un año:
// la corrida con su unidad, modelo y partida resueltos.
type DepreciationReportItem struct {
	UnitCode    string
	ModelName   string
	PartidaName string
	Period      string
	Method      DepreciationMethod
	Date        time.Time
	Value       decimal.Decimal
	NetValue    decimal.Decimal
}

// ReportItem es una fila del reporte de inventario: la unidad con su modelo,
// partida y portador resueltos.
type ReportItem struct {
	UnitID         uint64
	UnitCode       string
	ModelName      string
	PartidaName    string
	EntryDate      time.Time
	OriginalCost   decimal.Decimal
	CurrentCost    decimal.Decimal
	StockCondition StockCondition
	PhysicalState  PhysicalCondition
	HolderName     null.String
}
