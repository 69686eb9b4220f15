package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"asset-system/internal/entities"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

func parseReportFilter(ctx echo.Context) (entities.ReportFilter, string) {
	var filter entities.ReportFilter
	format := ctx.QueryParam("format")

	if id, err := strconv.ParseUint(ctx.QueryParam("partida_id"), 10, 64); err == nil {
		filter.PartidaID = id
	}
	if sc := ctx.QueryParam("stock_condition"); sc != "" {
		filter.StockCondition = entities.StockCondition(sc)
	}
	if from, err := time.Parse("2006-01-02", ctx.QueryParam("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", ctx.QueryParam("date_to")); err == nil {
		filter.DateTo = &to
	}
	return filter, format
}

// GetInventoryReport devuelve el inventario en JSON, o en XLSX si se pide
// format=xlsx.
func (c *ReportController) GetInventoryReport(ctx echo.Context) error {
	filter, format := parseReportFilter(ctx)

	items, err := c.reportService.GetInventoryReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, items)
	}
	return utils.SuccessResponse(ctx, items, "Reporte de inventario obtenido", http.StatusOK)
}

var inventoryHeaders = []string{
	"Código", "Modelo", "Partida", "Fecha de ingreso", "Costo original",
	"Costo actual", "Condición", "Estado físico", "Portador",
}

func inventoryRow(item entities.ReportItem) []interface{} {
	holder := "-"
	if item.HolderName.Valid {
		holder = item.HolderName.String
	}
	return []interface{}{
		item.UnitCode, item.ModelName, item.PartidaName,
		item.EntryDate.Format("02.01.2006"),
		item.OriginalCost.StringFixed(2), item.CurrentCost.StringFixed(2),
		string(item.StockCondition), string(item.PhysicalState), holder,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, items []entities.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Inventario"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &inventoryHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := inventoryRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "C", 25)
	f.SetColWidth(sheet, "D", "F", 18)
	f.SetColWidth(sheet, "G", "I", 20)

	fileName := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("2006-01-02"))
	return writeXLSX(ctx, f, fileName)
}

// GetDepreciationReport devuelve las corridas de depreciación de un año, en
// JSON o en XLSX si se pide format=xlsx.
func (c *ReportController) GetDepreciationReport(ctx echo.Context) error {
	year := ctx.QueryParam("year")
	if len(year) != 4 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "El parámetro year es obligatorio (formato AAAA)", nil, nil),
			c.logger)
	}

	items, err := c.reportService.GetDepreciationReport(ctx.Request().Context(), year)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.respondDepreciationXLSX(ctx, year, items)
	}
	return utils.SuccessResponse(ctx, items, "Reporte de depreciaciones obtenido", http.StatusOK)
}

var depreciationHeaders = []string{
	"Código", "Modelo", "Partida", "Período", "Método", "Fecha", "Depreciado", "Valor neto",
}

func (c *ReportController) respondDepreciationXLSX(ctx echo.Context, year string, items []entities.DepreciationReportItem) error {
	f := excelize.NewFile()
	sheet := "Depreciaciones"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &depreciationHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			item.UnitCode, item.ModelName, item.PartidaName, item.Period,
			string(item.Method), item.Date.Format("02.01.2006"),
			item.Value.StringFixed(2), item.NetValue.StringFixed(2),
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "C", 25)
	f.SetColWidth(sheet, "D", "H", 18)

	return writeXLSX(ctx, f, fmt.Sprintf("depreciaciones_%s.xlsx", year))
}

func writeXLSX(ctx echo.Context, f *excelize.File, fileName string) error {
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
