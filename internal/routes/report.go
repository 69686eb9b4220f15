package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
)

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController) {
	g.GET("/reports/inventory", ctrl.GetInventoryReport)
	g.GET("/reports/depreciations", ctrl.GetDepreciationReport)
}
