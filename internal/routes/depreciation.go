package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runDepreciationRouter(g *echo.Group, ctrl *controllers.DepreciationController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdministrator, constants.RoleManager)

	g.GET("/depreciations", ctrl.GetByPeriod)
	g.GET("/asset-units/:id/depreciations", ctrl.GetByUnit)
	g.POST("/depreciations", ctrl.CreateDepreciation, managers)
	g.POST("/depreciations/batch", ctrl.RunBatch, authMW.RequireRole(constants.RoleAdministrator))
}
