package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runAssetRouter(g *echo.Group, modelCtrl *controllers.AssetModelController, unitCtrl *controllers.AssetUnitController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdministrator, constants.RoleManager)

	g.GET("/asset-models", modelCtrl.GetAssetModels)
	g.GET("/asset-models/:id", modelCtrl.FindAssetModel)
	g.POST("/asset-models", modelCtrl.CreateAssetModel, managers)
	g.DELETE("/asset-models/:id", modelCtrl.DeleteAssetModel, authMW.RequireRole(constants.RoleAdministrator))

	g.GET("/asset-units", unitCtrl.GetAssetUnits)
	g.GET("/asset-units/:id", unitCtrl.FindAssetUnit)
	g.GET("/asset-units/:id/trail", unitCtrl.GetAssetTrail)
	g.GET("/asset-units/:id/conditions", unitCtrl.GetConditionHistory)
	g.POST("/asset-units/:id/condition", unitCtrl.ChangeCondition, managers)
}
