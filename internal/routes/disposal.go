package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runDisposalRouter(g *echo.Group, ctrl *controllers.DisposalController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(constants.RoleAdministrator)

	g.GET("/disposals", ctrl.GetDisposals)
	g.GET("/disposals/:id", ctrl.FindDisposal)
	g.POST("/disposals", ctrl.CreateDisposal, authMW.RequireRole(constants.RoleAdministrator, constants.RoleManager))
	g.POST("/disposals/:id/resolve", ctrl.ResolveDisposal, adminOnly)
	g.POST("/asset-units/:id/restore", ctrl.RestoreDisposal, adminOnly)
}
