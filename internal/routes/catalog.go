package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runCatalogRouter(g *echo.Group, partidaCtrl *controllers.PartidaController, personnelCtrl *controllers.PersonnelController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(constants.RoleAdministrator)

	g.GET("/partidas", partidaCtrl.GetPartidas)
	g.GET("/partidas/:id", partidaCtrl.FindPartida)
	g.POST("/partidas", partidaCtrl.CreatePartida, adminOnly)
	g.DELETE("/partidas/:id", partidaCtrl.DeletePartida, adminOnly)

	g.GET("/personnel", personnelCtrl.GetPersonnel)
	g.GET("/personnel/:id", personnelCtrl.FindPersonnel)
	g.POST("/personnel", personnelCtrl.CreatePersonnel, adminOnly)
	g.DELETE("/personnel/:id", personnelCtrl.DeletePersonnel, adminOnly)
}
