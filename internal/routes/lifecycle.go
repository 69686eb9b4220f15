package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runLifecycleRouter(g *echo.Group, ctrl *controllers.AssignmentController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdministrator, constants.RoleManager)

	g.GET("/assignments", ctrl.GetAssignments)
	g.GET("/assignments/:id", ctrl.FindAssignment)
	g.POST("/assignments", ctrl.CreateAssignment, managers)
	g.POST("/reassignments", ctrl.CreateReassignment, managers)
	g.POST("/devolutions", ctrl.CreateDevolution, managers)
}
