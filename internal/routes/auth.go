package routes

import (
	"github.com/labstack/echo/v4"

	"asset-system/internal/controllers"
	"asset-system/pkg/constants"
	"asset-system/pkg/middleware"
)

func runAuthRouter(public *echo.Group, secure *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	public.POST("/auth/login", ctrl.Login)
	public.POST("/auth/refresh", ctrl.Refresh)

	secure.GET("/auth/me", ctrl.Me)
	secure.POST("/auth/register", ctrl.Register, authMW.RequireRole(constants.RoleAdministrator))
}
