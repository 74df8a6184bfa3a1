package routes

import (
	"github.com/gin-gonic/gin"

	"servicedesk/internal/infrastructure/permission"
	"servicedesk/internal/interfaces/http/handlers"
	"servicedesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	ProfileHandler       *handlers.ProfileHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	engine.GET("/profile",
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequirePermission(permission.ResourceProfile, permission.ActionRead),
		cfg.ProfileHandler.GetProfile)
}
