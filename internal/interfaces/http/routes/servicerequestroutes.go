package routes

import (
	"github.com/gin-gonic/gin"

	"servicedesk/internal/infrastructure/permission"
	srhandlers "servicedesk/internal/interfaces/http/handlers/servicerequest"
	"servicedesk/internal/interfaces/http/middleware"
)

type ServiceRequestRouteConfig struct {
	ServiceRequestHandler *srhandlers.Handler
	AuthMiddleware        *middleware.AuthMiddleware
	PermissionMiddleware  *middleware.PermissionMiddleware
}

// SetupServiceRequestRoutes registers the service request and attachment
// routes. The role policy is a coarse gate; ownership and assignment are
// checked by the use cases.
func SetupServiceRequestRoutes(engine *gin.Engine, cfg *ServiceRequestRouteConfig) {
	h := cfg.ServiceRequestHandler
	allow := cfg.PermissionMiddleware.RequirePermission

	requests := engine.Group("/service-requests")
	requests.Use(cfg.AuthMiddleware.RequireAuth())
	{
		requests.POST("",
			allow(permission.ResourceServiceRequest, permission.ActionCreate),
			h.CreateServiceRequest)
		requests.GET("",
			allow(permission.ResourceServiceRequest, permission.ActionList),
			h.ListServiceRequests)

		requests.PATCH("/:id/status",
			allow(permission.ResourceServiceRequest, permission.ActionUpdateStatus),
			h.UpdateServiceRequestStatus)

		requests.GET("/:id",
			allow(permission.ResourceServiceRequest, permission.ActionRead),
			h.GetServiceRequest)
		requests.DELETE("/:id",
			allow(permission.ResourceServiceRequest, permission.ActionDelete),
			h.DeleteServiceRequest)
	}

	attachments := engine.Group("/attachments")
	attachments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		attachments.GET("/:id/download",
			allow(permission.ResourceAttachment, permission.ActionDownload),
			h.DownloadAttachment)
	}
}
