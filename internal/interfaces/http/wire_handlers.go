package http

import (
	"servicedesk/internal/interfaces/http/handlers"
	srHandlers "servicedesk/internal/interfaces/http/handlers/servicerequest"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler           *handlers.AuthHandler
	profileHandler        *handlers.ProfileHandler
	serviceRequestHandler *srHandlers.Handler
}

func (c *Container) newHandlers() *allHandlers {
	ucs := c.ucs
	return &allHandlers{
		authHandler:    handlers.NewAuthHandler(ucs.registerUC, ucs.loginUC, ucs.refreshTokenUC, c.log),
		profileHandler: handlers.NewProfileHandler(ucs.getProfileUC, c.log),
		serviceRequestHandler: srHandlers.NewHandler(
			ucs.createServiceRequestUC,
			ucs.updateStatusUC,
			ucs.deleteServiceRequestUC,
			ucs.getServiceRequestUC,
			ucs.listServiceRequestsUC,
			ucs.downloadAttachmentUC,
			int64(c.cfg.Server.MaxUploadMB)<<20,
			c.log,
		),
	}
}
