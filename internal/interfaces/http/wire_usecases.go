package http

import (
	srUsecases "servicedesk/internal/application/servicerequest/usecases"
	"servicedesk/internal/application/user/usecases"
	"servicedesk/internal/domain/servicerequest"
	vo "servicedesk/internal/domain/user/valueobjects"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	registerUC     *usecases.RegisterUseCase
	loginUC        *usecases.LoginUseCase
	refreshTokenUC *usecases.RefreshTokenUseCase
	getProfileUC   *usecases.GetProfileUseCase

	// Service requests
	createServiceRequestUC *srUsecases.CreateServiceRequestUseCase
	updateStatusUC         *srUsecases.UpdateServiceRequestStatusUseCase
	deleteServiceRequestUC *srUsecases.DeleteServiceRequestUseCase
	getServiceRequestUC    *srUsecases.GetServiceRequestUseCase
	listServiceRequestsUC  *srUsecases.ListServiceRequestsUseCase
	downloadAttachmentUC   *srUsecases.DownloadAttachmentUseCase
}

func (c *Container) newUseCases() *allUseCases {
	log := c.log
	repos := c.repos
	tokens := &jwtTokenIssuer{svc: c.jwtSvc}
	policy := vo.PasswordPolicy{MinLength: c.cfg.Auth.Password.MinLength}

	return &allUseCases{
		registerUC:     usecases.NewRegisterUseCase(repos.userRepo, c.hasher, policy, log),
		loginUC:        usecases.NewLoginUseCase(repos.userRepo, c.hasher, tokens, log),
		refreshTokenUC: usecases.NewRefreshTokenUseCase(repos.userRepo, tokens, log),
		getProfileUC:   usecases.NewGetProfileUseCase(repos.userRepo, log),

		createServiceRequestUC: srUsecases.NewCreateServiceRequestUseCase(
			repos.serviceRequestRepo,
			c.attachments,
			repos.userRepo,
			servicerequest.NewAssignmentPolicy(nil),
			repos.userRepo,
			c.txMgr,
			c.renderer,
			c.notifier,
			log,
		),
		updateStatusUC: srUsecases.NewUpdateServiceRequestStatusUseCase(repos.serviceRequestRepo, log),
		deleteServiceRequestUC: srUsecases.NewDeleteServiceRequestUseCase(
			repos.serviceRequestRepo, repos.attachmentRepo, c.attachments, c.txMgr, log,
		),
		getServiceRequestUC: srUsecases.NewGetServiceRequestUseCase(
			repos.serviceRequestRepo, repos.attachmentRepo, repos.userRepo, c.renderer, log,
		),
		listServiceRequestsUC: srUsecases.NewListServiceRequestsUseCase(
			repos.serviceRequestRepo, repos.attachmentRepo, repos.userRepo, log,
		),
		downloadAttachmentUC: srUsecases.NewDownloadAttachmentUseCase(
			repos.serviceRequestRepo, repos.attachmentRepo, c.attachments, log,
		),
	}
}
