package usecases

import (
	"context"

	"servicedesk/internal/application/servicerequest/dto"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type GetServiceRequestQuery struct {
	Caller     Caller
	RequestSID string
}

type GetServiceRequestUseCase struct {
	repo           servicerequest.Repository
	attachmentRepo servicerequest.AttachmentRepository
	users          UserReader
	renderer       DescriptionRenderer
	logger         logger.Interface
}

func NewGetServiceRequestUseCase(
	repo servicerequest.Repository,
	attachmentRepo servicerequest.AttachmentRepository,
	users UserReader,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *GetServiceRequestUseCase {
	return &GetServiceRequestUseCase{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		users:          users,
		renderer:       renderer,
		logger:         logger,
	}
}

// Execute returns the request only to its customer. Assigned staff read
// requests through the listing.
func (uc *GetServiceRequestUseCase) Execute(ctx context.Context, query GetServiceRequestQuery) (*dto.ServiceRequestDTO, error) {
	sr, err := uc.repo.GetBySID(ctx, query.RequestSID)
	if err != nil {
		uc.logger.Errorw("failed to get service request", "sid", query.RequestSID, "error", err)
		return nil, errors.NewInternalError("failed to get service request")
	}
	if sr == nil {
		uc.logger.Debugw("service request does not exist", "sid", query.RequestSID)
		return nil, errors.NewNotFoundError(notFoundMessage)
	}
	if err := sr.EnsureVisibleTo(query.Caller.UserID); err != nil {
		uc.logger.Infow("service request not owned by caller", "sid", query.RequestSID, "user_id", query.Caller.UserID)
		return nil, errors.NewNotFoundError(notFoundMessage)
	}

	attachments, err := uc.attachmentRepo.ListByServiceRequestID(ctx, sr.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "sid", query.RequestSID, "error", err)
		return nil, errors.NewInternalError("failed to get service request")
	}
	sr.SetAttachments(attachments)

	users := loadParticipants(ctx, uc.users, uc.logger, sr)
	return toDetailedDTO(sr, users, uc.renderer, uc.logger), nil
}
