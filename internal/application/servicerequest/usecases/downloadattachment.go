package usecases

import (
	"context"
	stderrors "errors"
	"io"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	Caller        Caller
	AttachmentSID string
}

// DownloadAttachmentResult carries an open blob; the caller closes Content.
type DownloadAttachmentResult struct {
	Content     io.ReadCloser
	FileName    string
	ContentType string
	Size        int64
}

type DownloadAttachmentUseCase struct {
	repo           servicerequest.Repository
	attachmentRepo servicerequest.AttachmentRepository
	attachments    AttachmentKeeper
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	repo servicerequest.Repository,
	attachmentRepo servicerequest.AttachmentRepository,
	attachments AttachmentKeeper,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		attachments:    attachments,
		logger:         logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	uc.logger.Infow("executing download attachment use case", "attachment_sid", query.AttachmentSID, "user_id", query.Caller.UserID)

	a, err := uc.attachmentRepo.GetBySID(ctx, query.AttachmentSID)
	if err != nil {
		uc.logger.Errorw("failed to get attachment", "attachment_sid", query.AttachmentSID, "error", err)
		return nil, errors.NewInternalError("failed to download attachment")
	}
	if a == nil {
		return nil, errors.NewNotFoundError("attachment not found")
	}

	sr, err := uc.repo.GetByID(ctx, a.ServiceRequestID())
	if err != nil {
		uc.logger.Errorw("failed to get owning service request", "attachment_sid", a.SID(), "error", err)
		return nil, errors.NewInternalError("failed to download attachment")
	}
	if sr == nil {
		uc.logger.Errorw("attachment has no owning service request", "attachment_sid", a.SID(), "service_request_id", a.ServiceRequestID())
		return nil, errors.NewNotFoundError("attachment not found")
	}

	if err := sr.EnsureDownloadableBy(query.Caller.UserID); err != nil {
		uc.logger.Warnw("caller may not download attachment", "attachment_sid", a.SID(), "user_id", query.Caller.UserID)
		return nil, errors.NewForbiddenError("you do not have permission to download this file")
	}

	content, err := uc.attachments.Retrieve(ctx, a)
	if err != nil {
		if stderrors.Is(err, servicerequest.ErrFileMissing) {
			return nil, errors.NewNotFoundError("attachment not found").WithCause(err)
		}
		uc.logger.Errorw("failed to open attachment", "attachment_sid", a.SID(), "error", err)
		return nil, errors.NewInternalError("failed to download attachment")
	}

	uc.logger.Infow("attachment download started", "attachment_sid", a.SID(), "user_id", query.Caller.UserID)

	return &DownloadAttachmentResult{
		Content:     content,
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		Size:        a.Size(),
	}, nil
}
