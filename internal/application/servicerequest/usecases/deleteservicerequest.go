package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type DeleteServiceRequestCommand struct {
	Caller     Caller
	RequestSID string
}

type DeleteServiceRequestUseCase struct {
	repo           servicerequest.Repository
	attachmentRepo servicerequest.AttachmentRepository
	attachments    AttachmentKeeper
	txMgr          TransactionRunner
	logger         logger.Interface
}

func NewDeleteServiceRequestUseCase(
	repo servicerequest.Repository,
	attachmentRepo servicerequest.AttachmentRepository,
	attachments AttachmentKeeper,
	txMgr TransactionRunner,
	logger logger.Interface,
) *DeleteServiceRequestUseCase {
	return &DeleteServiceRequestUseCase{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		attachments:    attachments,
		txMgr:          txMgr,
		logger:         logger,
	}
}

// Execute removes every attachment blob one by one, continuing past
// failures, and then deletes the attachment records and the request in a
// single transaction.
func (uc *DeleteServiceRequestUseCase) Execute(ctx context.Context, cmd DeleteServiceRequestCommand) error {
	uc.logger.Infow("executing delete service request use case", "sid", cmd.RequestSID, "user_id", cmd.Caller.UserID)

	sr, err := uc.repo.GetBySID(ctx, cmd.RequestSID)
	if err != nil {
		uc.logger.Errorw("failed to get service request", "sid", cmd.RequestSID, "error", err)
		return errors.NewInternalError("failed to delete service request")
	}
	if sr == nil {
		uc.logger.Infow("service request does not exist", "sid", cmd.RequestSID)
		return errors.NewNotFoundError(notFoundMessage)
	}

	if err := sr.EnsureDeletableBy(cmd.Caller.UserID); err != nil {
		switch {
		case stderrors.Is(err, servicerequest.ErrNotOwner):
			uc.logger.Infow("service request not owned by caller", "sid", cmd.RequestSID, "user_id", cmd.Caller.UserID)
			return errors.NewNotFoundError(notFoundMessage)
		case stderrors.Is(err, servicerequest.ErrNotPending):
			uc.logger.Infow("refusing to delete non-pending service request", "sid", cmd.RequestSID, "status", sr.Status())
			return errors.NewForbiddenError("only pending service requests can be deleted")
		default:
			return errors.NewInternalError("failed to delete service request")
		}
	}

	attachments, err := uc.attachmentRepo.ListByServiceRequestID(ctx, sr.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "sid", cmd.RequestSID, "error", err)
		return errors.NewInternalError("failed to delete service request")
	}

	for _, a := range attachments {
		if err := uc.attachments.DeleteBlob(ctx, a); err != nil {
			uc.logger.Warnw("failed to delete attachment blob, continuing", "attachment_sid", a.SID(), "error", err)
		}
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.DeleteByServiceRequestID(txCtx, sr.ID()); err != nil {
			return fmt.Errorf("failed to delete attachment records: %w", err)
		}
		if err := uc.repo.Delete(txCtx, sr.ID()); err != nil {
			return fmt.Errorf("failed to delete service request: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete service request", "sid", cmd.RequestSID, "error", err)
		return errors.NewInternalError("failed to delete service request")
	}

	uc.logger.Infow("service request deleted successfully", "sid", cmd.RequestSID, "attachments", len(attachments))
	return nil
}
