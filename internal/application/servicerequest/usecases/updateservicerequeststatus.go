package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"servicedesk/internal/domain/servicerequest"
	vo "servicedesk/internal/domain/servicerequest/valueobjects"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type UpdateServiceRequestStatusCommand struct {
	Caller     Caller
	RequestSID string
	Status     string
}

type UpdateServiceRequestStatusResult struct {
	SID       string    `json:"id"`
	OldStatus string    `json:"old_status"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateServiceRequestStatusUseCase struct {
	repo   servicerequest.Repository
	logger logger.Interface
}

func NewUpdateServiceRequestStatusUseCase(
	repo servicerequest.Repository,
	logger logger.Interface,
) *UpdateServiceRequestStatusUseCase {
	return &UpdateServiceRequestStatusUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *UpdateServiceRequestStatusUseCase) Execute(ctx context.Context, cmd UpdateServiceRequestStatusCommand) (*UpdateServiceRequestStatusResult, error) {
	uc.logger.Infow("executing update service request status use case",
		"sid", cmd.RequestSID,
		"user_id", cmd.Caller.UserID,
		"status", cmd.Status,
	)

	// role is checked before the status value so customers always get 403
	if !cmd.Caller.Role.IsSupportStaff() {
		uc.logger.Warnw("non-staff attempted to update status", "user_id", cmd.Caller.UserID, "role", cmd.Caller.Role)
		return nil, errors.NewForbiddenError("only support staff can update request status")
	}

	status, err := vo.ParseStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewFieldValidationError(map[string]string{
			"status": fmt.Sprintf("must be one of [%s]", vo.StatusChoices()),
		})
	}

	sr, err := uc.repo.GetBySID(ctx, cmd.RequestSID)
	if err != nil {
		uc.logger.Errorw("failed to get service request", "sid", cmd.RequestSID, "error", err)
		return nil, errors.NewInternalError("failed to update service request")
	}
	if sr == nil {
		uc.logger.Infow("service request does not exist", "sid", cmd.RequestSID)
		return nil, errors.NewNotFoundError(notFoundMessage)
	}

	oldStatus := sr.Status()
	changed, err := sr.ChangeStatus(status, cmd.Caller.UserID)
	if err != nil {
		if stderrors.Is(err, servicerequest.ErrNotAssignee) {
			uc.logger.Infow("service request not assigned to caller", "sid", cmd.RequestSID, "user_id", cmd.Caller.UserID)
			return nil, errors.NewNotFoundError(notFoundMessage)
		}
		uc.logger.Errorw("failed to change status", "sid", cmd.RequestSID, "error", err)
		return nil, validationError(err)
	}

	if changed {
		if err := uc.repo.UpdateStatus(ctx, sr); err != nil {
			uc.logger.Errorw("failed to persist status", "sid", cmd.RequestSID, "error", err)
			return nil, errors.NewInternalError("failed to update service request")
		}
		uc.logger.Infow("service request status updated successfully",
			"sid", sr.SID(),
			"old_status", oldStatus,
			"new_status", sr.Status(),
		)
	} else {
		uc.logger.Infow("service request status unchanged", "sid", sr.SID(), "status", sr.Status())
	}

	return &UpdateServiceRequestStatusResult{
		SID:       sr.SID(),
		OldStatus: oldStatus.String(),
		Status:    sr.Status().String(),
		Version:   sr.Version(),
		UpdatedAt: sr.UpdatedAt(),
	}, nil
}
