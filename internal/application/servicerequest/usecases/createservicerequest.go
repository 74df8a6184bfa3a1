package usecases

import (
	"context"
	"fmt"

	"servicedesk/internal/application/servicerequest/dto"
	"servicedesk/internal/application/servicerequest/services"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

// MaxAttachmentsPerRequest bounds the files accepted with one request.
const MaxAttachmentsPerRequest = 10

type CreateServiceRequestCommand struct {
	Caller      Caller
	Title       string
	Description string
	ServiceType string
	Attachments []services.Upload
}

type CreateServiceRequestUseCase struct {
	repo        servicerequest.Repository
	attachments AttachmentKeeper
	staff       user.StaffDirectory
	policy      *servicerequest.AssignmentPolicy
	users       UserReader
	txMgr       TransactionRunner
	renderer    DescriptionRenderer
	notifier    AssignmentNotifier
	logger      logger.Interface
}

func NewCreateServiceRequestUseCase(
	repo servicerequest.Repository,
	attachments AttachmentKeeper,
	staff user.StaffDirectory,
	policy *servicerequest.AssignmentPolicy,
	users UserReader,
	txMgr TransactionRunner,
	renderer DescriptionRenderer,
	notifier AssignmentNotifier,
	logger logger.Interface,
) *CreateServiceRequestUseCase {
	return &CreateServiceRequestUseCase{
		repo:        repo,
		attachments: attachments,
		staff:       staff,
		policy:      policy,
		users:       users,
		txMgr:       txMgr,
		renderer:    renderer,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *CreateServiceRequestUseCase) Execute(ctx context.Context, cmd CreateServiceRequestCommand) (*dto.ServiceRequestDTO, error) {
	uc.logger.Infow("executing create service request use case",
		"user_id", cmd.Caller.UserID,
		"service_type", cmd.ServiceType,
		"attachments", len(cmd.Attachments),
	)

	if !cmd.Caller.Role.IsCustomer() {
		uc.logger.Warnw("non-customer attempted to create service request", "user_id", cmd.Caller.UserID, "role", cmd.Caller.Role)
		return nil, errors.NewForbiddenError("only customers can create service requests")
	}
	if len(cmd.Attachments) > MaxAttachmentsPerRequest {
		return nil, errors.NewFieldValidationError(map[string]string{
			"attachments": fmt.Sprintf("at most %d files are allowed", MaxAttachmentsPerRequest),
		})
	}

	sr, err := servicerequest.NewServiceRequest(cmd.Caller.UserID, servicerequest.Draft{
		Title:       cmd.Title,
		Description: cmd.Description,
		ServiceType: cmd.ServiceType,
	})
	if err != nil {
		uc.logger.Warnw("invalid create service request command", "user_id", cmd.Caller.UserID, "error", err)
		return nil, validationError(err)
	}

	pool, err := uc.staff.ListSupportStaff(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list support staff", "error", err)
		return nil, errors.NewInternalError("failed to create service request")
	}
	if staffID := uc.policy.Assign(user.StaffIDs(pool)); staffID != nil {
		if err := sr.AssignTo(*staffID); err != nil {
			uc.logger.Errorw("failed to assign support staff", "staff_id", *staffID, "error", err)
			return nil, errors.NewInternalError("failed to create service request")
		}
	} else {
		uc.logger.Warnw("no support staff available, request left unassigned", "sid", sr.SID())
	}

	var stored []*servicerequest.Attachment
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.repo.Create(txCtx, sr); err != nil {
			return fmt.Errorf("failed to save service request: %w", err)
		}
		for _, upload := range cmd.Attachments {
			a, err := uc.attachments.Store(txCtx, sr.ID(), upload)
			if err != nil {
				return err
			}
			stored = append(stored, a)
			if err := sr.AddAttachment(a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create service request", "sid", sr.SID(), "error", err)
		uc.discardBlobs(ctx, stored)
		return nil, errors.NewInternalError("failed to create service request")
	}

	uc.publish(ctx, sr, pool)

	uc.logger.Infow("service request created successfully",
		"sid", sr.SID(),
		"id", sr.ID(),
		"support_staff_id", sr.SupportStaffID(),
		"attachments", len(stored),
	)

	users := loadParticipants(ctx, uc.users, uc.logger, sr)
	return toDetailedDTO(sr, users, uc.renderer, uc.logger), nil
}

// discardBlobs removes blobs whose records were rolled back.
func (uc *CreateServiceRequestUseCase) discardBlobs(ctx context.Context, stored []*servicerequest.Attachment) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, a := range stored {
		if err := uc.attachments.DeleteBlob(cleanupCtx, a); err != nil {
			uc.logger.Warnw("failed to remove blob of rolled back attachment", "key", a.StorageKey(), "error", err)
		}
	}
}

func (uc *CreateServiceRequestUseCase) publish(ctx context.Context, sr *servicerequest.ServiceRequest, pool []user.StaffMember) {
	for _, event := range sr.PullEvents() {
		assigned, ok := event.(servicerequest.ServiceRequestAssignedEvent)
		if !ok || uc.notifier == nil {
			continue
		}
		for _, member := range pool {
			if member.ID != assigned.SupportStaffID {
				continue
			}
			if err := uc.notifier.NotifyAssigned(ctx, member, assigned); err != nil {
				uc.logger.Warnw("failed to notify assigned staff", "sid", sr.SID(), "staff_id", member.ID, "error", err)
			}
			break
		}
	}
}
