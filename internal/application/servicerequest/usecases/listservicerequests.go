package usecases

import (
	"context"

	"servicedesk/internal/application/servicerequest/dto"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/query"
)

type ListServiceRequestsQuery struct {
	Caller   Caller
	Page     int
	PageSize int
}

type ListServiceRequestsUseCase struct {
	repo           servicerequest.Repository
	attachmentRepo servicerequest.AttachmentRepository
	users          UserReader
	logger         logger.Interface
}

func NewListServiceRequestsUseCase(
	repo servicerequest.Repository,
	attachmentRepo servicerequest.AttachmentRepository,
	users UserReader,
	logger logger.Interface,
) *ListServiceRequestsUseCase {
	return &ListServiceRequestsUseCase{
		repo:           repo,
		attachmentRepo: attachmentRepo,
		users:          users,
		logger:         logger,
	}
}

func (uc *ListServiceRequestsUseCase) Execute(ctx context.Context, q ListServiceRequestsQuery) (*dto.ListServiceRequestsResponse, error) {
	filter := servicerequest.ListFilter{PageFilter: query.NewPageFilter(q.Page, q.PageSize)}
	callerID := q.Caller.UserID

	switch {
	case q.Caller.Role.IsSupportStaff():
		filter.SupportStaffID = &callerID
	case q.Caller.Role.IsCustomer():
		filter.CustomerID = &callerID
	default:
		uc.logger.Warnw("role not allowed to list service requests", "user_id", callerID, "role", q.Caller.Role)
		return nil, errors.NewForbiddenError("not allowed to list service requests")
	}

	requests, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list service requests", "user_id", callerID, "error", err)
		return nil, errors.NewInternalError("failed to list service requests")
	}

	if len(requests) > 0 {
		ids := make([]uint, len(requests))
		for i, sr := range requests {
			ids[i] = sr.ID()
		}
		grouped, err := uc.attachmentRepo.ListByServiceRequestIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorw("failed to load attachments for listing", "user_id", callerID, "error", err)
			return nil, errors.NewInternalError("failed to list service requests")
		}
		for _, sr := range requests {
			sr.SetAttachments(grouped[sr.ID()])
		}
	}

	users := loadParticipants(ctx, uc.users, uc.logger, requests...)
	items := make([]*dto.ServiceRequestDTO, 0, len(requests))
	for _, sr := range requests {
		items = append(items, dto.ToServiceRequestDTO(sr, users))
	}

	uc.logger.Debugw("service requests listed", "user_id", callerID, "total", total, "page", filter.Page)

	return &dto.ListServiceRequestsResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: filter.TotalPages(total),
	}, nil
}
