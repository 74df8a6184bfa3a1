package usecases

import (
	"context"
	"io"

	"servicedesk/internal/application/servicerequest/dto"
	"servicedesk/internal/application/servicerequest/services"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/authorization"
)

// Caller is the authenticated identity an operation runs for.
type Caller struct {
	UserID uint
	Role   authorization.UserRole
}

type CreateServiceRequestExecutor interface {
	Execute(ctx context.Context, cmd CreateServiceRequestCommand) (*dto.ServiceRequestDTO, error)
}

type UpdateServiceRequestStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateServiceRequestStatusCommand) (*UpdateServiceRequestStatusResult, error)
}

type DeleteServiceRequestExecutor interface {
	Execute(ctx context.Context, cmd DeleteServiceRequestCommand) error
}

type GetServiceRequestExecutor interface {
	Execute(ctx context.Context, query GetServiceRequestQuery) (*dto.ServiceRequestDTO, error)
}

type ListServiceRequestsExecutor interface {
	Execute(ctx context.Context, query ListServiceRequestsQuery) (*dto.ListServiceRequestsResponse, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error)
}

// TransactionRunner runs fn in one database transaction carried by the
// context passed to fn.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AttachmentKeeper is the part of services.AttachmentStore the use cases
// depend on.
type AttachmentKeeper interface {
	Store(ctx context.Context, serviceRequestID uint, upload services.Upload) (*servicerequest.Attachment, error)
	DeleteBlob(ctx context.Context, a *servicerequest.Attachment) error
	Retrieve(ctx context.Context, a *servicerequest.Attachment) (io.ReadCloser, error)
}

// AssignmentNotifier tells a staff member about a request assigned to them.
type AssignmentNotifier interface {
	NotifyAssigned(ctx context.Context, staff user.StaffMember, event servicerequest.ServiceRequestAssignedEvent) error
}

type UserReader interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error)
}

// DescriptionRenderer turns a markdown description into safe HTML.
type DescriptionRenderer interface {
	RenderHTML(markdown string) (string, error)
}
