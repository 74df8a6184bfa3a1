package servicerequest

import (
	"context"
	"io"

	"servicedesk/internal/shared/query"
)

// Repository persists service requests. Lookups return (nil, nil) when no
// row matches.
type Repository interface {
	Create(ctx context.Context, sr *ServiceRequest) error
	GetBySID(ctx context.Context, sid string) (*ServiceRequest, error)
	GetByID(ctx context.Context, id uint) (*ServiceRequest, error)
	// UpdateStatus writes status, updated_at and version for one row; the
	// last concurrent writer wins.
	UpdateStatus(ctx context.Context, sr *ServiceRequest) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*ServiceRequest, int64, error)
}

// ListFilter scopes a listing to one customer or one staff member. Exactly
// one of CustomerID and SupportStaffID is set.
type ListFilter struct {
	CustomerID     *uint
	SupportStaffID *uint
	query.PageFilter
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetBySID(ctx context.Context, sid string) (*Attachment, error)
	GetByID(ctx context.Context, id uint) (*Attachment, error)
	ListByServiceRequestID(ctx context.Context, serviceRequestID uint) ([]*Attachment, error)
	// ListByServiceRequestIDs groups the attachments of several requests by
	// request ID.
	ListByServiceRequestIDs(ctx context.Context, serviceRequestIDs []uint) (map[uint][]*Attachment, error)
	Delete(ctx context.Context, id uint) error
	DeleteByServiceRequestID(ctx context.Context, serviceRequestID uint) error
}

// BlobStorage holds attachment bytes. Put never replaces an existing key
// and reports ErrBlobExists instead; Delete of an absent key succeeds;
// Open of an absent key reports ErrBlobNotFound.
type BlobStorage interface {
	Put(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
