package mappers

import (
	"fmt"

	"servicedesk/internal/domain/servicerequest"
	vo "servicedesk/internal/domain/servicerequest/valueobjects"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/biztime"
)

type ServiceRequestMapper struct{}

func NewServiceRequestMapper() ServiceRequestMapper {
	return ServiceRequestMapper{}
}

func (ServiceRequestMapper) ToModel(sr *servicerequest.ServiceRequest) *models.ServiceRequestModel {
	return &models.ServiceRequestModel{
		ID:             sr.ID(),
		SID:            sr.SID(),
		CustomerID:     sr.CustomerID(),
		SupportStaffID: sr.SupportStaffID(),
		Title:          sr.Title(),
		Description:    sr.Description(),
		ServiceType:    sr.ServiceType().String(),
		Status:         sr.Status().String(),
		Version:        sr.Version(),
		CreatedAt:      biztime.ToMillis(sr.CreatedAt()),
		UpdatedAt:      biztime.ToMillis(sr.UpdatedAt()),
	}
}

func (ServiceRequestMapper) ToDomain(m *models.ServiceRequestModel) (*servicerequest.ServiceRequest, error) {
	if m == nil {
		return nil, nil
	}
	sr, err := servicerequest.ReconstructServiceRequest(
		m.ID,
		m.SID,
		m.CustomerID,
		m.SupportStaffID,
		m.Title,
		m.Description,
		vo.ServiceType(m.ServiceType),
		vo.Status(m.Status),
		m.Version,
		biztime.FromMillis(m.CreatedAt),
		biztime.FromMillis(m.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct service request %d: %w", m.ID, err)
	}
	return sr, nil
}

func (m ServiceRequestMapper) ToDomainList(list []models.ServiceRequestModel) ([]*servicerequest.ServiceRequest, error) {
	out := make([]*servicerequest.ServiceRequest, 0, len(list))
	for i := range list {
		sr, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, nil
}

type AttachmentMapper struct{}

func NewAttachmentMapper() AttachmentMapper {
	return AttachmentMapper{}
}

func (AttachmentMapper) ToModel(a *servicerequest.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:               a.ID(),
		SID:              a.SID(),
		ServiceRequestID: a.ServiceRequestID(),
		FileName:         a.FileName(),
		StorageKey:       a.StorageKey(),
		ContentType:      a.ContentType(),
		Size:             a.Size(),
		UploadedAt:       biztime.ToMillis(a.UploadedAt()),
	}
}

func (AttachmentMapper) ToDomain(m *models.AttachmentModel) (*servicerequest.Attachment, error) {
	if m == nil {
		return nil, nil
	}
	a, err := servicerequest.ReconstructAttachment(
		m.ID,
		m.SID,
		m.ServiceRequestID,
		m.FileName,
		m.StorageKey,
		m.ContentType,
		m.Size,
		biztime.FromMillis(m.UploadedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct attachment %d: %w", m.ID, err)
	}
	return a, nil
}
