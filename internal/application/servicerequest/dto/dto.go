package dto

import (
	"fmt"
	"time"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/mapper"
)

// UserSummaryDTO identifies a customer or support staff member on a request.
type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AttachmentDTO struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"download_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ServiceRequestDTO struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"description_html,omitempty"`
	ServiceType     string          `json:"service_type"`
	Status          string          `json:"status"`
	Customer        *UserSummaryDTO `json:"customer"`
	SupportStaff    *UserSummaryDTO `json:"support_staff"`
	Version         int             `json:"version"`
	Attachments     []AttachmentDTO `json:"attachments"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListServiceRequestsResponse is one page of a caller's requests.
type ListServiceRequestsResponse struct {
	Items      []*ServiceRequestDTO `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// DownloadURL is the API path that streams attachment sid.
func DownloadURL(sid string) string {
	return fmt.Sprintf("/attachments/%s/download", sid)
}

func ToAttachmentDTO(a *servicerequest.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.SID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		Size:        a.Size(),
		DownloadURL: DownloadURL(a.SID()),
		UploadedAt:  a.UploadedAt(),
	}
}

func ToUserSummaryDTO(u *user.User) *UserSummaryDTO {
	if u == nil {
		return nil
	}
	return &UserSummaryDTO{
		ID:    u.SID(),
		Name:  u.DisplayName(),
		Email: u.Email().String(),
	}
}

// ToServiceRequestDTO converts sr; users resolves the customer and the
// support staff by internal ID and may miss either.
func ToServiceRequestDTO(sr *servicerequest.ServiceRequest, users map[uint]*user.User) *ServiceRequestDTO {
	if sr == nil {
		return nil
	}

	result := &ServiceRequestDTO{
		ID:          sr.SID(),
		Title:       sr.Title(),
		Description: sr.Description(),
		ServiceType: sr.ServiceType().String(),
		Status:      sr.Status().String(),
		Customer:    ToUserSummaryDTO(users[sr.CustomerID()]),
		Version:     sr.Version(),
		Attachments: mapper.MapSlice(sr.Attachments(), ToAttachmentDTO),
		CreatedAt:   sr.CreatedAt(),
		UpdatedAt:   sr.UpdatedAt(),
	}
	if staffID := sr.SupportStaffID(); staffID != nil {
		result.SupportStaff = ToUserSummaryDTO(users[*staffID])
	}
	return result
}
