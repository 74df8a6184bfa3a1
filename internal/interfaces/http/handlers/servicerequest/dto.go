package servicerequest

import (
	"io"
	"mime/multipart"

	"servicedesk/internal/application/servicerequest/services"
	"servicedesk/internal/application/servicerequest/usecases"
)

// CreateServiceRequestRequest is bound from a multipart form or a JSON
// body. Field rules are enforced by the domain so every failure is
// reported together.
type CreateServiceRequestRequest struct {
	Title       string `form:"title" json:"title" example:"Boiler is leaking"`
	Description string `form:"description" json:"description" example:"Water collects under the boiler every morning."`
	ServiceType string `form:"service_type" json:"service_type" example:"repair" enums:"installation,maintenance,repair"`
}

func (r CreateServiceRequestRequest) ToCommand(caller usecases.Caller, files []*multipart.FileHeader) usecases.CreateServiceRequestCommand {
	uploads := make([]services.Upload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, services.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return usecases.CreateServiceRequestCommand{
		Caller:      caller,
		Title:       r.Title,
		Description: r.Description,
		ServiceType: r.ServiceType,
		Attachments: uploads,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" example:"in_progress" enums:"pending,in_progress,resolved"`
}
