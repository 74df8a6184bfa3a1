package http

import (
	"gorm.io/gorm"

	"servicedesk/internal/infrastructure/repository"
	"servicedesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo           *repository.UserRepository
	serviceRequestRepo *repository.ServiceRequestRepository
	attachmentRepo     *repository.AttachmentRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:           repository.NewUserRepository(db, log),
		serviceRequestRepo: repository.NewServiceRequestRepository(db),
		attachmentRepo:     repository.NewAttachmentRepository(db),
	}
}
