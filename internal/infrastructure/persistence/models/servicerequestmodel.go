package models

import (
	"servicedesk/internal/shared/constants"
)

// ServiceRequestModel stores timestamps as Unix milliseconds written by
// the domain; gorm does not manage them.
type ServiceRequestModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	CustomerID     uint   `gorm:"not null;index:idx_sr_customer_created,priority:1"`
	SupportStaffID *uint  `gorm:"index:idx_sr_staff_created,priority:1"`
	Title          string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text;not null"`
	ServiceType    string `gorm:"size:20;not null"`
	Status         string `gorm:"size:20;not null;index"`
	Version        int    `gorm:"not null;default:1"`
	CreatedAt      int64  `gorm:"not null;index:idx_sr_customer_created,priority:2;index:idx_sr_staff_created,priority:2"`
	UpdatedAt      int64  `gorm:"not null"`

	Attachments []AttachmentModel `gorm:"foreignKey:ServiceRequestID;constraint:OnDelete:CASCADE"`
}

func (ServiceRequestModel) TableName() string {
	return constants.TableServiceRequests
}

type AttachmentModel struct {
	ID               uint   `gorm:"primaryKey"`
	SID              string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	ServiceRequestID uint   `gorm:"not null;index"`
	FileName         string `gorm:"size:255;not null"`
	StorageKey       string `gorm:"uniqueIndex;size:255;not null"`
	ContentType      string `gorm:"size:127;not null"`
	Size             int64  `gorm:"not null"`
	UploadedAt       int64  `gorm:"not null"`
}

func (AttachmentModel) TableName() string {
	return constants.TableServiceRequestAttachments
}

// All returns every model AutoMigrate manages, parents first.
func All() []any {
	return []any{
		&UserModel{},
		&ServiceRequestModel{},
		&AttachmentModel{},
	}
}
