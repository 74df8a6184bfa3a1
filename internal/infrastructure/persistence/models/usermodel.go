package models

import (
	"servicedesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	SID          string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	FirstName    string `gorm:"size:100;not null;default:''"`
	LastName     string `gorm:"size:100;not null;default:''"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;index:idx_users_role_status"`
	Status       string `gorm:"size:20;not null;index:idx_users_role_status"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
