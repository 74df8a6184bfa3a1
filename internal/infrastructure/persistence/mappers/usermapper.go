package mappers

import (
	"fmt"

	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/infrastructure/persistence/models"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/biztime"
)

// UserMapper converts between user.User and models.UserModel.
type UserMapper struct{}

func NewUserMapper() UserMapper {
	return UserMapper{}
}

func (UserMapper) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		SID:          u.SID(),
		Email:        u.Email().String(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Status:       u.Status().String(),
		CreatedAt:    biztime.ToMillis(u.CreatedAt()),
		UpdatedAt:    biztime.ToMillis(u.UpdatedAt()),
	}
}

func (UserMapper) ToDomain(m *models.UserModel) (*user.User, error) {
	if m == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(m.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	u, err := user.ReconstructUser(
		m.ID,
		m.SID,
		email,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		authorization.UserRole(m.Role),
		vo.Status(m.Status),
		biztime.FromMillis(m.CreatedAt),
		biztime.FromMillis(m.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", m.ID, err)
	}
	return u, nil
}
