package dto

import (
	"time"

	"servicedesk/internal/domain/user"
)

// UserResponse represents the response for a user
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse is returned by login and token refresh.
type AuthResponse struct {
	User      *UserResponse `json:"user,omitempty"`
	Access    string        `json:"access"`
	Refresh   string        `json:"refresh"`
	ExpiresIn int64         `json:"expires_in"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.SID(),
		Email:       u.Email().String(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		DisplayName: u.DisplayName(),
		Role:        u.Role().String(),
		Status:      u.Status().String(),
		CreatedAt:   u.CreatedAt(),
	}
}
