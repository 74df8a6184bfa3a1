package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/shared/authorization"
	apperrors "servicedesk/internal/shared/errors"
)

func TestRefreshTokenUseCase_Execute(t *testing.T) {
	active := existingUser(3, "sam@example.com", "passw0rd", authorization.RoleCustomer, vo.StatusActive)
	inactive := existingUser(4, "old@example.com", "passw0rd", authorization.RoleCustomer, vo.StatusInactive)

	tests := []struct {
		name     string
		repo     *mockUserRepository
		verify   func(string) (uint, error)
		wantType apperrors.ErrorType
	}{
		{
			name:   "valid token",
			repo:   repoWith(active),
			verify: func(string) (uint, error) { return 3, nil },
		},
		{
			name:     "expired token passes through",
			repo:     repoWith(active),
			verify:   func(string) (uint, error) { return 0, apperrors.NewTokenExpiredError() },
			wantType: apperrors.ErrorTypeTokenExpired,
		},
		{
			name:     "opaque failure becomes invalid token",
			repo:     repoWith(active),
			verify:   func(string) (uint, error) { return 0, errors.New("garbage") },
			wantType: apperrors.ErrorTypeTokenInvalid,
		},
		{
			name:     "user deleted",
			repo:     repoWith(nil),
			verify:   func(string) (uint, error) { return 3, nil },
			wantType: apperrors.ErrorTypeTokenInvalid,
		},
		{
			name:     "user deactivated",
			repo:     repoWith(inactive),
			verify:   func(string) (uint, error) { return 4, nil },
			wantType: apperrors.ErrorTypeAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRefreshTokenUseCase(tt.repo, &mockTokenIssuer{VerifyRefreshFunc: tt.verify}, discardLogger())

			result, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "token"})

			if tt.wantType == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, result.Access)
				assert.NotEmpty(t, result.Refresh)
				return
			}
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
		})
	}
}

func TestGetProfileUseCase_Execute(t *testing.T) {
	u := existingUser(3, "sam@example.com", "passw0rd", authorization.RoleCustomer, vo.StatusActive)
	uc := NewGetProfileUseCase(repoWith(u), discardLogger())

	result, err := uc.Execute(context.Background(), GetProfileQuery{UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", result.Email)
	assert.Equal(t, "Sam Staff", result.DisplayName)

	_, err = uc.Execute(context.Background(), GetProfileQuery{UserID: 99})
	assert.True(t, apperrors.IsNotFoundError(err))
}
