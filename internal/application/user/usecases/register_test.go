package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	apperrors "servicedesk/internal/shared/errors"
)

func newRegister(repo *mockUserRepository) *RegisterUseCase {
	return NewRegisterUseCase(repo, plainHasher{}, vo.DefaultPasswordPolicy(), discardLogger())
}

func TestRegisterUseCase_Execute_DefaultsToCustomer(t *testing.T) {
	repo := &mockUserRepository{}

	result, err := newRegister(repo).Execute(context.Background(), RegisterCommand{
		Email:     " Carol@Example.com ",
		Password:  "passw0rd",
		FirstName: "Carol",
		LastName:  "Jones",
	})

	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", result.Email)
	assert.Equal(t, "customer", result.Role)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "hashed:passw0rd", repo.created[0].PasswordHash())
}

func TestRegisterUseCase_Execute_SupportStaff(t *testing.T) {
	result, err := newRegister(&mockUserRepository{}).Execute(context.Background(), RegisterCommand{
		Email: "s@example.com", Password: "passw0rd", Role: "support_staff",
	})

	require.NoError(t, err)
	assert.Equal(t, "support_staff", result.Role)
}

func TestRegisterUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name      string
		cmd       RegisterCommand
		wantField string
	}{
		{name: "admin not self assignable", cmd: RegisterCommand{Email: "a@example.com", Password: "passw0rd", Role: "admin"}, wantField: "role"},
		{name: "unknown role", cmd: RegisterCommand{Email: "a@example.com", Password: "passw0rd", Role: "boss"}, wantField: "role"},
		{name: "bad email", cmd: RegisterCommand{Email: "nope", Password: "passw0rd"}, wantField: "email"},
		{name: "short password", cmd: RegisterCommand{Email: "a@example.com", Password: "a1"}, wantField: "password"},
		{name: "password without digit", cmd: RegisterCommand{Email: "a@example.com", Password: "password"}, wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{}
			_, err := newRegister(repo).Execute(context.Background(), tt.cmd)

			require.True(t, apperrors.IsValidationError(err))
			assert.Contains(t, apperrors.GetAppError(err).Fields, tt.wantField)
			assert.Empty(t, repo.created)
		})
	}
}

func TestRegisterUseCase_Execute_DuplicateEmail(t *testing.T) {
	t.Run("detected up front", func(t *testing.T) {
		repo := &mockUserRepository{
			ExistsByEmailFunc: func(context.Context, string) (bool, error) { return true, nil },
		}
		_, err := newRegister(repo).Execute(context.Background(), RegisterCommand{Email: "a@example.com", Password: "passw0rd"})
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("lost race on insert", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *user.User) error {
				return errors.New("UNIQUE constraint failed: users.email")
			},
		}
		_, err := newRegister(repo).Execute(context.Background(), RegisterCommand{Email: "a@example.com", Password: "passw0rd"})
		assert.True(t, apperrors.IsConflictError(err))
	})
}
