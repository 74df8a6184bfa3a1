package usecases

import (
	"context"
	"fmt"

	"servicedesk/internal/application/user/dto"
	"servicedesk/internal/domain/user"
	vo "servicedesk/internal/domain/user/valueobjects"
	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type RegisterCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

type RegisterUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	policy   vo.PasswordPolicy
	logger   logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	policy vo.PasswordPolicy,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		policy:   policy,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserResponse, error) {
	fields := map[string]string{}

	role, err := authorization.ParseUserRole(cmd.Role)
	if err != nil || !role.IsSelfAssignable() {
		fields["role"] = fmt.Sprintf("must be one of [%s, %s]", authorization.RoleCustomer, authorization.RoleSupportStaff)
	}
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		fields["email"] = err.Error()
	}
	if err := uc.policy.Validate(cmd.Password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, errors.NewFieldValidationError(fields)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}
	if exists {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	newUser, err := user.NewUser(email, cmd.FirstName, cmd.LastName, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := newUser.SetPassword(cmd.Password, uc.policy, uc.hasher); err != nil {
		uc.logger.Errorw("failed to set password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a user with this email already exists")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	uc.logger.Infow("user registered successfully", "user_id", newUser.ID(), "sid", newUser.SID(), "role", role)
	return dto.ToUserResponse(newUser), nil
}
