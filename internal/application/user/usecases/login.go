package usecases

import (
	"context"
	"strings"

	"servicedesk/internal/application/user/dto"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResponse, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}
	// unknown email and wrong password are indistinguishable
	if existingUser == nil {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := existingUser.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Infow("password mismatch on login", "user_id", existingUser.ID())
		return nil, errors.NewInvalidCredentialsError()
	}
	if !existingUser.IsActive() {
		uc.logger.Warnw("inactive user attempted to log in", "user_id", existingUser.ID())
		return nil, errors.NewAccountInactiveError()
	}

	pair, err := uc.tokens.Issue(existingUser)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewInternalError("failed to log in")
	}

	uc.logger.Infow("user logged in successfully", "user_id", existingUser.ID())

	return &dto.AuthResponse{
		User:      dto.ToUserResponse(existingUser),
		Access:    pair.AccessToken,
		Refresh:   pair.RefreshToken,
		ExpiresIn: pair.ExpiresIn,
	}, nil
}
