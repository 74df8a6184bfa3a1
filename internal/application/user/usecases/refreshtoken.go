package usecases

import (
	"context"

	"servicedesk/internal/application/user/dto"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	tokens TokenIssuer,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Execute re-reads the user so that deactivation and role changes apply
// to the new tokens.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.AuthResponse, error) {
	userID, err := uc.tokens.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.NewTokenInvalidError()
	}

	existingUser, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if existingUser == nil {
		uc.logger.Warnw("user not found during token refresh", "user_id", userID)
		return nil, errors.NewTokenInvalidError()
	}
	if !existingUser.IsActive() {
		uc.logger.Warnw("inactive user attempted token refresh", "user_id", userID)
		return nil, errors.NewAccountInactiveError()
	}

	pair, err := uc.tokens.Issue(existingUser)
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}

	uc.logger.Infow("token refreshed successfully", "user_id", userID)

	return &dto.AuthResponse{
		Access:    pair.AccessToken,
		Refresh:   pair.RefreshToken,
		ExpiresIn: pair.ExpiresIn,
	}, nil
}
