package usecases

import (
	"context"

	"servicedesk/internal/application/user/dto"
	"servicedesk/internal/domain/user"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer issues bearer tokens for a user and reads the user ID back
// out of a refresh token. VerifyRefresh reports failures as *errors.AppError.
type TokenIssuer interface {
	Issue(u *user.User) (*TokenPair, error)
	VerifyRefresh(refreshToken string) (uint, error)
}

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserResponse, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResponse, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.AuthResponse, error)
}

type GetProfileExecutor interface {
	Execute(ctx context.Context, query GetProfileQuery) (*dto.UserResponse, error)
}
