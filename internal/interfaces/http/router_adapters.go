package http

import (
	"errors"

	"servicedesk/internal/application/user/usecases"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/infrastructure/auth"
	apperrors "servicedesk/internal/shared/errors"
)

// jwtTokenIssuer adapts auth.JWTService to usecases.TokenIssuer.
type jwtTokenIssuer struct {
	svc *auth.JWTService
}

func (a *jwtTokenIssuer) Issue(u *user.User) (*usecases.TokenPair, error) {
	pair, err := a.svc.Generate(auth.Identity{
		UserID:  u.ID(),
		UserSID: u.SID(),
		Role:    u.Role(),
	})
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *jwtTokenIssuer) VerifyRefresh(refreshToken string) (uint, error) {
	claims, err := a.svc.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return 0, apperrors.NewTokenExpiredError()
		}
		return 0, apperrors.NewTokenInvalidError().WithCause(err)
	}
	return claims.UserID, nil
}
