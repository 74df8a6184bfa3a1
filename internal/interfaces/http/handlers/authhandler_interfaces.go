package handlers

import (
	"servicedesk/internal/application/user/usecases"
)

// Use case interfaces for AuthHandler and ProfileHandler, so both can be
// unit tested with mocks.

type registerUseCase = usecases.RegisterExecutor

type loginUseCase = usecases.LoginExecutor

type refreshTokenUseCase = usecases.RefreshTokenExecutor

type getProfileUseCase = usecases.GetProfileExecutor
