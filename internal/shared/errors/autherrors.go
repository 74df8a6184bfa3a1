package errors

import "net/http"

// Authentication error types. All of them answer 401 except
// ErrorTypeAccountInactive, which answers 403.
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountInactive    ErrorType = "account_inactive"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
)

// NewInvalidCredentialsError does not say whether the email or the
// password was wrong.
func NewInvalidCredentialsError() *AppError {
	return newAppError(ErrorTypeInvalidCredentials, http.StatusUnauthorized, "Invalid email or password", nil)
}

func NewAccountInactiveError() *AppError {
	return newAppError(ErrorTypeAccountInactive, http.StatusForbidden, "Account is not active", nil)
}

func NewTokenExpiredError() *AppError {
	return newAppError(ErrorTypeTokenExpired, http.StatusUnauthorized, "Token has expired", nil)
}

func NewTokenInvalidError(details ...string) *AppError {
	return newAppError(ErrorTypeTokenInvalid, http.StatusUnauthorized, "Invalid token", details)
}
