package utils

import (
	"github.com/gin-gonic/gin"

	"servicedesk/internal/shared/authorization"
	"servicedesk/internal/shared/constants"
	"servicedesk/internal/shared/errors"
)

// GetCaller returns the identity the auth middleware stored on c.
func GetCaller(c *gin.Context) (uint, authorization.UserRole, error) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, "", errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	return userID, role, nil
}
