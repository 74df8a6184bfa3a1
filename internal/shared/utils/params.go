package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID from a path parameter. A malformed ID
// is reported as not found so that probing reveals nothing.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if err := id.Validate(sid, prefix); err != nil {
		return "", errors.NewNotFoundError(fmt.Sprintf("%s not found", entityName))
	}
	return sid, nil
}
