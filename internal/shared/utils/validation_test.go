package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicedesk/internal/shared/errors"
)

type sampleRequest struct {
	Email  string `json:"email" binding:"required,email" validate:"required,email"`
	Status string `json:"status" validate:"required,oneof=pending in_progress resolved"`
	Title  string `form:"title" validate:"min=5"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "a@b.co", Status: "pending", Title: "Fix leak"})
	assert.NoError(t, err)

	err = ValidateStruct(sampleRequest{Email: "not-an-email", Status: "closed", Title: "abc"})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
	assert.Equal(t, "must be one of [pending in_progress resolved]", appErr.Fields["status"])
	assert.Equal(t, "must be at least 5 characters long", appErr.Fields["title"])
}
