package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/application/user/usecases"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/utils"
)

// ProfileHandler serves the authenticated user's own account.
type ProfileHandler struct {
	getProfileUseCase getProfileUseCase
	logger            logger.Interface
}

func NewProfileHandler(getProfileUC getProfileUseCase, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		getProfileUseCase: getProfileUC,
		logger:            logger,
	}
}

// GetProfile handles GET /profile
//
//	@Summary		Get current user profile
//	@Tags			profile
//	@Produce		json
//	@Security		Bearer
//	@Success		200	{object}	utils.APIResponse{data=dto.UserResponse}
//	@Failure		401	{object}	utils.APIResponse	"Unauthorized"
//	@Failure		404	{object}	utils.APIResponse	"User not found"
//	@Router			/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _, err := utils.GetCaller(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getProfileUseCase.Execute(c.Request.Context(), usecases.GetProfileQuery{UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Ping handles GET /ping
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
