package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/application/user/usecases"
	"servicedesk/internal/shared/logger"
	"servicedesk/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase     registerUseCase
	loginUseCase        loginUseCase
	refreshTokenUseCase refreshTokenUseCase
	logger              logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:     registerUC,
		loginUseCase:        loginUC,
		refreshTokenUseCase: refreshTokenUC,
		logger:              logger,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password  string `json:"password" binding:"required" example:"s3cret-pass"`
	FirstName string `json:"first_name" binding:"max=100" example:"Jane"`
	LastName  string `json:"last_name" binding:"max=100" example:"Doe"`
	Role      string `json:"role" example:"customer" enums:"customer,support_staff"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Register handles POST /auth/register
//
//	@Summary		Register an account
//	@Description	Creates a customer or support staff account. Role defaults to customer.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		RegisterRequest	true	"Account data"
//	@Success		201		{object}	utils.APIResponse{data=dto.UserResponse}
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		409		{object}	utils.APIResponse	"Email already registered"
//	@Failure		429		{object}	utils.APIResponse	"Too many attempts"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Registration successful")
}

// Login handles POST /auth/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access and a refresh token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		LoginRequest	true	"Credentials"
//	@Success		200			{object}	utils.APIResponse{data=dto.AuthResponse}
//	@Failure		401			{object}	utils.APIResponse	"Invalid credentials"
//	@Failure		429			{object}	utils.APIResponse	"Too many attempts"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Infow("login rejected", "ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// RefreshToken handles POST /auth/refresh
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new token pair.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		RefreshTokenRequest	true	"Refresh token"
//	@Success		200		{object}	utils.APIResponse{data=dto.AuthResponse}
//	@Failure		401		{object}	utils.APIResponse	"Invalid or expired refresh token"
//	@Router			/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", result)
}
