package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/darsyar/internal/pkg/jwt"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/utils"
	"github.com/piresc/darsyar/services/auth"
)

// AuthHandler handles the phone login endpoints
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// SendCode handles POST /api/auth/send-code
func (h *AuthHandler) SendCode(c echo.Context) error {
	var req models.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	err := h.authUC.SendCode(c.Request().Context(), req.Phone)
	switch {
	case err == nil:
		return utils.MessageResponseHandler(c, http.StatusOK, "Verification code sent successfully")
	case errors.Is(err, models.ErrMissingInput):
		return utils.BadRequestResponse(c, "Phone number is required")
	default:
		logger.ErrorCtx(c.Request().Context(), "Failed to send verification code", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to send verification code")
	}
}

// VerifyCode handles POST /api/auth/verify-code
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return utils.BadRequestResponse(c, "Phone and code are required")
	}

	resp, err := h.authUC.VerifyCode(c.Request().Context(), req.Phone, req.Code)
	switch {
	case err == nil:
		return utils.JSONResponse(c, http.StatusOK, resp)
	case errors.Is(err, models.ErrMissingInput):
		return utils.BadRequestResponse(c, "Phone and code are required")
	case errors.Is(err, models.ErrInvalidCode):
		return utils.BadRequestResponse(c, "Invalid verification code")
	case errors.Is(err, models.ErrCodeExpired):
		return utils.BadRequestResponse(c, "Verification code expired")
	default:
		logger.ErrorCtx(c.Request().Context(), "Failed to verify code", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to verify code")
	}
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	switch {
	case err == nil:
		return utils.JSONResponse(c, http.StatusOK, resp)
	case errors.Is(err, models.ErrMissingInput):
		return utils.UnauthorizedResponse(c, "Refresh token required")
	case errors.Is(err, models.ErrUserNotFound):
		return utils.ForbiddenResponse(c, "User not found")
	case errors.Is(err, jwt.ErrTokenInvalid), errors.Is(err, jwt.ErrTokenExpired):
		return utils.ForbiddenResponse(c, "Invalid refresh token")
	default:
		logger.ErrorCtx(c.Request().Context(), "Failed to refresh token", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to refresh token")
	}
}
