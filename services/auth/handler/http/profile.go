package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/middleware"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/utils"
	"github.com/piresc/darsyar/services/auth"
)

// ProfileHandler serves the signed-in user's profile
type ProfileHandler struct {
	authUC auth.AuthUC
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authUC auth.AuthUC) *ProfileHandler {
	return &ProfileHandler{
		authUC: authUC,
	}
}

// GetProfile handles GET /api/user/profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	user, err := h.authUC.GetProfile(c.Request().Context(), identity.UserID)
	switch {
	case err == nil:
		return utils.JSONResponse(c, http.StatusOK, user)
	case errors.Is(err, models.ErrUserNotFound):
		return utils.NotFoundResponse(c, "User not found")
	default:
		logger.ErrorCtx(c.Request().Context(), "Failed to fetch profile",
			logger.Int64("user_id", identity.UserID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to fetch profile")
	}
}

// UpdateProfile handles PATCH /api/user/profile. Only firstName, lastName and
// educationLevel are read from the body.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Access token required")
	}

	var update models.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	user, err := h.authUC.UpdateProfile(c.Request().Context(), identity.UserID, &update)
	switch {
	case err == nil:
		return utils.JSONResponse(c, http.StatusOK, user)
	case errors.Is(err, models.ErrInvalidProfile):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrUserNotFound):
		return utils.NotFoundResponse(c, "User not found")
	default:
		logger.ErrorCtx(c.Request().Context(), "Failed to update profile",
			logger.Int64("user_id", identity.UserID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to update profile")
	}
}
