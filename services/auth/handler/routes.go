package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/darsyar/internal/pkg/middleware"
	"github.com/piresc/darsyar/services/auth/handler/http"
)

// Handler coordinates the HTTP handlers of the auth service
type Handler struct {
	authHandler    *http.AuthHandler
	profileHandler *http.ProfileHandler
	tokenParser    middleware.AccessTokenParser
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	profileHandler *http.ProfileHandler,
	tokenParser middleware.AccessTokenParser,
) *Handler {
	return &Handler{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		tokenParser:    tokenParser,
	}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes
	authGroup := e.Group("/api/auth")
	authGroup.POST("/send-code", h.authHandler.SendCode)
	authGroup.POST("/verify-code", h.authHandler.VerifyCode)
	authGroup.POST("/refresh", h.authHandler.Refresh)

	// Routes behind an access token
	userGroup := e.Group("/api/user", middleware.SessionMiddleware(h.tokenParser))
	userGroup.GET("/profile", h.profileHandler.GetProfile)
	userGroup.PATCH("/profile", h.profileHandler.UpdateProfile)
}
