package auth

import (
	"context"

	"github.com/piresc/darsyar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/darsyar/services/auth AuthUC

// AuthUC covers phone login, the token lifecycle and the caller's profile
type AuthUC interface {
	// handle codes
	SendCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error)

	// handle tokens
	Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error)

	// handle profile
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error)
}
