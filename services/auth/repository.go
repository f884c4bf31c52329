package auth

import (
	"context"
	"time"

	"github.com/piresc/darsyar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/darsyar/services/auth CodeStore,UserRepo

// CodeStore persists verification codes
type CodeStore interface {
	// CreateCode stores a new unused code and fills in its ID and CreatedAt
	CreateCode(ctx context.Context, code *models.VerificationCode) error
	// ConsumeCode atomically marks the oldest unused, unexpired code matching
	// phone and code as used and returns it. It returns models.ErrCodeExpired
	// when only expired matches exist and models.ErrInvalidCode when none do.
	ConsumeCode(ctx context.Context, phone, code string, now time.Time) (*models.VerificationCode, error)
}

// UserRepo is the user directory
type UserRepo interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// UpsertVerifiedUser creates {phone, isVerified: true} or flips
	// isVerified on the existing user with that phone, keeping its id
	UpsertVerifiedUser(ctx context.Context, phone string, now time.Time) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error)
}
