package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/darsyar/internal/pkg/models"
)

// GetProfile returns the caller's user record
func (u *AuthUC) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return u.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile applies the allow-listed fields of update
func (u *AuthUC) UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error) {
	if update == nil || update.Empty() {
		return u.userRepo.GetUserByID(ctx, userID)
	}

	clean := &models.ProfileUpdate{
		FirstName:      trimmed(update.FirstName),
		LastName:       trimmed(update.LastName),
		EducationLevel: trimmed(update.EducationLevel),
	}
	if err := u.validator.Validate(clean); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidProfile, err)
	}

	return u.userRepo.UpdateProfile(ctx, userID, clean)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
