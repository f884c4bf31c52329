package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/darsyar/internal/pkg/models"
)

const userColumns = `id, phone, first_name, last_name, education_level, is_verified, created_at`

// GetUserByID retrieves a user by id
func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpsertVerifiedUser inserts a verified user for phone, or marks the
// existing one verified. The unique phone constraint arbitrates races.
func (r *UserRepo) UpsertVerifiedUser(ctx context.Context, phone string, now time.Time) (*models.User, error) {
	query := `
		INSERT INTO users (phone, is_verified, created_at)
		VALUES ($1, TRUE, $2)
		ON CONFLICT (phone) DO UPDATE SET is_verified = TRUE
		RETURNING ` + userColumns

	var user models.User
	if err := r.db.QueryRowxContext(ctx, query, phone, now).StructScan(&user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

// UpdateProfile writes the non-nil fields of update
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("first_name", update.FirstName)
	add("last_name", update.LastName)
	add("education_level", update.EducationLevel)

	if len(sets) == 0 {
		return r.GetUserByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	var user models.User
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}
