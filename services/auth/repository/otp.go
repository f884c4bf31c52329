package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/piresc/darsyar/internal/pkg/models"
)

// CreateCode inserts a new unused verification code
func (r *CodeRepo) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	query := `
		INSERT INTO verification_codes (phone, code, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`

	code.IsUsed = false
	if err := r.db.QueryRowxContext(ctx, query, code.Phone, code.Code, code.ExpiresAt, code.CreatedAt).Scan(&code.ID); err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

// ConsumeCode marks the oldest live match as used in a single statement,
// so two concurrent verifications can never both succeed
func (r *CodeRepo) ConsumeCode(ctx context.Context, phone, code string, now time.Time) (*models.VerificationCode, error) {
	query := `
		UPDATE verification_codes SET is_used = TRUE
		WHERE is_used = FALSE AND id = (
			SELECT id FROM verification_codes
			WHERE phone = $1 AND code = $2 AND is_used = FALSE AND expires_at >= $3
			ORDER BY created_at ASC, id ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, phone, code, expires_at, is_used, created_at
	`

	var vc models.VerificationCode
	err := r.db.QueryRowxContext(ctx, query, phone, code, now).StructScan(&vc)
	if err == nil {
		return &vc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	expired, err := r.hasExpiredMatch(ctx, phone, code, now)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, models.ErrCodeExpired
	}
	return nil, models.ErrInvalidCode
}

func (r *CodeRepo) hasExpiredMatch(ctx context.Context, phone, code string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM verification_codes
			WHERE phone = $1 AND code = $2 AND is_used = FALSE AND expires_at < $3
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phone, code, now); err != nil {
		return false, fmt.Errorf("failed to look up expired code: %w", err)
	}
	return exists, nil
}
