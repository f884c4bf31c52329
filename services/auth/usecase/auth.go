package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
	"github.com/piresc/darsyar/internal/utils"
)

// SendCode stores a fresh code for phone and hands it to delivery.
// Delivery failures are logged; the stored code stays valid.
func (u *AuthUC) SendCode(ctx context.Context, phone string) error {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return models.ErrMissingInput
	}

	code, err := u.generateCode()
	if err != nil {
		return err
	}

	now := u.now()
	vc := &models.VerificationCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: now.Add(u.codeTTL()),
		CreatedAt: now,
	}

	err = nrpkg.WithSegment(ctx, "CodeStore/CreateCode", func() error {
		return u.codeStore.CreateCode(ctx, vc)
	})
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	dispatch := &models.CodeDispatch{Phone: phone, Code: code, ExpiresAt: vc.ExpiresAt}
	if err := u.authGW.DispatchCode(ctx, dispatch); err != nil {
		logger.WarnCtx(ctx, "Failed to dispatch verification code",
			logger.String("phone", logger.MaskPhone(phone)),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Verification code issued",
		logger.String("phone", logger.MaskPhone(phone)),
		logger.Int64("code_id", vc.ID))

	return nil
}

// VerifyCode consumes a matching code, marks the user verified (creating it
// on first login) and returns a token pair
func (u *AuthUC) VerifyCode(ctx context.Context, phone, code string) (*models.AuthResponse, error) {
	phone = utils.NormalizePhone(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, models.ErrMissingInput
	}

	now := u.now()
	_, err := nrpkg.WithSegmentAndReturn(ctx, "CodeStore/ConsumeCode", func() (*models.VerificationCode, error) {
		return u.codeStore.ConsumeCode(ctx, phone, code, now)
	})
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.UpsertVerifiedUser(ctx, phone, now)
	if err != nil {
		return nil, err
	}

	accessToken, err := u.issuer.IssueAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := u.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	logger.InfoCtx(ctx, "User logged in",
		logger.Int64("user_id", user.ID),
		logger.String("phone", logger.MaskPhone(phone)))

	return &models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token for the refresh token's user
func (u *AuthUC) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, models.ErrMissingInput
	}

	claims, err := u.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := u.issuer.IssueAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &models.RefreshResponse{AccessToken: accessToken}, nil
}
