package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
)

const defaultTemplate = "Your verification code is %s"

// SendVerificationCode texts the code unless it already expired.
// Incomplete dispatches are dropped since retrying cannot fix them.
func (u *NotificationUC) SendVerificationCode(ctx context.Context, dispatch *models.CodeDispatch) error {
	if dispatch == nil || strings.TrimSpace(dispatch.Phone) == "" || dispatch.Code == "" {
		logger.WarnCtx(ctx, "Dropping incomplete code dispatch")
		return nil
	}

	phone := logger.MaskPhone(dispatch.Phone)
	if !dispatch.ExpiresAt.IsZero() && dispatch.ExpiresAt.Before(u.now()) {
		logger.WarnCtx(ctx, "Dropping expired verification code",
			logger.String("phone", phone),
			logger.Time("expires_at", dispatch.ExpiresAt))
		return nil
	}

	err := nrpkg.WithSegment(ctx, "SMS/SendVerificationCode", func() error {
		return u.smsGW.SendSMS(ctx, dispatch.Phone, u.messageText(dispatch.Code))
	})
	if err != nil {
		return fmt.Errorf("failed to send verification SMS: %w", err)
	}

	logger.InfoCtx(ctx, "Verification code delivered", logger.String("phone", phone))
	return nil
}

func (u *NotificationUC) messageText(code string) string {
	template := u.cfg.SMS.Template
	if !strings.Contains(template, "%s") {
		template = defaultTemplate
	}
	return strings.Replace(template, "%s", code, 1)
}
