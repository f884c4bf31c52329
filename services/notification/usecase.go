package notification

import (
	"context"

	"github.com/piresc/darsyar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/darsyar/services/notification NotificationUC

// NotificationUC delivers verification codes to phones
type NotificationUC interface {
	SendVerificationCode(ctx context.Context, dispatch *models.CodeDispatch) error
}
