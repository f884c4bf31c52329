package usecase

import (
	"time"

	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/services/notification"
)

// NotificationUC implements notification.NotificationUC
type NotificationUC struct {
	smsGW notification.SMSGW
	cfg   *models.Config
	now   func() time.Time
}

// NewNotificationUC creates a new notification usecase. A nil clock means time.Now.
func NewNotificationUC(smsGW notification.SMSGW, cfg *models.Config, clock func() time.Time) *NotificationUC {
	if clock == nil {
		clock = time.Now
	}
	return &NotificationUC{
		smsGW: smsGW,
		cfg:   cfg,
		now:   clock,
	}
}
