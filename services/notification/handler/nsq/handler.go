package nsq

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/darsyar/internal/pkg/constants"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/darsyar/internal/pkg/nsq"
	"github.com/piresc/darsyar/services/notification"
)

// NotificationHandler consumes verification code dispatches
type NotificationHandler struct {
	notificationUC notification.NotificationUC
	nrApp          *newrelic.Application
}

// NewNotificationHandler creates a new NSQ handler
func NewNotificationHandler(notificationUC notification.NotificationUC, nrApp *newrelic.Application) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: notificationUC,
		nrApp:          nrApp,
	}
}

// HandleVerificationCode processes one message from the verification topic.
// Malformed bodies are dropped; delivery errors are returned so nsq requeues.
func (h *NotificationHandler) HandleVerificationCode(ctx context.Context, message []byte) (err error) {
	ctx, end := nrpkg.StartBackgroundTransaction(ctx, h.nrApp, "nsq/"+constants.TopicVerificationCode)
	defer func() { end(err) }()

	var dispatch models.CodeDispatch
	if err := nsqpkg.UnmarshalMessage(message, &dispatch); err != nil {
		logger.WarnCtx(ctx, "Dropping malformed code dispatch", logger.Err(err))
		return nil
	}

	return h.notificationUC.SendVerificationCode(ctx, &dispatch)
}

// ConsumerConfig returns the subscription for the SMS worker
func ConsumerConfig(cfg *models.Config) nsqpkg.ConsumerConfig {
	return nsqpkg.ConsumerConfig{
		Topic:            constants.TopicVerificationCode,
		Channel:          constants.ChannelSMSWorker,
		NSQDAddress:      cfg.NSQ.Address,
		LookupdAddresses: cfg.NSQ.LookupdAddress,
		MaxInFlight:      4,
		MaxAttempts:      constants.MaxSMSAttempts,
	}
}
