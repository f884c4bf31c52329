package gateway

import (
	"context"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/darsyar/internal/pkg/constants"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
)

// Publisher is the slice of the NSQ producer the gateway needs
type Publisher interface {
	PublishAsync(topic string, message interface{}, doneChan chan *nsq.ProducerTransaction) error
}

// NSQGateway publishes codes for the SMS worker without waiting for the ack
type NSQGateway struct {
	publisher Publisher
	logger    *logger.ZapLogger
}

// NewNSQGateway creates a new NSQ gateway
func NewNSQGateway(publisher Publisher, zapLogger *logger.ZapLogger) *NSQGateway {
	return &NSQGateway{
		publisher: publisher,
		logger:    zapLogger,
	}
}

// DispatchCode queues the code on the verification topic. The broker ack is
// observed in the background and only logged.
func (g *NSQGateway) DispatchCode(ctx context.Context, dispatch *models.CodeDispatch) error {
	done := make(chan *nsq.ProducerTransaction, 1)
	if err := g.publisher.PublishAsync(constants.TopicVerificationCode, dispatch, done); err != nil {
		return err
	}

	phone := logger.MaskPhone(dispatch.Phone)
	go func() {
		trans := <-done
		if trans.Error != nil {
			g.logger.Error("Verification code publish failed",
				logger.String("phone", phone),
				logger.Err(trans.Error))
			return
		}
		g.logger.Debug("Verification code published", logger.String("phone", phone))
	}()

	return nil
}
