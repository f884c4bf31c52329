package nsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/darsyar/internal/pkg/logger"
)

// MessageHandler processes one NSQ message body
type MessageHandler func(ctx context.Context, message []byte) error

// ConsumerConfig describes a topic/channel subscription
type ConsumerConfig struct {
	Topic            string
	Channel          string
	NSQDAddress      string
	LookupdAddresses []string
	MaxInFlight      int
	MaxAttempts      uint16
}

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
	logger   *logger.ZapLogger
}

// NewConsumer creates a consumer, registers the handler and connects to
// lookupd when addresses are given, nsqd otherwise
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, zapLogger *logger.ZapLogger) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = cfg.MaxAttempts
	}

	consumer, err := nsq.NewConsumer(cfg.Topic, cfg.Channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLogger(NewLogAdapter(zapLogger), nsq.LogLevelWarning)
	consumer.AddHandler(wrapHandler(handler, cfg.Topic, zapLogger))

	if len(cfg.LookupdAddresses) > 0 {
		if err := consumer.ConnectToNSQLookupds(cfg.LookupdAddresses); err != nil {
			return nil, fmt.Errorf("failed to connect to NSQ lookupd: %w", err)
		}
	} else if err := consumer.ConnectToNSQD(cfg.NSQDAddress); err != nil {
		return nil, fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}

	return &Consumer{consumer: consumer, logger: zapLogger}, nil
}

// wrapHandler adapts a MessageHandler to nsq. Returning an error lets nsq
// requeue the message until MaxAttempts is reached.
func wrapHandler(handler MessageHandler, topic string, zapLogger *logger.ZapLogger) nsq.HandlerFunc {
	return func(message *nsq.Message) error {
		if len(message.Body) == 0 {
			return nil
		}

		if err := handler(context.Background(), message.Body); err != nil {
			zapLogger.Error("Error processing message",
				logger.String("topic", topic),
				logger.Int("attempts", int(message.Attempts)),
				logger.Err(err))
			return err
		}
		return nil
	}
}

// UnmarshalMessage deserializes a JSON message into the provided struct
func UnmarshalMessage(messageBody []byte, v interface{}) error {
	if err := json.Unmarshal(messageBody, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// Stop gracefully stops the consumer and waits for in-flight handlers
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
