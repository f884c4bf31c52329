package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/darsyar/internal/pkg/constants"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePublisher struct {
	topic   string
	message interface{}
	err     error
	ackErr  error
}

func (f *fakePublisher) PublishAsync(topic string, message interface{}, doneChan chan *nsq.ProducerTransaction) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.message = message
	doneChan <- &nsq.ProducerTransaction{Error: f.ackErr}
	return nil
}

func observedLogger(level zap.AtomicLevel) (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &logger.ZapLogger{Logger: zap.New(core)}, logs
}

func testDispatch() *models.CodeDispatch {
	return &models.CodeDispatch{
		Phone:     "+77001234567",
		Code:      "48213",
		ExpiresAt: time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
	}
}

func TestNSQGateway_DispatchCode(t *testing.T) {
	t.Run("publishes on the verification topic", func(t *testing.T) {
		zl, _ := observedLogger(zap.NewAtomicLevelAt(zap.DebugLevel))
		pub := &fakePublisher{}
		gw := NewNSQGateway(pub, zl)

		dispatch := testDispatch()
		require.NoError(t, gw.DispatchCode(context.Background(), dispatch))

		assert.Equal(t, constants.TopicVerificationCode, pub.topic)
		assert.Same(t, dispatch, pub.message)
	})

	t.Run("hand-off failure is returned", func(t *testing.T) {
		zl, _ := observedLogger(zap.NewAtomicLevelAt(zap.DebugLevel))
		gw := NewNSQGateway(&fakePublisher{err: errors.New("not connected")}, zl)

		assert.EqualError(t, gw.DispatchCode(context.Background(), testDispatch()), "not connected")
	})

	t.Run("failed ack is only logged", func(t *testing.T) {
		zl, logs := observedLogger(zap.NewAtomicLevelAt(zap.DebugLevel))
		gw := NewNSQGateway(&fakePublisher{ackErr: errors.New("E_BAD_TOPIC")}, zl)

		require.NoError(t, gw.DispatchCode(context.Background(), testDispatch()))

		assert.Eventually(t, func() bool {
			return logs.FilterMessage("Verification code publish failed").Len() == 1
		}, time.Second, 5*time.Millisecond)
		entry := logs.FilterMessage("Verification code publish failed").All()[0]
		assert.Equal(t, "****4567", entry.ContextMap()["phone"])
	})
}

func TestLogGateway_DispatchCode(t *testing.T) {
	t.Run("code hidden by default", func(t *testing.T) {
		zl, logs := observedLogger(zap.NewAtomicLevelAt(zap.InfoLevel))
		require.NoError(t, NewLogGateway(zl, false).DispatchCode(context.Background(), testDispatch()))

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "****4567", fields["phone"])
		assert.NotContains(t, fields, "code")
	})

	t.Run("code shown when enabled", func(t *testing.T) {
		zl, logs := observedLogger(zap.NewAtomicLevelAt(zap.InfoLevel))
		require.NoError(t, NewLogGateway(zl, true).DispatchCode(context.Background(), testDispatch()))

		assert.Equal(t, "48213", logs.All()[0].ContextMap()["code"])
	})
}

func TestNewAuthGW(t *testing.T) {
	cfg := &models.Config{}
	zl := logger.NewNopLogger()

	cfg.OTP.Dispatch = "nsq"
	assert.IsType(t, &NSQGateway{}, NewAuthGW(cfg, &fakePublisher{}, zl))

	assert.IsType(t, &LogGateway{}, NewAuthGW(cfg, nil, zl))

	cfg.OTP.Dispatch = "log"
	assert.IsType(t, &LogGateway{}, NewAuthGW(cfg, &fakePublisher{}, zl))
}
