package nsq

import (
	"context"
	"errors"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newMessage(body string) *nsq.Message {
	var id nsq.MessageID
	copy(id[:], "0123456789abcdef")
	return nsq.NewMessage(id, []byte(body))
}

func TestWrapHandler(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	zl := &logger.ZapLogger{Logger: zap.New(core)}

	t.Run("passes the body through", func(t *testing.T) {
		var got []byte
		h := wrapHandler(func(ctx context.Context, body []byte) error {
			got = body
			return nil
		}, "auth.verification_code", zl)

		require.NoError(t, h.HandleMessage(newMessage(`{"phone":"+1"}`)))
		assert.Equal(t, `{"phone":"+1"}`, string(got))
	})

	t.Run("empty body is dropped", func(t *testing.T) {
		called := false
		h := wrapHandler(func(ctx context.Context, body []byte) error {
			called = true
			return nil
		}, "auth.verification_code", zl)

		require.NoError(t, h.HandleMessage(newMessage("")))
		assert.False(t, called)
	})

	t.Run("handler error is logged and returned", func(t *testing.T) {
		h := wrapHandler(func(ctx context.Context, body []byte) error {
			return errors.New("provider down")
		}, "auth.verification_code", zl)

		err := h.HandleMessage(newMessage("x"))
		assert.EqualError(t, err, "provider down")
		assert.Equal(t, 1, logs.FilterMessage("Error processing message").Len())
	})
}

func TestUnmarshalMessage(t *testing.T) {
	var v struct {
		Phone string `json:"phone"`
	}
	require.NoError(t, UnmarshalMessage([]byte(`{"phone":"+77001234567"}`), &v))
	assert.Equal(t, "+77001234567", v.Phone)

	err := UnmarshalMessage([]byte(`{`), &v)
	assert.ErrorContains(t, err, "failed to unmarshal message")
}

func TestLogAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a := NewLogAdapter(&logger.ZapLogger{Logger: zap.New(core)})

	require.NoError(t, a.Output(2, "ERR    1 [auth/sms] connection lost"))
	require.NoError(t, a.Output(2, "WRN    1 [auth/sms] backing off"))
	require.NoError(t, a.Output(2, "INF    1 [auth/sms] connecting"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.DebugLevel, entries[2].Level)
}
