package nsq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/darsyar/internal/pkg/constants"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/services/notification/mocks"
	"github.com/stretchr/testify/assert"
)

func TestHandleVerificationCode(t *testing.T) {
	t.Run("decodes and delivers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockNotificationUC(ctrl)
		uc.EXPECT().SendVerificationCode(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *models.CodeDispatch) error {
				assert.Equal(t, "+77001234567", d.Phone)
				assert.Equal(t, "12345", d.Code)
				assert.True(t, d.ExpiresAt.Equal(time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC)))
				return nil
			})

		h := NewNotificationHandler(uc, nil)
		err := h.HandleVerificationCode(context.Background(),
			[]byte(`{"phone":"+77001234567","code":"12345","expiresAt":"2024-03-01T12:05:00Z"}`))
		assert.NoError(t, err)
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockNotificationUC(ctrl)

		assert.NoError(t, NewNotificationHandler(uc, nil).HandleVerificationCode(context.Background(), []byte(`{`)))
	})

	t.Run("delivery error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockNotificationUC(ctrl)
		uc.EXPECT().SendVerificationCode(gomock.Any(), gomock.Any()).Return(errors.New("provider down"))

		err := NewNotificationHandler(uc, nil).HandleVerificationCode(context.Background(), []byte(`{"phone":"+1","code":"1"}`))
		assert.EqualError(t, err, "provider down")
	})
}

func TestConsumerConfig(t *testing.T) {
	cfg := &models.Config{}
	cfg.NSQ.Address = "nsqd:4150"
	cfg.NSQ.LookupdAddress = []string{"lookupd:4161"}

	cc := ConsumerConfig(cfg)
	assert.Equal(t, constants.TopicVerificationCode, cc.Topic)
	assert.Equal(t, constants.ChannelSMSWorker, cc.Channel)
	assert.Equal(t, "nsqd:4150", cc.NSQDAddress)
	assert.Equal(t, []string{"lookupd:4161"}, cc.LookupdAddresses)
	assert.Equal(t, uint16(constants.MaxSMSAttempts), cc.MaxAttempts)
}
