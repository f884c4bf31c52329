package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/darsyar/internal/pkg/jwt"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/utils"
	"github.com/piresc/darsyar/services/auth/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type testDeps struct {
	codeStore *mocks.MockCodeStore
	userRepo  *mocks.MockUserRepo
	authGW    *mocks.MockAuthGW
	issuer    *jwt.Issuer
	clock     *testClock
	uc        *AuthUC
}

func setupAuthUC(t *testing.T, opts ...Option) *testDeps {
	ctrl := gomock.NewController(t)

	clock := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := &models.Config{}
	cfg.OTP.TTL = 5 * time.Minute

	d := &testDeps{
		codeStore: mocks.NewMockCodeStore(ctrl),
		userRepo:  mocks.NewMockUserRepo(ctrl),
		authGW:    mocks.NewMockAuthGW(ctrl),
		issuer:    jwt.NewIssuer([]byte("test-secret"), clock.Now),
		clock:     clock,
	}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	d.uc = NewAuthUC(d.codeStore, d.userRepo, d.authGW, d.issuer, cfg, opts...)
	return d
}

func TestSendCode(t *testing.T) {
	t.Run("missing phone", func(t *testing.T) {
		d := setupAuthUC(t)

		assert.ErrorIs(t, d.uc.SendCode(context.Background(), "   "), models.ErrMissingInput)
	})

	t.Run("stores a five digit code valid for five minutes and dispatches it", func(t *testing.T) {
		d := setupAuthUC(t)
		var stored *models.VerificationCode

		d.codeStore.EXPECT().CreateCode(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, vc *models.VerificationCode) error {
				stored = vc
				vc.ID = 42
				return nil
			})
		d.authGW.EXPECT().DispatchCode(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, dispatch *models.CodeDispatch) error {
				assert.Equal(t, stored.Code, dispatch.Code)
				assert.Equal(t, "+77001234567", dispatch.Phone)
				assert.True(t, dispatch.ExpiresAt.Equal(stored.ExpiresAt))
				return nil
			})

		require.NoError(t, d.uc.SendCode(context.Background(), " +77001234567 "))

		require.NotNil(t, stored)
		assert.Equal(t, "+77001234567", stored.Phone)
		assert.False(t, stored.IsUsed)
		assert.Equal(t, 5*time.Minute, stored.ExpiresAt.Sub(d.clock.now))
		require.Len(t, stored.Code, 5)
		n, err := strconv.Atoi(stored.Code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, utils.CodeMin)
		assert.LessOrEqual(t, n, utils.CodeMax)
	})

	t.Run("dispatch failure keeps the code", func(t *testing.T) {
		d := setupAuthUC(t)

		d.codeStore.EXPECT().CreateCode(gomock.Any(), gomock.Any()).Return(nil)
		d.authGW.EXPECT().DispatchCode(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		assert.NoError(t, d.uc.SendCode(context.Background(), "+77001234567"))
	})

	t.Run("store failure is returned and nothing is dispatched", func(t *testing.T) {
		d := setupAuthUC(t)
		storeErr := errors.New("db down")

		d.codeStore.EXPECT().CreateCode(gomock.Any(), gomock.Any()).Return(storeErr)

		err := d.uc.SendCode(context.Background(), "+77001234567")
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("generator failure", func(t *testing.T) {
		genErr := errors.New("no entropy")
		d := setupAuthUC(t, WithCodeGenerator(func() (string, error) { return "", genErr }))

		assert.ErrorIs(t, d.uc.SendCode(context.Background(), "+77001234567"), genErr)
	})
}

func TestVerifyCode(t *testing.T) {
	phone := "+77001234567"

	t.Run("missing input", func(t *testing.T) {
		d := setupAuthUC(t)

		_, err := d.uc.VerifyCode(context.Background(), phone, "")
		assert.ErrorIs(t, err, models.ErrMissingInput)
		_, err = d.uc.VerifyCode(context.Background(), "", "12345")
		assert.ErrorIs(t, err, models.ErrMissingInput)
	})

	t.Run("store outcomes pass through", func(t *testing.T) {
		for _, storeErr := range []error{models.ErrInvalidCode, models.ErrCodeExpired} {
			d := setupAuthUC(t)
			d.codeStore.EXPECT().ConsumeCode(gomock.Any(), phone, "12345", d.clock.now).Return(nil, storeErr)

			resp, err := d.uc.VerifyCode(context.Background(), phone, "12345")
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, storeErr)
		}
	})

	t.Run("success returns the user and a working token pair", func(t *testing.T) {
		d := setupAuthUC(t)
		user := &models.User{ID: 7, Phone: phone, IsVerified: true, CreatedAt: d.clock.now}

		gomock.InOrder(
			d.codeStore.EXPECT().ConsumeCode(gomock.Any(), phone, "12345", d.clock.now).
				Return(&models.VerificationCode{ID: 1, Phone: phone, Code: "12345", IsUsed: true}, nil),
			d.userRepo.EXPECT().UpsertVerifiedUser(gomock.Any(), phone, d.clock.now).Return(user, nil),
		)

		resp, err := d.uc.VerifyCode(context.Background(), phone, "12345")
		require.NoError(t, err)
		assert.Same(t, user, resp.User)

		access, err := d.issuer.ParseAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), access.UserID)
		assert.Equal(t, phone, access.Phone)

		refresh, err := d.issuer.ParseRefreshToken(resp.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, int64(7), refresh.UserID)

		d.clock.now = d.clock.now.Add(24*time.Hour + time.Second)
		_, err = d.issuer.ParseAccessToken(resp.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("user directory failure", func(t *testing.T) {
		d := setupAuthUC(t)
		dbErr := errors.New("db down")

		d.codeStore.EXPECT().ConsumeCode(gomock.Any(), phone, "12345", gomock.Any()).
			Return(&models.VerificationCode{ID: 1}, nil)
		d.userRepo.EXPECT().UpsertVerifiedUser(gomock.Any(), phone, gomock.Any()).Return(nil, dbErr)

		_, err := d.uc.VerifyCode(context.Background(), phone, "12345")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestRefresh(t *testing.T) {
	user := &models.User{ID: 7, Phone: "+77001234567"}

	t.Run("missing token", func(t *testing.T) {
		d := setupAuthUC(t)

		_, err := d.uc.Refresh(context.Background(), " ")
		assert.ErrorIs(t, err, models.ErrMissingInput)
	})

	t.Run("garbage token", func(t *testing.T) {
		d := setupAuthUC(t)

		_, err := d.uc.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		d := setupAuthUC(t)
		access, err := d.issuer.IssueAccessToken(user.ID, user.Phone)
		require.NoError(t, err)

		_, err = d.uc.Refresh(context.Background(), access)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		d := setupAuthUC(t)
		refresh, err := d.issuer.IssueRefreshToken(user.ID)
		require.NoError(t, err)

		d.clock.now = d.clock.now.Add(8 * 24 * time.Hour)
		_, err = d.uc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("user gone", func(t *testing.T) {
		d := setupAuthUC(t)
		refresh, err := d.issuer.IssueRefreshToken(user.ID)
		require.NoError(t, err)

		d.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(nil, models.ErrUserNotFound)

		_, err = d.uc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("issues a fresh access token", func(t *testing.T) {
		d := setupAuthUC(t)
		refresh, err := d.issuer.IssueRefreshToken(user.ID)
		require.NoError(t, err)

		d.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(user, nil)

		resp, err := d.uc.Refresh(context.Background(), refresh)
		require.NoError(t, err)

		claims, err := d.issuer.ParseAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Phone, claims.Phone)
	})
}
