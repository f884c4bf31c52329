package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/darsyar/internal/pkg/models"
)

var codeColumns = []string{"id", "phone", "code", "expires_at", "is_used", "created_at"}

func setupCodeRepoTest(t *testing.T) (*CodeRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewCodeRepo(sqlxDB)

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func TestCodeRepo_CreateCode(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, code *models.VerificationCode, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^INSERT INTO verification_codes").
					WithArgs("+77001234567", "12345", now.Add(5*time.Minute), now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))
			},
			assertFunc: func(t *testing.T, code *models.VerificationCode, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(17), code.ID)
				assert.False(t, code.IsUsed)
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^INSERT INTO verification_codes").
					WillReturnError(errors.New("connection reset"))
			},
			assertFunc: func(t *testing.T, code *models.VerificationCode, err error) {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to create verification code")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupCodeRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			code := &models.VerificationCode{
				Phone:     "+77001234567",
				Code:      "12345",
				ExpiresAt: now.Add(5 * time.Minute),
				CreatedAt: now,
			}
			err := repo.CreateCode(context.Background(), code)

			tc.assertFunc(t, code, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCodeRepo_ConsumeCode(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	phone, code := "+77001234567", "12345"

	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, vc *models.VerificationCode, err error)
	}{
		{
			name: "Success - live code consumed",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(codeColumns).
					AddRow(int64(3), phone, code, now.Add(4*time.Minute), true, now.Add(-time.Minute))
				mock.ExpectQuery("^UPDATE verification_codes SET is_used = TRUE").
					WithArgs(phone, code, now).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, vc *models.VerificationCode, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(3), vc.ID)
				assert.True(t, vc.IsUsed)
				assert.Equal(t, code, vc.Code)
			},
		},
		{
			name: "Expired match",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^UPDATE verification_codes SET is_used = TRUE").
					WithArgs(phone, code, now).
					WillReturnRows(sqlmock.NewRows(codeColumns))
				mock.ExpectQuery("^SELECT EXISTS").
					WithArgs(phone, code, now).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			assertFunc: func(t *testing.T, vc *models.VerificationCode, err error) {
				assert.Nil(t, vc)
				assert.ErrorIs(t, err, models.ErrCodeExpired)
			},
		},
		{
			name: "No match at all",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^UPDATE verification_codes SET is_used = TRUE").
					WillReturnRows(sqlmock.NewRows(codeColumns))
				mock.ExpectQuery("^SELECT EXISTS").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			assertFunc: func(t *testing.T, vc *models.VerificationCode, err error) {
				assert.Nil(t, vc)
				assert.ErrorIs(t, err, models.ErrInvalidCode)
			},
		},
		{
			name: "Update fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^UPDATE verification_codes SET is_used = TRUE").
					WillReturnError(errors.New("deadlock detected"))
			},
			assertFunc: func(t *testing.T, vc *models.VerificationCode, err error) {
				assert.Nil(t, vc)
				assert.ErrorContains(t, err, "failed to consume verification code")
				assert.NotErrorIs(t, err, models.ErrInvalidCode)
			},
		},
		{
			name: "Expired lookup fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^UPDATE verification_codes SET is_used = TRUE").
					WillReturnRows(sqlmock.NewRows(codeColumns))
				mock.ExpectQuery("^SELECT EXISTS").
					WillReturnError(errors.New("timeout"))
			},
			assertFunc: func(t *testing.T, vc *models.VerificationCode, err error) {
				assert.Nil(t, vc)
				assert.ErrorContains(t, err, "failed to look up expired code")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupCodeRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			vc, err := repo.ConsumeCode(context.Background(), phone, code, now)

			tc.assertFunc(t, vc, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
