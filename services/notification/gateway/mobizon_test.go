package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(url string, dryRun bool) *MobizonGateway {
	return NewMobizonGateway(models.SMSConfig{
		APIURL:   url,
		APIKey:   "key-123",
		SenderID: "Darsyar",
		DryRun:   dryRun,
		Timeout:  time.Second,
	}, logger.NewNopLogger())
}

func TestMobizonGateway_SendSMS(t *testing.T) {
	t.Run("posts the form and accepts code 0", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "key-123", r.PostForm.Get("apiKey"))
			assert.Equal(t, "+77001234567", r.PostForm.Get("recipient"))
			assert.Equal(t, "Your code is 12345", r.PostForm.Get("text"))
			assert.Equal(t, "Darsyar", r.PostForm.Get("from"))
			w.Write([]byte(`{"code":0,"data":{"messageId":"m-1"}}`))
		}))
		defer server.Close()

		assert.NoError(t, newGateway(server.URL, false).SendSMS(context.Background(), "+77001234567", "Your code is 12345"))
	})

	t.Run("provider rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":1,"message":"Insufficient funds"}`))
		}))
		defer server.Close()

		err := newGateway(server.URL, false).SendSMS(context.Background(), "+77001234567", "x")
		assert.ErrorContains(t, err, "Insufficient funds")
	})

	t.Run("unparseable response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		err := newGateway(server.URL, false).SendSMS(context.Background(), "+77001234567", "x")
		assert.ErrorContains(t, err, "parse SMS response")
	})

	t.Run("dry-run never calls the provider", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("provider must not be called")
		}))
		defer server.Close()

		assert.NoError(t, newGateway(server.URL, true).SendSMS(context.Background(), "+77001234567", "x"))
	})

	t.Run("missing api key means dry-run", func(t *testing.T) {
		gw := NewMobizonGateway(models.SMSConfig{APIURL: "http://127.0.0.1:1"}, logger.NewNopLogger())
		assert.True(t, gw.dryRun)
	})
}
