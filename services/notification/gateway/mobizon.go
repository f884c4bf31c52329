package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	httpclient "github.com/piresc/darsyar/internal/pkg/http"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/internal/pkg/retry"
)

// sendSMSResponse is the provider's JSON envelope. Code 0 means accepted.
type sendSMSResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

// MobizonGateway sends SMS through a Mobizon-style form API
type MobizonGateway struct {
	client   *httpclient.Client
	apiURL   string
	apiKey   string
	senderID string
	dryRun   bool
	logger   *logger.ZapLogger
}

// NewMobizonGateway creates the SMS gateway. An empty API key forces dry-run.
func NewMobizonGateway(cfg models.SMSConfig, zapLogger *logger.ZapLogger) *MobizonGateway {
	return &MobizonGateway{
		client: httpclient.NewClient(httpclient.Config{
			Name:    "sms-provider",
			Timeout: cfg.Timeout,
			Retry:   retry.DefaultConfig(),
		}, zapLogger),
		apiURL:   cfg.APIURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		dryRun:   cfg.DryRun || cfg.APIKey == "",
		logger:   zapLogger,
	}
}

// SendSMS posts the message and checks the provider's result code
func (g *MobizonGateway) SendSMS(ctx context.Context, phone, text string) error {
	if g.dryRun {
		g.logger.Info("SMS send skipped (dry-run)",
			logger.String("phone", logger.MaskPhone(phone)),
			logger.Int("length", len(text)))
		return nil
	}

	form := url.Values{
		"apiKey":    {g.apiKey},
		"recipient": {phone},
		"text":      {text},
	}
	if g.senderID != "" {
		form.Set("from", g.senderID)
	}

	resp, err := g.client.PostForm(ctx, g.apiURL, form)
	if err != nil {
		return fmt.Errorf("send SMS request: %w", err)
	}

	var result sendSMSResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("parse SMS response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("SMS provider returned code %d: %s", result.Code, result.Message)
	}

	g.logger.Info("SMS accepted",
		logger.String("phone", logger.MaskPhone(phone)),
		logger.String("message_id", result.Data.MessageID))
	return nil
}
