package gateway

import (
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/piresc/darsyar/services/auth"
)

// NewAuthGW picks the code dispatcher. Anything but "nsq" logs instead of
// publishing, which keeps local setups free of a broker.
func NewAuthGW(cfg *models.Config, publisher Publisher, zapLogger *logger.ZapLogger) auth.AuthGW {
	if cfg.OTP.Dispatch == "nsq" && publisher != nil {
		return NewNSQGateway(publisher, zapLogger)
	}
	return NewLogGateway(zapLogger, cfg.App.Debug)
}
