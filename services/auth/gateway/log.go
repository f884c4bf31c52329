package gateway

import (
	"context"

	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/models"
)

// LogGateway writes codes to the log instead of sending them
type LogGateway struct {
	logger   *logger.ZapLogger
	showCode bool
}

// NewLogGateway creates a dry-run dispatcher. The code itself is only
// logged when showCode is set.
func NewLogGateway(zapLogger *logger.ZapLogger, showCode bool) *LogGateway {
	return &LogGateway{logger: zapLogger, showCode: showCode}
}

// DispatchCode logs the dispatch
func (g *LogGateway) DispatchCode(ctx context.Context, dispatch *models.CodeDispatch) error {
	fields := []logger.Field{
		logger.String("phone", logger.MaskPhone(dispatch.Phone)),
		logger.Time("expires_at", dispatch.ExpiresAt),
	}
	if g.showCode {
		fields = append(fields, logger.String("code", dispatch.Code))
	}

	g.logger.Info("Verification code dispatch (dry-run)", fields...)
	return nil
}
