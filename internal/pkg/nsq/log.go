package nsq

import (
	"strings"

	"github.com/piresc/darsyar/internal/pkg/logger"
)

// LogAdapter routes go-nsq's internal logging into zap
type LogAdapter struct {
	logger *logger.ZapLogger
}

// NewLogAdapter wraps the given logger
func NewLogAdapter(zapLogger *logger.ZapLogger) *LogAdapter {
	return &LogAdapter{logger: zapLogger}
}

// Output implements the go-nsq logger interface
func (a *LogAdapter) Output(_ int, s string) error {
	switch {
	case strings.HasPrefix(s, "ERR"):
		a.logger.Error(s, logger.String("component", "nsq"))
	case strings.HasPrefix(s, "WRN"):
		a.logger.Warn(s, logger.String("component", "nsq"))
	default:
		a.logger.Debug(s, logger.String("component", "nsq"))
	}
	return nil
}
