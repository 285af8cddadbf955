package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"doordeck/internal/config"
)

// New builds a zap logger from the log settings. format "text" gives the
// human readable console encoder, "json" the production encoder.
func New(settings config.LogSettings, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(settings.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	var zc zap.Config
	switch settings.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "text", "":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", settings.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
