package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"doordeck/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings config.LogSettings
		verbose  bool
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"info text", config.LogSettings{Level: "info", Format: "text"}, false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn json", config.LogSettings{Level: "warn", Format: "json"}, false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"verbose wins", config.LogSettings{Level: "error", Format: "text"}, true, zapcore.DebugLevel, zapcore.InvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.settings, tt.verbose)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.disabled != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(config.LogSettings{Level: "loud", Format: "text"}, false)
	assert.Error(t, err)

	_, err = New(config.LogSettings{Level: "info", Format: "xml"}, false)
	assert.Error(t, err)
}
