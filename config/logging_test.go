// 日志构建测试。
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := DefaultLogConfig()
			cfg.Level = tt.level

			logger := NewLogger(cfg)
			require.NotNil(t, logger)
			assert.True(t, logger.Core().Enabled(tt.expected))
			if tt.expected != zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			cfg := DefaultLogConfig()
			cfg.Format = format
			assert.NotNil(t, NewLogger(cfg))
		})
	}
}

func TestNewLogger_EmptyOutputsFallBack(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.OutputPaths = nil

	// 构建不应失败
	assert.NotNil(t, NewLogger(cfg))
}
