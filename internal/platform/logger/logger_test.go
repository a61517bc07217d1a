package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN", "bogus"} {
		t.Run(level, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: level})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestContextCarry(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		log := slog.Default().With("component", "test")
		ctx := logger.WithLogger(context.Background(), log)
		assert.Same(t, log, logger.FromContext(ctx))
		assert.Same(t, log, logger.FromContextOrDefault(ctx, nil))
	})

	t.Run("falls back to default", func(t *testing.T) {
		assert.NotNil(t, logger.FromContext(context.Background()))
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		def := slog.Default().With("component", "fallback")
		assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))
	})
}
