package logger_test

import (
	"context"
	"escaperoom/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantDebug   bool
		wantErr     bool
	}{
		{name: "development", environment: logger.DevelopmentEnvironment, wantDebug: true},
		{name: "production", environment: logger.ProductionEnvironment, wantDebug: false},
		{name: "production with debug override", environment: logger.ProductionEnvironment, level: "debug", wantDebug: true},
		{name: "development with warn override", environment: logger.DevelopmentEnvironment, level: "warn", wantDebug: false},
		{name: "unknown level", environment: logger.DevelopmentEnvironment, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.Setup(tt.environment, tt.level)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)

			ctx := context.Background()
			require.NotNil(t, logger.Get(ctx))
			require.Equal(t, tt.wantDebug, logger.IsDebug(ctx))
		})
	}
}

func TestGetAndWithLogger(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx), "should return default logger when context has no logger")

	custom := zap.NewExample()
	require.Equal(t, custom, logger.Get(logger.WithLogger(ctx, custom)))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("RequestID", "abc"))
	logger.Info(ctx, "page rendered", zap.Int("level", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "page rendered", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["RequestID"])
	require.EqualValues(t, 3, fields["level"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 4, logs.Len())
	require.Equal(t, 1, logs.FilterMessage("warn message").Len())
}
