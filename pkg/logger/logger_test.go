package logger_test

import (
	"context"
	"errors"
	"testing"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantErr     bool
	}{
		{name: "development", environment: logger.DevelopmentEnvironment},
		{name: "production default level", environment: logger.ProductionEnvironment},
		{name: "production warn", environment: logger.ProductionEnvironment, level: "warn"},
		{name: "production bad level", environment: logger.ProductionEnvironment, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.Setup(tt.environment, tt.level)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger.Get(context.Background()))
		})
	}
}

func TestGet(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	ctx := context.Background()
	require.NotNil(t, logger.Get(ctx), "should return default logger when context has none")

	custom, _ := zap.NewDevelopment()
	require.Equal(t, custom, logger.Get(logger.WithLogger(ctx, custom)))
}

func TestWithFields(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))

	ctx := logger.WithFields(context.Background(),
		zap.String("domain", "example.com"),
		zap.String("provider", "rdap"))
	require.NotNil(t, logger.Get(ctx))
}

func TestLookupFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, logger.RequestID("req-1"), logger.Domain("example.id"))

	logger.Warn(ctx, "lookup failed",
		logger.Provider(domain.SourceRDASH),
		logger.ErrorKind(serrors.With(serrors.ErrOperationalBlock, "ip not whitelisted")))
	logger.Info(ctx, "plain failure", logger.ErrorKind(errors.New("boom")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields[logger.RequestIDKey])
	require.Equal(t, "example.id", fields[logger.DomainKey])
	require.Equal(t, string(domain.SourceRDASH), fields[logger.ProviderKey])
	require.Equal(t, "OPERATIONAL_BLOCK", fields[logger.ErrorKindKey])

	require.Equal(t, "INTERNAL", entries[1].ContextMap()[logger.ErrorKindKey])
}

func TestSync(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))
	require.NotPanics(t, logger.Sync)
}

func TestLoggingFunctions(t *testing.T) {
	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment, ""))
	ctx := context.Background()
	field := []zapcore.Field{zap.String("key", "value")}

	require.NotPanics(t, func() {
		logger.Debug(ctx, "debug message", field...)
		logger.Info(ctx, "info message", field...)
		logger.Warn(ctx, "warn message", field...)
		logger.Error(ctx, "error message", field...)
	})
}
