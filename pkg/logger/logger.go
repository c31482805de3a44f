// Package logger provides a structured logging facility using zap logger.
// Loggers travel inside context.Context so request- and lookup-scoped fields
// (request ID, domain, provider) are attached once and reused by every call site.
package logger

import (
	"context"
	"fmt"
	"whoisresolver/pkg/serrors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment configures a verbose, human-readable console logger.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment configures a JSON logger at the configured level.
	ProductionEnvironment = "production"
)

// Field keys shared by the HTTP layer, the resolver and the providers.
const (
	DomainKey    = "domain"
	ProviderKey  = "provider"
	RequestIDKey = "request_id"
	ErrorKindKey = "error_kind"
)

// defaultLogger is used when no logger is found in context. It discards
// everything until Setup is called.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup initializes the default logger for the given environment. level is
// only honoured in production; development always logs at debug.
func Setup(environment, level string) error {
	if environment != ProductionEnvironment {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("could not build development logger: %w", err)
		}
		defaultLogger = l

		return nil
	}

	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("could not build production logger: %w", err)
	}
	defaultLogger = l

	return nil
}

type key struct{}

// Get retrieves a logger from the provided context, falling back to the
// default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields returns a context whose logger includes fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Domain tags a log line with the normalized domain under lookup.
func Domain(name string) zapcore.Field { return zap.String(DomainKey, name) }

// Provider tags a log line with a provider name.
func Provider[S ~string](name S) zapcore.Field { return zap.String(ProviderKey, string(name)) }

// RequestID tags a log line with the HTTP request ID.
func RequestID(id string) zapcore.Field { return zap.String(RequestIDKey, id) }

// ErrorKind tags a log line with the semantic kind of err, INTERNAL when it
// carries none.
func ErrorKind(err error) zapcore.Field { return zap.String(ErrorKindKey, serrors.Code(err)) }

// Sync flushes the default logger.
func Sync() {
	_ = defaultLogger.Sync()
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
