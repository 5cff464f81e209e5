package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// WithTestEffectHandler installs a log handler printing every level to stdout.
func WithTestEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context) {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return WithZapEffectHandler(
		ctx,
		1,
		zap.New(consoleCore),
	)
}

// WithObservedEffectHandler installs a log handler recording logs at or above
// level in memory. Logs are complete once the end function has returned.
func WithObservedEffectHandler(
	ctx context.Context,
	level zapcore.Level,
) (context.Context, func() context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	ctx, end := WithZapEffectHandler(ctx, 16, zap.New(core))
	return ctx, end, logs
}
