package log

import (
	"context"
	"errors"

	"github.com/on-the-ground/memo_ive_go/effects"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/internal/model"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// LogPayload is the payload structure for logging effect.
// It contains the log level, message string, and optional structured fields.
type LogPayload struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// PartitionKey keeps every log on one worker, in emission order.
func (lp LogPayload) PartitionKey() string {
	return "unpartitioned"
}

// WithZapEffectHandler registers a fire-and-forget log effect handler writing to logger.
// The returned end function flushes queued logs, syncs the logger, and returns the parent context.
func WithZapEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetEffectHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, 1),
		effectmodel.EffectLog,
		func(ctx context.Context, payload LogPayload) {
			fields := make([]zap.Field, 0, len(payload.Fields))
			for k, v := range payload.Fields {
				fields = append(fields, zap.Any(k, v))
			}

			switch payload.Level {
			case LogWarn:
				logger.Warn(payload.Message, fields...)
			case LogError:
				logger.Error(payload.Message, fields...)
			case LogDebug:
				logger.Debug(payload.Message, fields...)
			default:
				logger.Info(payload.Message, fields...)
			}
		},
		func() {
			// stdout and stderr cannot be synced on some platforms
			_ = logger.Sync()
		},
	)
}

// Effect emits a structured log through the log handler in ctx.
// Without a handler the log is discarded.
func Effect(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	err := effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, LogPayload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
	if err != nil && !errors.Is(err, effects.ErrNoEffectHandler) {
		zap.L().Debug("log effect dropped", zap.String("msg", msg), zap.Error(err))
	}
}
