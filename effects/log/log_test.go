package log_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/memo_ive_go/effects/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogEffect_WritesEveryLevel(t *testing.T) {
	ctx, end, logs := log.WithObservedEffectHandler(context.Background(), zap.DebugLevel)

	log.Effect(ctx, log.LogDebug, "debugging", nil)
	log.Effect(ctx, log.LogInfo, "informing", map[string]any{"key": 7})
	log.Effect(ctx, log.LogWarn, "warning", nil)
	log.Effect(ctx, log.LogError, "failing", nil)
	log.Effect(ctx, "unknown", "defaulting", nil)
	end()

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, []string{"debugging", "informing", "warning", "failing", "defaulting"}, []string{
		entries[0].Message, entries[1].Message, entries[2].Message, entries[3].Message, entries[4].Message,
	})
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
	assert.Equal(t, zap.InfoLevel, entries[4].Level)
	assert.EqualValues(t, 7, entries[1].ContextMap()["key"])
}

func TestLogEffect_RespectsLevel(t *testing.T) {
	ctx, end, logs := log.WithObservedEffectHandler(context.Background(), zap.WarnLevel)

	log.Effect(ctx, log.LogInfo, "quiet", nil)
	log.Effect(ctx, log.LogWarn, "loud", nil)
	end()

	assert.Equal(t, 0, logs.FilterMessage("quiet").Len())
	assert.Equal(t, 1, logs.FilterMessage("loud").Len())
}

func TestLogEffect_WithoutHandlerIsDiscarded(t *testing.T) {
	assert.NotPanics(t, func() {
		log.Effect(context.Background(), log.LogInfo, "nobody listens", nil)
	})
}

func TestLogEffect_AfterEndIsDiscarded(t *testing.T) {
	ctx, end, logs := log.WithObservedEffectHandler(context.Background(), zap.DebugLevel)
	end()

	log.Effect(ctx, log.LogInfo, "too late", nil)
	assert.Equal(t, 0, logs.Len())
}

func TestWithTestEffectHandler(t *testing.T) {
	parent := context.Background()
	ctx, end := log.WithTestEffectHandler(parent)
	log.Effect(ctx, log.LogDebug, "printed to stdout", nil)
	assert.Equal(t, parent, end())
}
