package purefn

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Store kinds understood by Config.
const (
	StoreNone      = "none"
	StoreMemDB     = "memdb"
	StoreRistretto = "ristretto"
)

// Config is the environment-facing configuration of a MemoCache.
type Config struct {
	Capacity   int    `env:"MEMO_CAPACITY" envDefault:"0"`
	Shards     int    `env:"MEMO_SHARDS" envDefault:"16"`
	Store      string `env:"MEMO_STORE" envDefault:"none"`
	StoreItems int64  `env:"MEMO_STORE_ITEMS" envDefault:"10000"`
	LogLevel   string `env:"MEMO_LOG_LEVEL" envDefault:"info"`
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("memo log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// OptionsFrom maps cfg onto Options. The store tier is left to the caller,
// since building one depends on the key and value types.
func OptionsFrom[K comparable, V any](cfg Config, logger *zap.Logger) Options[K, V] {
	return Options[K, V]{
		Capacity: cfg.Capacity,
		Shards:   cfg.Shards,
		Logger:   logger,
	}
}
