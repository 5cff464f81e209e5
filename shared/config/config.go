// Package config loads typed configuration from the environment.
//
// Dotenv files are read first with godotenv (missing files are skipped,
// variables already set in the environment win), then the struct is filled
// by caarlos0/env using its `env` and `envDefault` tags.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrParse = errors.New("config parse failed")

// Load reads envFiles (default ".env") into the environment and parses T from it.
func Load[T any](envFiles ...string) (T, error) {
	var zero T
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s: %w", ErrParse, f, err)
		}
	}

	cfg, err := env.ParseAs[T]()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on failure, for program start-up.
func MustLoad[T any](envFiles ...string) T {
	cfg, err := Load[T](envFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}
