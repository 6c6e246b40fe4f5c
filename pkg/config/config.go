// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory, if present, is read first; variables
// already set in the environment win over it. Struct fields are filled by
// caarlos0/env tags:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//		TTL  time.Duration `env:"CACHE_TTL" envDefault:"1h"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrParse = errors.New("config: parse env")

var dotenv sync.Once

// Load reads .env files (once per process) and parses the environment into target.
func Load(target any, files ...string) error {
	var loadErr error
	dotenv.Do(func() {
		loadErr = loadDotenv(files...)
	})
	if loadErr != nil {
		return loadErr
	}
	return Parse(target)
}

// MustLoad is Load that panics; for use in main.
func MustLoad(target any, files ...string) {
	if err := Load(target, files...); err != nil {
		panic(err)
	}
}

// Parse fills target from the environment only.
func Parse(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

// ParseWith fills target from the given variables instead of the environment.
func ParseWith(target any, vars map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, name := range files {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: loading %s: %w", name, err)
		}
	}
	return nil
}
