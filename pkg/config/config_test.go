package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intldomain/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	Locales []string      `env:"LOCALES" envSeparator:","`
	URL     string        `env:"DATABASE_URL,required"`
}

func TestParseWith(t *testing.T) {
	t.Parallel()

	t.Run("defaults and overrides", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.ParseWith(&cfg, map[string]string{
			"CACHE_TTL":    "5m",
			"LOCALES":      "en-US,nl-NL",
			"DATABASE_URL": "postgres://localhost/db",
		})
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.Addr)
		require.Equal(t, 5*time.Minute, cfg.TTL)
		require.Equal(t, []string{"en-US", "nl-NL"}, cfg.Locales)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.ParseWith(&cfg, map[string]string{})
		require.ErrorIs(t, err, config.ErrParse)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		err := config.ParseWith(&cfg, map[string]string{"DATABASE_URL": "x", "CACHE_TTL": "soon"})
		require.ErrorIs(t, err, config.ErrParse)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg, "testdata/missing.env"))
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "postgres://env/db", cfg.URL)
}
