package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"legacycolor/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, logging.DefaultLevel, cfg.LogLevel)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level)
	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, 64, cfg.SwatchSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEGACYCOLOR_LOGLEVEL", "DEBUG")
	t.Setenv("LEGACYCOLOR_ADDR", "127.0.0.1:9000")
	t.Setenv("LEGACYCOLOR_BROWSER_TIMEOUT", "3s")
	t.Setenv("LEGACYCOLOR_SWATCH_SIZE", "16")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.BrowserTimeout)
	assert.Equal(t, 16, cfg.SwatchSize)
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("LEGACYCOLOR_LOGLEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("loglevel", logging.DefaultLevel, "")
	fs.Int("swatch-size", 64, "")
	fs.String("unrelated", "", "")
	require.NoError(t, fs.Parse([]string{"--loglevel=error", "--swatch-size=8"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, zapcore.ErrorLevel, cfg.Level)
	assert.Equal(t, 8, cfg.SwatchSize)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"bad_level", KeyLogLevel, "loud"},
		{"zero_timeout", KeyBrowserTimeout, "0s"},
		{"huge_swatch", KeySwatchSize, 100000},
		{"zero_swatch", KeySwatchSize, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			v.Set(tc.key, tc.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoadBadLevelWrapsSentinel(t *testing.T) {
	v := New()
	v.Set(KeyLogLevel, "shouting")
	_, err := Load(v)
	require.ErrorIs(t, err, logging.ErrInvalidLevel)
}
