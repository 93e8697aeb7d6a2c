// Package config resolves runtime settings from defaults, LEGACYCOLOR_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"legacycolor/internal/logging"
)

// EnvPrefix namespaces environment overrides, e.g. LEGACYCOLOR_LOGLEVEL.
const EnvPrefix = "LEGACYCOLOR"

const (
	KeyLogLevel       = "loglevel"
	KeyAddr           = "addr"
	KeyBrowserTimeout = "browser_timeout"
	KeySwatchSize     = "swatch_size"
)

const (
	defaultAddr           = ":8081"
	defaultBrowserTimeout = 15 * time.Second
	defaultSwatchSize     = 64
	maxSwatchSize         = 4096
)

// Config is the validated runtime configuration.
type Config struct {
	LogLevel       string
	Level          zapcore.Level
	Addr           string
	BrowserTimeout time.Duration
	SwatchSize     int
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyAddr, defaultAddr)
	v.SetDefault(KeyBrowserTimeout, defaultBrowserTimeout)
	v.SetDefault(KeySwatchSize, defaultSwatchSize)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs whose name maps onto a config key.
// Flag names use dashes where keys use underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch key {
		case KeyLogLevel, KeyAddr, KeyBrowserTimeout, KeySwatchSize:
			if err := v.BindPFlag(key, f); err != nil {
				errs = append(errs, fmt.Errorf("bind flag %s: %w", f.Name, err))
			}
		}
	})
	return errors.Join(errs...)
}

// Load reads and validates the configuration. An unknown log level is a
// configuration error.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:       v.GetString(KeyLogLevel),
		Addr:           strings.TrimSpace(v.GetString(KeyAddr)),
		BrowserTimeout: v.GetDuration(KeyBrowserTimeout),
		SwatchSize:     v.GetInt(KeySwatchSize),
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", KeyLogLevel, err)
	}
	cfg.Level = lvl
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.BrowserTimeout <= 0 {
		return Config{}, fmt.Errorf("config %s: must be positive, got %s", KeyBrowserTimeout, cfg.BrowserTimeout)
	}
	if cfg.SwatchSize < 1 || cfg.SwatchSize > maxSwatchSize {
		return Config{}, fmt.Errorf("config %s: must be in [1,%d], got %d", KeySwatchSize, maxSwatchSize, cfg.SwatchSize)
	}
	return cfg, nil
}
