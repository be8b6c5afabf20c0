package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds bemctl settings.
type Config struct {
	Log    LogConfig
	Output OutputConfig
}

type LogConfig struct {
	Level string
}

// OutputConfig controls how modified documents are written back.
type OutputConfig struct {
	Pretty bool
}

// LoadConfig reads configuration from file and env. Env var overrides use
// prefix BEMCTL_. An explicit path must exist; the default one may not.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "warn")
	v.SetDefault("output.pretty", false)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "bemctl"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BEMCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// NewLogger builds a production logger writing to stderr.
// verbose forces the debug level.
func NewLogger(c LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
