package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the content of the optional configuration file.
type Config struct {
	// Workers bounds the number of schedules evaluated concurrently by solve.
	Workers int `yaml:"workers"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Schedule is the default schedule of the table and next commands.
	Schedule string `yaml:"schedule"`
	// Sequences are solved by the solve command when no sequence is given.
	Sequences map[string][]int64 `yaml:"sequences"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Schedule: "sub",
	}
}

// loadConfig reads the configuration file at path on top of the defaults.
// An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// newLogger builds a console logger writing to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
