// Package logging builds the zap logger shared by every binary.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"scentquiz/internal/config"
)

// New builds a logger from the logging section of the configuration
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	if output != "stderr" && output != "stdout" {
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{output}

	return zc.Build()
}

// ForTUI redirects console output to a file under the state directory, since
// anything written to stderr would corrupt the terminal UI
func ForTUI(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Output == "" || cfg.Output == "stderr" || cfg.Output == "stdout" {
		cfg.Output = filepath.Join(config.StateDir(), "scentquiz.log")
	}
	return New(cfg)
}
