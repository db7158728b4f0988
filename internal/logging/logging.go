// Package logging builds the zap loggers used by the CLI, the HTTP server and the engine.
package logging

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level
	Level string `json:"level" yaml:"level"`

	// Format is the output format (json, console)
	Format string `json:"format" yaml:"format"`

	// Output is the output destination (stdout, stderr, file path)
	Output string `json:"output" yaml:"output"`

	// Development enables development mode
	Development bool `json:"development" yaml:"development"`
}

// DefaultConfig logs info and above to stderr in console format
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "console",
		Output:      "stderr",
		Development: false,
	}
}

// New builds a logger from cfg. An unknown level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var writeSyncer zapcore.WriteSyncer
	switch cfg.Output {
	case "", "stderr":
		writeSyncer = zapcore.AddSync(os.Stderr)
	case "stdout":
		writeSyncer = zapcore.AddSync(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Output, err)
		}
		writeSyncer = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), writeSyncer, level)

	if cfg.Development {
		return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
	}
	return zap.New(core, zap.AddCaller()), nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// EngineLogger adapts a zap logger to calculation.Logger
type EngineLogger struct {
	sugar *zap.SugaredLogger
}

var _ calculation.Logger = (*EngineLogger)(nil)

// NewEngineLogger wraps l; a nil logger discards everything
func NewEngineLogger(l *zap.Logger) *EngineLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &EngineLogger{sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (el *EngineLogger) Debugf(format string, args ...any) { el.sugar.Debugf(format, args...) }
func (el *EngineLogger) Infof(format string, args ...any)  { el.sugar.Infof(format, args...) }
func (el *EngineLogger) Warnf(format string, args ...any)  { el.sugar.Warnf(format, args...) }
func (el *EngineLogger) Errorf(format string, args ...any) { el.sugar.Errorf(format, args...) }
