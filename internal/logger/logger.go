// Package logger provides structured logging for flightdq using zap.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dbsmedya/flightdq/internal/config"
)

// Logger wraps zap.SugaredLogger with run, analysis and table context.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a Logger from configuration. Output is "stderr" (default),
// "stdout" or a file path; a file also receives a copy of everything on stderr.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	level := parseLevel(cfg.Level)

	var core zapcore.Core
	switch cfg.Output {
	case "stderr", "":
		core = zapcore.NewCore(buildEncoder(cfg.Format, true), zapcore.Lock(os.Stderr), level)
	case "stdout":
		core = zapcore.NewCore(buildEncoder(cfg.Format, true), zapcore.Lock(os.Stdout), level)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		// Files never get color escapes.
		core = zapcore.NewTee(
			zapcore.NewCore(buildEncoder(cfg.Format, false), zapcore.AddSync(file), level),
			zapcore.NewCore(buildEncoder(cfg.Format, true), zapcore.Lock(os.Stderr), level),
		)
	}

	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{SugaredLogger: base.Sugar()}, nil
}

// NewDefault creates a Logger at info level writing text to stderr.
// Reports go to stdout, so logs stay off it.
func NewDefault() *Logger {
	logger, _ := New(&config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"})
	return logger
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// buildEncoder returns a JSON encoder, or a console encoder with optional level colors.
func buildEncoder(format string, color bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func (l *Logger) with(key string, value any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(key, value)}
}

// WithRun tags entries with an analysis run id.
func (l *Logger) WithRun(runID string) *Logger { return l.with("run", runID) }

// WithAnalysis tags entries with the analysis name.
func (l *Logger) WithAnalysis(name string) *Logger { return l.with("analysis", name) }

// WithTable tags entries with the source table.
func (l *Logger) WithTable(tableName string) *Logger { return l.with("table", tableName) }
