// Package logger builds the slog logger used by serving entry points:
// tinted console output in development, JSON in production, optional
// rotated file output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/10imaging/serving/internal/env"
)

type options struct {
	logToFile bool
	logFile   string
	level     slog.Level
}

// Option configures the logger.
type Option func(*options)

// WithLogToFile enables writing log output to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile sets the log file path. An empty path keeps the default.
func WithLogFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.logFile = path
		}
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// New builds a logger for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := options{
		logFile: "logs/serving.log",
		level:   slog.LevelInfo,
	}
	if environment == env.Development {
		o.level = slog.LevelDebug
	}
	for _, opt := range opts {
		opt(&o)
	}

	var w io.Writer = os.Stderr
	if o.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	var handler slog.Handler
	if environment == env.Production {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}
