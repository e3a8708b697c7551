// Package logger builds the zap logger shared by attrdoctor commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps the application's zap logger.
type Logger struct {
	zap    *zap.Logger
	closer io.Closer
}

// Config describes both log sinks.
type Config struct {
	Level      string // console level: debug, info, warning, error, critical
	FileLevel  string // file level, defaults to Level
	OutputPath string // log file, empty disables file logging
	MaxSizeMB  int    // rotate after this many megabytes
	MaxFiles   int    // rotated files to keep
	Compress   bool   // gzip rotated files

	// Console receives human-readable output; nil means stderr.
	Console zapcore.WriteSyncer
}

// New creates a logger writing console output and, when OutputPath is set,
// rotated JSON lines to a file.
func New(cfg Config) (*Logger, error) {
	console := cfg.Console
	if console == nil {
		console = zapcore.Lock(os.Stderr)
	}

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Console != nil {
		consoleEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	consoleEncoder.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), console, parseLogLevel(cfg.Level)),
	}

	var closer io.Closer
	if cfg.OutputPath != "" {
		logDir := filepath.Dir(cfg.OutputPath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxFiles,
			Compress:   cfg.Compress,
		}
		closer = rotator

		fileLevel := cfg.FileLevel
		if fileLevel == "" {
			fileLevel = cfg.Level
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(rotator),
			parseLogLevel(fileLevel),
		))
	}

	return &Logger{
		zap:    zap.New(zapcore.NewTee(cores...)),
		closer: closer,
	}, nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// Zap returns the underlying logger for packages that take *zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// With returns a child logger sharing the same sinks.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Close flushes buffers and releases the log file.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// parseLogLevel maps config strings to zap levels, info by default.
func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warning", "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "critical", "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
