// Package logger holds the process-wide zap logger used by every layer.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log       *zap.Logger
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	rotator   io.Closer
)

// Init builds the process logger. The level stays adjustable afterwards through
// UpdateLevel, so a config reload never rebuilds the core.
func Init(cfg *config.LogConfig, env string) error {
	atomLevel.SetLevel(parseLevel(cfg.Level))

	sink, err := openSink(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg, env), sink, atomLevel)
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

func newEncoder(cfg *config.LogConfig, env string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	switch {
	case cfg.Format == "json":
		return zapcore.NewJSONEncoder(encCfg)
	case cfg.Format == "console", env == "dev", env == "development":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	default:
		return zapcore.NewJSONEncoder(encCfg)
	}
}

// openSink resolves log.output. File output rotates through lumberjack.
func openSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	stdout := zapcore.Lock(os.Stdout)
	if cfg.Output != "file" && cfg.Output != "both" {
		return stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    orDefault(cfg.MaxSizeMB, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		MaxAge:     orDefault(cfg.MaxAgeDays, 7),
		Compress:   cfg.Compress,
	}
	if rotator != nil {
		_ = rotator.Close()
	}
	rotator = file

	if cfg.Output == "both" {
		return zapcore.NewMultiWriteSyncer(stdout, zapcore.AddSync(file)), nil
	}
	return zapcore.AddSync(file), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Replace swaps the process logger and returns a func restoring the previous one
func Replace(l *zap.Logger) (restore func()) {
	previous := log
	log = l
	return func() { log = previous }
}

// UpdateLevel changes the level of the running logger. Unknown names mean info.
func UpdateLevel(level string) {
	next := parseLevel(level)
	if atomLevel.Level() == next {
		return
	}
	atomLevel.SetLevel(next)
	Info("Log level changed", zap.Stringer("level", next))
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, benign := range []string{"inappropriate ioctl for device", "invalid argument", "bad file descriptor"} {
		if strings.Contains(msg, benign) {
			return nil
		}
	}
	return err
}

func current() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func With(fields ...zap.Field) *zap.Logger {
	return current().With(fields...)
}

func WithRequestID(requestID string) *zap.Logger {
	return current().With(zap.String("request_id", requestID))
}

func Info(msg string, fields ...zap.Field)  { current().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { current().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { current().Error(msg, fields...) }

// Fatal logs and exits; without a logger it still exits
func Fatal(msg string, fields ...zap.Field) {
	if log == nil {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
	log.Fatal(msg, fields...)
}
