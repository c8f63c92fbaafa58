package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// gormLevel is shared by every adapter built with NewGormLoggerAdapter so
// UpdateGormLevel reaches connections that are already open.
var gormLevel atomic.Int32

func init() {
	gormLevel.Store(int32(gormlogger.Warn))
}

// ParseGormLevel maps database.log_level onto gorm's levels. Unknown values mean Warn.
func ParseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

// UpdateGormLevel changes the level of every shared gorm adapter
func UpdateGormLevel(level string) {
	next := ParseGormLevel(level)
	if gormlogger.LogLevel(gormLevel.Swap(int32(next))) != next {
		Info("Database log level changed", zap.String("level", level))
	}
}

// GormLoggerConfig tunes the gorm adapter.
type GormLoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}
}

// GormLoggerAdapter sends gorm's statement log to zap, tagged with the
// request id of the calling context.
type GormLoggerAdapter struct {
	level  *atomic.Int32
	config *GormLoggerConfig
}

// NewGormLoggerAdapter sets the shared level and returns an adapter following it
func NewGormLoggerAdapter(level gormlogger.LogLevel) *GormLoggerAdapter {
	gormLevel.Store(int32(level))
	return &GormLoggerAdapter{level: &gormLevel, config: DefaultGormLoggerConfig()}
}

// NewGormLoggerAdapterWithConfig returns an adapter with its own fixed level
func NewGormLoggerAdapterWithConfig(level gormlogger.LogLevel, config *GormLoggerConfig) *GormLoggerAdapter {
	if config == nil {
		config = DefaultGormLoggerConfig()
	}
	own := &atomic.Int32{}
	own.Store(int32(level))
	return &GormLoggerAdapter{level: own, config: config}
}

// LogMode detaches the returned adapter from the shared level
func (l *GormLoggerAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return NewGormLoggerAdapterWithConfig(level, l.config)
}

func (l *GormLoggerAdapter) enabled(level gormlogger.LogLevel) bool {
	return gormlogger.LogLevel(l.level.Load()) >= level
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(gormlogger.Info) {
		FromContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(gormlogger.Warn) {
		FromContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(gormlogger.Error) {
		FromContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs failures at Error, slow statements at Warn and everything else at Info
func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if !l.enabled(gormlogger.Error) {
		return
	}
	elapsed := time.Since(begin)
	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)

	switch {
	case err != nil && !(notFound && l.config.IgnoreRecordNotFoundError):
		sql, rows := fc()
		FromContext(ctx).Error("Database operation failed", statementFields(sql, rows, elapsed, zap.Error(err))...)
	case l.config.SlowThreshold > 0 && elapsed > l.config.SlowThreshold && l.enabled(gormlogger.Warn):
		sql, rows := fc()
		FromContext(ctx).Warn("Slow SQL query", statementFields(sql, rows, elapsed,
			zap.Duration("threshold", l.config.SlowThreshold))...)
	case l.enabled(gormlogger.Info):
		sql, rows := fc()
		FromContext(ctx).Info("SQL query executed", statementFields(sql, rows, elapsed)...)
	}
}

func statementFields(sql string, rows int64, elapsed time.Duration, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}, extra...)
}
