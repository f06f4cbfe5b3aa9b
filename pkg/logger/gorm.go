package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type requestIDKey struct{}

// WithRequestID tags ctx so log lines emitted further down, SQL included,
// carry the id of the HTTP request that caused them.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// GormLogger routes gorm's output into the global slog logger. Lookups that
// find nothing surface as NotFound errors in the services, so they are not
// reported as SQL errors.
type GormLogger struct {
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(logLevel gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		LogLevel:      logLevel,
		SlowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Info, slog.LevelInfo, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Warn, slog.LevelWarn, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.emit(ctx, gormlogger.Error, slog.LevelError, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.SlowThreshold > 0 && elapsed > l.SlowThreshold

	switch {
	case failed && l.LogLevel >= gormlogger.Error:
		l.emit(ctx, gormlogger.Error, slog.LevelError, "sql failed", l.queryAttrs(fc, elapsed, slog.String("error", err.Error()))...)
	case slow && l.LogLevel >= gormlogger.Warn:
		l.emit(ctx, gormlogger.Warn, slog.LevelWarn, "slow sql", l.queryAttrs(fc, elapsed, slog.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		l.emit(ctx, gormlogger.Info, slog.LevelInfo, "sql", l.queryAttrs(fc, elapsed)...)
	}
}

func (l *GormLogger) queryAttrs(fc func() (string, int64), elapsed time.Duration, extra ...any) []any {
	sql, rows := fc()
	attrs := []any{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
	return append(attrs, extra...)
}

func (l *GormLogger) emit(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, attrs ...any) {
	if l.LogLevel < threshold {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	Log.Log(ctx, level, msg, attrs...)
}
