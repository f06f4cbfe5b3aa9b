package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestGormLogMode(t *testing.T) {
	l := NewGormLogger(gormlogger.Warn, 0)
	quiet := l.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Warn, l.LogLevel)
	assert.Equal(t, gormlogger.Silent, quiet.(*GormLogger).LogLevel)
}

// captureLog swaps the global logger for one writing JSON lines to a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Log
	Log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { Log = prev })
	return &buf
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "", RequestID(WithRequestID(context.Background(), "")))
}

func TestGormTraceCarriesRequestID(t *testing.T) {
	buf := captureLog(t)
	l := NewGormLogger(gormlogger.Info, 0)
	ctx := WithRequestID(context.Background(), "req-42")

	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT * FROM charges", 3 }, nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"sql"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"sql":"SELECT * FROM charges"`)
	assert.Contains(t, out, `"rows":3`)
}

func TestGormTraceLevels(t *testing.T) {
	query := func() (string, int64) { return "UPDATE contracts SET total_amount = 1", 0 }

	tests := []struct {
		name  string
		level gormlogger.LogLevel
		slow  time.Duration
		err   error
		want  string
	}{
		{"error", gormlogger.Warn, 0, errors.New("disk full"), `"msg":"sql failed"`},
		{"not found is quiet", gormlogger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow", gormlogger.Warn, time.Nanosecond, nil, `"msg":"slow sql"`},
		{"info filtered at warn", gormlogger.Warn, 0, nil, ""},
		{"silent", gormlogger.Silent, 0, errors.New("disk full"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			l := NewGormLogger(tt.level, tt.slow)

			l.Trace(WithRequestID(context.Background(), "req-7"), time.Now().Add(-time.Millisecond), query, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), `"request_id":"req-7"`)
		})
	}
}
