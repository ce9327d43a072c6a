package database

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func capturedGormLogger(buf *bytes.Buffer) *gormLogger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newGormLogger(slog.New(handler))
}

func TestGormLoggerTrace(t *testing.T) {
	began := time.Now()

	t.Run("successful query logs at debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := capturedGormLogger(&buf)

		l.Trace(context.Background(), began, func() (string, int64) { return "SELECT 1", 1 }, nil)
		assert.Contains(t, buf.String(), "SELECT 1")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("failed query logs at error", func(t *testing.T) {
		var buf bytes.Buffer
		l := capturedGormLogger(&buf)

		l.Trace(context.Background(), began, func() (string, int64) { return "SELECT nope", 0 }, errors.New("no such column"))
		assert.Contains(t, buf.String(), "query failed")
		assert.Contains(t, buf.String(), "no such column")
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		var buf bytes.Buffer
		l := capturedGormLogger(&buf)

		l.Trace(context.Background(), time.Now().Add(-2*time.Second), func() (string, int64) { return "SELECT slow", 10 }, nil)
		assert.Contains(t, buf.String(), "slow query")
	})

	t.Run("silent mode drops everything", func(t *testing.T) {
		var buf bytes.Buffer
		l := capturedGormLogger(&buf)

		silent := l.LogMode(logger.Silent)
		silent.Trace(context.Background(), began, func() (string, int64) { return "SELECT 1", 1 }, nil)
		assert.Empty(t, buf.String())
	})
}

func TestGormLoggerLogModeCopies(t *testing.T) {
	var buf bytes.Buffer
	l := capturedGormLogger(&buf)

	scoped := l.LogMode(logger.Error)
	assert.NotSame(t, l, scoped)
	assert.Equal(t, logger.Info, l.level, "original level untouched")
}
