package database

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm/logger"
)

// gormLogger routes gorm's internal logging through slog.
type gormLogger struct {
	log           *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(log *slog.Logger) *gormLogger {
	return &gormLogger{
		log:           log,
		level:         logger.Info,
		slowThreshold: time.Second,
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	scoped := *l
	scoped.level = level
	return &scoped
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.log.InfoContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.log.WarnContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.log.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{
		"sql", sql,
		"rows", rows,
		"elapsed", elapsed,
	}

	switch {
	case err != nil && l.level >= logger.Error:
		l.log.ErrorContext(ctx, "query failed", append(fields, "error", err.Error())...)
	case elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.log.WarnContext(ctx, "slow query", append(fields, "threshold", l.slowThreshold)...)
	case l.level == logger.Info:
		l.log.DebugContext(ctx, "query", fields...)
	}
}
