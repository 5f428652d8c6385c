package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/orderservice/pkg/logger"
	"github.com/shashiranjanraj/orderservice/pkg/metrics"
)

// slogGorm routes gorm's logging through pkg/logger and times every
// statement into metrics.DBQueryDuration.
type slogGorm struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewLogger returns a gorm logger that reports errors and statements slower
// than slow. ErrRecordNotFound is not an error here.
func NewLogger(slow time.Duration) gormlogger.Interface {
	return &slogGorm{level: gormlogger.Warn, slowThreshold: slow}
}

func (l *slogGorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *slogGorm) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.WithCtx(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.WithCtx(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.WithCtx(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *slogGorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	metrics.DBQueryDuration.WithLabelValues(operation(sql)).Observe(elapsed.Seconds())

	if l.level <= gormlogger.Silent {
		return
	}

	log := logger.WithCtx(ctx)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		log.Error("sql", "error", err, "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		log.Warn("slow sql", "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	case l.level >= gormlogger.Info:
		log.Debug("sql", "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	}
}

func operation(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	switch v := strings.ToLower(verb); v {
	case "select", "insert", "update", "delete":
		return v
	default:
		return "other"
	}
}
