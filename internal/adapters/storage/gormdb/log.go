package gormdb

import (
	"context"
	"fmt"
	"time"

	"dog-breeds-api/internal/platform/logger"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLog manda los logs de gorm al Logger del servicio (mismo formato/destino que el resto).
type gormLog struct {
	log   logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLog(log logger.Logger, level logger.Level) gormlogger.Interface {
	if log == nil {
		log = logger.NewNop()
	}
	return &gormLog{
		log:   log.With(map[string]any{"component": "gorm"}),
		level: gormLevel(level),
		slow:  slowQueryThreshold,
	}
}

// gormLevel: SQL de cada query solo en debug.
func gormLevel(level logger.Level) gormlogger.LogLevel {
	switch level {
	case logger.Debug:
		return gormlogger.Info
	case logger.Info, logger.Warn:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

func (l *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *gormLog) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, data...), nil)
	}
}

func (l *gormLog) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...), nil)
	}
}

func (l *gormLog) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, data...), nil)
	}
}

func (l *gormLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	// ErrRecordNotFound lo traduce el repo a breeds.ErrNotFound; no es un error de SQL.
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error("sql error", map[string]any{
			"error":       err,
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		})
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn("slow sql", map[string]any{
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		})
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug("sql", map[string]any{
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		})
	}
}
