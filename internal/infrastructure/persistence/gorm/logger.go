package gorm

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// zapWriter adapts a zap logger to gorm's printf-style writer
type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Debugf(format, args...)
}

// NewLogger returns a gorm logger that writes through zap.
// Statements are only logged when debug is set; slow queries always warn.
func NewLogger(log *zap.Logger, debug bool) gormlogger.Interface {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}

	return gormlogger.New(
		zapWriter{logger: log.Named("gorm").Sugar()},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
