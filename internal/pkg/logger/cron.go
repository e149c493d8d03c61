package logger

import (
	log "log/slog"
)

// CronLogger 将 robfig/cron 的日志桥接到 slog
type CronLogger struct{}

func NewCronLogger() CronLogger {
	return CronLogger{}
}

func (CronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug("cron: "+msg, keysAndValues...)
}

func (CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
