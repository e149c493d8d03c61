package logger

import (
	"Redwatch/internal/api/config"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogWriter 供 gin 访问日志等非 slog 输出复用
var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog，配置了 file 时同时写入文件
// 返回的 Closer 用于进程退出时关闭日志文件
func InitLogger(cfg config.LogConfig) (io.Closer, error) {
	opts := &log.HandlerOptions{Level: parseLevel(cfg.Level)}
	hStdout := log.NewJSONHandler(os.Stdout, opts)

	var finalHandler log.Handler = hStdout
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		finalHandler = &TeeHandler{
			handlers: []log.Handler{hStdout, log.NewJSONHandler(f, opts)},
		}
		LogWriter = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
	return closer, nil
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
