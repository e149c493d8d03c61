package job

import (
	"Redwatch/internal/model"
	"Redwatch/internal/pkg/consts"
	"Redwatch/internal/pkg/logger"
	"Redwatch/internal/service"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Locker 跨进程的单实例锁，未配置时仅依赖进程内互斥
type Locker interface {
	TryLock(ctx context.Context, owner string) (bool, error)
	UnLock(ctx context.Context, owner string) error
}

// WatchJob 定时执行一轮关键词监控，同一时刻只允许一轮在跑
type WatchJob struct {
	root     context.Context
	svc      service.WatchService
	keywords []string
	timeout  time.Duration
	locker   Locker
	mu       sync.Mutex
}

func NewWatchJob(root context.Context, svc service.WatchService, keywords []string, timeout time.Duration, locker Locker) *WatchJob {
	return &WatchJob{
		root:     root,
		svc:      svc,
		keywords: append([]string(nil), keywords...),
		timeout:  timeout,
		locker:   locker,
	}
}

// Run 实现 cron.Job
func (s *WatchJob) Run() {
	_, _ = s.RunContext(s.root)
}

// RunContext 执行一轮监控，已有一轮在运行时返回 ErrRunInProgress
func (s *WatchJob) RunContext(ctx context.Context) ([]*model.Note, error) {
	if !s.mu.TryLock() {
		log.WarnContext(ctx, "previous watch run still in progress, skipping")
		return nil, service.ErrRunInProgress
	}
	defer s.mu.Unlock()

	traceID := consts.TracePrefixRun + uuid.NewString()
	ctx = logger.WithTraceID(ctx, traceID)

	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, traceID)
		if err != nil {
			log.ErrorContext(ctx, "acquire run lock failed", "err", err)
			return nil, err
		}
		if !ok {
			log.WarnContext(ctx, "another instance holds the run lock, skipping")
			return nil, service.ErrRunInProgress
		}
		defer func() {
			if err := s.locker.UnLock(context.WithoutCancel(ctx), traceID); err != nil {
				log.WarnContext(ctx, "release run lock failed", "err", err)
			}
		}()
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.InfoContext(ctx, "watch run started", "keywords", s.keywords)
	return s.svc.RunOnce(ctx, s.keywords), nil
}
