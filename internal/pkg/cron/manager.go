package cron

import (
	"Redwatch/internal/job"
	"Redwatch/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine   *cron.Cron
	schedule string
	watchJob *job.WatchJob
}

func NewCronManager(schedule string, watchJob *job.WatchJob) *Manager {
	l := logger.NewCronLogger()
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		schedule: schedule,
		watchJob: watchJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.schedule, s.watchJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	<-s.engine.Stop().Done()
}
