package wire

import (
	"Redwatch/internal/api"
	"Redwatch/internal/api/config"
	"Redwatch/internal/api/handler"
	"Redwatch/internal/job"
	"Redwatch/internal/pkg/browser"
	"Redwatch/internal/pkg/consts"
	"Redwatch/internal/pkg/cron"
	"Redwatch/internal/pkg/database"
	"Redwatch/internal/pkg/kafka"
	"Redwatch/internal/pkg/notify"
	"Redwatch/internal/pkg/redis"
	"Redwatch/internal/service"
	"Redwatch/internal/spider"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	Gate     service.GateService
	WatchJob *job.WatchJob
	CronMgr  *cron.Manager
	closers  []io.Closer
}

// Close 释放 Kafka producer、Redis 等长连接
func (s *ApplicationContainer) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func BuildApplication(ctx context.Context, cfg *config.Config) (*ApplicationContainer, error) {
	app := &ApplicationContainer{}

	gate := service.NewGateService(database.NewOpener(cfg.DB))
	if err := gate.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate note store: %w", err)
	}

	channels, err := app.buildChannels(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	sel := cfg.Browser.Selectors
	login := browser.LoginOptions{
		HomeURL:      cfg.Browser.BaseURL,
		PromptText:   sel.LoginPromptText,
		LoggedIn:     browser.SelectorSet(sel.LoggedIn),
		Timeout:      cfg.Browser.LoginTimeout,
		PollInterval: cfg.Browser.PollInterval,
	}

	watchSvc := service.NewWatchService(
		cfg.Watch,
		login,
		browser.NewChromeOpener(cfg.Browser),
		spider.NewXhsSearcher(spider.NewSearchOptions(cfg.Watch, cfg.Browser)),
		gate,
		notify.NewMultiNotifier(channels...),
	)

	var locker job.Locker
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		app.closers = append(app.closers, rdb)
		locker = redis.NewRunLock(rdb, consts.WatchRunLock, cfg.Redis.LockTTL)
	}

	app.Gate = gate
	app.WatchJob = job.NewWatchJob(ctx, watchSvc, cfg.Watch.Keywords, cfg.Watch.RunTimeout, locker)
	app.CronMgr = cron.NewCronManager(cfg.Watch.Schedule, app.WatchJob)

	if cfg.Server.Enabled {
		app.Router = api.SetupRouter(&api.HandlersGroup{
			NoteHandler: handler.NewNoteHandler(gate, app.WatchJob),
		})
	}
	return app, nil
}

func (s *ApplicationContainer) buildChannels(ctx context.Context, cfg *config.Config) ([]notify.Channel, error) {
	var channels []notify.Channel

	if cfg.ServerChan.SendKey != "" {
		channels = append(channels, notify.NewServerChan(cfg.ServerChan))
	} else {
		log.WarnContext(ctx, "serverchan send key not configured, channel disabled")
	}

	if cfg.Email.Enabled {
		channels = append(channels, notify.NewEmail(cfg.Email))
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewSyncProducer(cfg.Kafka)
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		ch := notify.NewKafka(producer, cfg.Kafka.Topic)
		s.closers = append(s.closers, ch)
		channels = append(channels, ch)
	}

	if len(channels) == 0 {
		log.WarnContext(ctx, "no notification channel enabled, new notes will only be stored")
	}
	return channels, nil
}
