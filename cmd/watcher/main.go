package main

import (
	"Redwatch/internal/api/config"
	"Redwatch/internal/pkg/cron"
	"Redwatch/internal/pkg/logger"
	"Redwatch/internal/wire"
	"context"
	"errors"
	"flag"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./configs/config.yaml)")
	once := flag.Bool("once", false, "run a single watch round and exit")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}

	// 初始化日志
	logCloser, err := logger.InitLogger(cfg.Log)
	if err != nil {
		log.Error("Fatal error: failed to initialize logger", "err", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 依赖注入
	app, err := wire.BuildApplication(ctx, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("release resources failed", "err", err)
		}
	}()

	if *once {
		notes, err := app.WatchJob.RunContext(ctx)
		if err != nil {
			log.Error("watch run failed", "err", err)
			return
		}
		fmt.Printf("%d new note(s)\n", len(notes))
		return
	}

	if err = run(ctx, cfg, app); err != nil {
		log.Error("App exited with error", "err", err)
		return
	}
	log.Info("App exited successfully.")
}

func run(ctx context.Context, cfg *config.Config, app *wire.ApplicationContainer) error {
	g, ctx := errgroup.WithContext(ctx)

	// 启动后先跑一轮，之后交给定时任务
	g.Go(func() error {
		if _, err := app.WatchJob.RunContext(ctx); err != nil {
			log.Warn("initial watch run skipped", "err", err)
		}
		return nil
	})

	// 定时任务
	if err := cron.InitCron(app.CronMgr); err != nil {
		return fmt.Errorf("start cron jobs: %w", err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	if app.Router != nil {
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           app.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Info("HTTP Server starting...", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP Server shutdown failed", "err", err)
			}
			return nil
		})
	}

	// 优雅退出
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Received signal, shutting down...")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
