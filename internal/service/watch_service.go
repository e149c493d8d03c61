package service

import (
	"Redwatch/internal/api/config"
	"Redwatch/internal/model"
	"Redwatch/internal/pkg/browser"
	"Redwatch/internal/pkg/notify"
	"Redwatch/internal/pkg/util"
	"Redwatch/internal/spider"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"
)

// WatchService 一轮完整的 抓取 -> 去重 -> 持久化 -> 通知 流水线
type WatchService interface {
	RunOnce(ctx context.Context, keywords []string) []*model.Note
}

type WatchServiceImpl struct {
	opener   browser.Opener
	searcher spider.Searcher
	gate     GateService
	notifier notify.Notifier
	login    browser.LoginOptions
	cfg      config.WatchConfig
}

func NewWatchService(
	cfg config.WatchConfig,
	login browser.LoginOptions,
	opener browser.Opener,
	searcher spider.Searcher,
	gate GateService,
	notifier notify.Notifier,
) WatchService {
	return &WatchServiceImpl{
		opener:   opener,
		searcher: searcher,
		gate:     gate,
		notifier: notifier,
		login:    login,
		cfg:      cfg,
	}
}

// RunOnce 返回本轮新发现的帖子。会话建立或登录失败时返回空且不触碰数据库；
// ctx 取消时停止后续关键词，已抓到的结果照常落库并通知，写库不受取消影响
func (s *WatchServiceImpl) RunOnce(ctx context.Context, keywords []string) []*model.Note {
	start := time.Now()

	candidates, err := s.safeCollect(ctx, keywords)
	if err != nil {
		log.ErrorContext(ctx, "watch run aborted", "err", err)
		return []*model.Note{}
	}

	unique := spider.Dedupe(candidates)
	if len(unique) == 0 {
		log.InfoContext(ctx, "no notes scraped in this run", "elapsed", time.Since(start))
		return []*model.Note{}
	}

	writeCtx := context.WithoutCancel(ctx)
	fresh, err := s.gate.FilterNew(writeCtx, unique)
	if err != nil {
		log.ErrorContext(writeCtx, "persistence gate failed", "err", err)
	}

	if len(fresh) == 0 {
		log.InfoContext(ctx, "no new notes", "scraped", len(unique), "elapsed", time.Since(start))
		return []*model.Note{}
	}

	s.notifier.Notify(writeCtx, fresh)
	for _, n := range fresh {
		log.InfoContext(ctx, "new note", "keyword", n.Keyword, "note_id", n.NoteID, "title", n.Title)
	}
	log.InfoContext(ctx, "watch run finished",
		"scraped", len(unique),
		"new", len(fresh),
		"elapsed", time.Since(start))
	return fresh
}

// safeCollect 会话建立、登录等待阶段的 panic 也按本轮失败处理，不向上抛出
func (s *WatchServiceImpl) safeCollect(ctx context.Context, keywords []string) (candidates []*model.Note, err error) {
	defer func() {
		if r := recover(); r != nil {
			candidates, err = nil, runPanic{stage: "session", value: r}
		}
	}()
	return s.collect(ctx, keywords)
}

// collect 打开会话、确认登录并依次搜索各关键词，返回按关键词顺序拼接的候选
// 只有会话建立失败才返回 error，单个关键词的失败在内部消化
func (s *WatchServiceImpl) collect(ctx context.Context, keywords []string) ([]*model.Note, error) {
	sess, err := s.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.WarnContext(ctx, "close browser session failed", "err", err)
		}
	}()

	if err = browser.EnsureLoggedIn(ctx, sess, s.login); err != nil {
		return nil, err
	}

	var candidates []*model.Note
	for i, keyword := range keywords {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "watch run cancelled, skipping remaining keywords", "remaining", len(keywords)-i)
			break
		}

		notes, err := s.search(ctx, sess, keyword)
		candidates = append(candidates, notes...)
		if err != nil {
			log.WarnContext(ctx, "keyword search degraded", "keyword", keyword, "notes", len(notes), "err", err)
			var rp runPanic
			if errors.As(err, &rp) {
				break
			}
		}

		if i < len(keywords)-1 {
			_ = util.RandomSleep(ctx, s.cfg.KeywordDelayMin, s.cfg.KeywordDelayMax)
		}
	}
	return candidates, nil
}

type runPanic struct {
	stage string
	value any
}

func (p runPanic) Error() string {
	return fmt.Sprintf("%s panicked: %v", p.stage, p.value)
}

func (s *WatchServiceImpl) search(ctx context.Context, sess browser.Session, keyword string) (notes []*model.Note, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = runPanic{stage: "search", value: r}
		}
	}()
	return s.searcher.Search(ctx, sess, keyword, s.cfg.MaxPosts)
}
