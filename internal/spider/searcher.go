package spider

import (
	"Redwatch/internal/api/config"
	"Redwatch/internal/model"
	"Redwatch/internal/pkg/browser"
	"Redwatch/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"
)

const (
	TitleMaxRunes = 100
	fallbackTitle = "小红书笔记 "
)

// Searcher 在已登录的会话中按关键词抓取候选帖子
type Searcher interface {
	Search(ctx context.Context, sess browser.Session, keyword string, maxResults int) ([]*model.Note, error)
}

// SearchOptions 搜索页的地址、选择器与节奏参数
type SearchOptions struct {
	BaseURL      string
	SortLabel    string
	Cards        []browser.SelectorSet
	Link         browser.SelectorSet
	Title        browser.SelectorSet
	Time         browser.SelectorSet
	ScrollRounds int
	ScrollStep   float64
	SettleMin    time.Duration
	SettleMax    time.Duration
}

func NewSearchOptions(watch config.WatchConfig, b config.BrowserConfig) SearchOptions {
	cards := make([]browser.SelectorSet, 0, len(b.Selectors.Cards))
	for _, tier := range b.Selectors.Cards {
		cards = append(cards, tier)
	}
	return SearchOptions{
		BaseURL:      strings.TrimRight(b.BaseURL, "/"),
		SortLabel:    b.Selectors.SortLabel,
		Cards:        cards,
		Link:         b.Selectors.Link,
		Title:        b.Selectors.Title,
		Time:         b.Selectors.Time,
		ScrollRounds: watch.ScrollRounds,
		ScrollStep:   float64(watch.ScrollStep),
		SettleMin:    watch.SettleMin,
		SettleMax:    watch.SettleMax,
	}
}

type XhsSearcher struct {
	opts SearchOptions
}

func NewXhsSearcher(opts SearchOptions) *XhsSearcher {
	return &XhsSearcher{opts: opts}
}

// SearchURL 关键词搜索页地址
func SearchURL(baseURL, keyword string) string {
	return fmt.Sprintf("%s/search_result?keyword=%s&source=web_search_result_notes",
		strings.TrimRight(baseURL, "/"), url.QueryEscape(keyword))
}

// FallbackTitle 标题缺失时用 note_id 前缀合成标题
func FallbackTitle(noteID string) string {
	prefix := noteID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fallbackTitle + prefix
}

// Search 每一步失败都只降级不中断，返回尽力抓到的结果
// 返回的 error 仅用于上报（导航超时或 ctx 取消），结果切片仍然有效
func (s *XhsSearcher) Search(ctx context.Context, sess browser.Session, keyword string, maxResults int) ([]*model.Note, error) {
	log.InfoContext(ctx, "searching keyword", "keyword", keyword)
	var stepErr error

	if err := sess.Navigate(ctx, SearchURL(s.opts.BaseURL, keyword)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WarnContext(ctx, "search page did not settle, continuing with partial page", "keyword", keyword, "err", err)
		stepErr = err
	}
	if err := s.settle(ctx); err != nil {
		return nil, err
	}

	s.sortByLatest(ctx, sess)

	for i := 0; i < s.opts.ScrollRounds; i++ {
		if err := sess.Scroll(ctx, s.opts.ScrollStep); err != nil {
			log.WarnContext(ctx, "scroll failed", "keyword", keyword, "round", i+1, "err", err)
		}
		if err := util.RandomSleep(ctx, s.opts.SettleMin/2, s.opts.SettleMax/2); err != nil {
			return nil, err
		}
	}

	src, err := sess.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WarnContext(ctx, "snapshot search page failed", "keyword", keyword, "err", err)
		return nil, err
	}

	notes := s.collect(ctx, src, keyword, maxResults)
	log.InfoContext(ctx, "keyword search finished", "keyword", keyword, "notes", len(notes))
	return notes, stepErr
}

func (s *XhsSearcher) sortByLatest(ctx context.Context, sess browser.Session) {
	if s.opts.SortLabel == "" {
		return
	}
	if err := sess.ClickText(ctx, s.opts.SortLabel); err != nil {
		log.InfoContext(ctx, "latest sort unavailable, using default ordering", "err", err)
		return
	}
	log.DebugContext(ctx, "switched to latest ordering")
	_ = s.settle(ctx)
}

func (s *XhsSearcher) settle(ctx context.Context) error {
	return util.RandomSleep(ctx, s.opts.SettleMin, s.opts.SettleMax)
}

// collect 在选择器级联命中的元素里最多检查 2*maxResults 个候选
func (s *XhsSearcher) collect(ctx context.Context, src browser.ElementSource, keyword string, maxResults int) []*model.Note {
	cards, tier := browser.Cascade(src, s.opts.Cards)
	log.InfoContext(ctx, "candidate elements located", "keyword", keyword, "count", len(cards), "tier", tier)

	limit := 2 * maxResults
	if len(cards) < limit {
		limit = len(cards)
	}

	seen := make(map[string]struct{})
	notes := make([]*model.Note, 0, maxResults)
	for _, card := range cards[:limit] {
		note, ok := s.extract(card, keyword)
		if !ok {
			continue
		}
		if _, dup := seen[note.NoteID]; dup {
			continue
		}
		seen[note.NoteID] = struct{}{}
		notes = append(notes, note)
		if len(notes) >= maxResults {
			break
		}
	}
	return notes
}

// extract 解析单个卡片，链接或 note_id 缺失时返回 false
func (s *XhsSearcher) extract(card browser.Element, keyword string) (*model.Note, bool) {
	href, _ := card.Attr("href")
	if href == "" {
		if link, ok := browser.First(card, s.opts.Link); ok {
			href, _ = link.Attr("href")
		}
	}
	if href == "" {
		return nil, false
	}

	fullURL := AbsoluteURL(s.opts.BaseURL, href)
	noteID, ok := ExtractNoteID(fullURL)
	if !ok {
		log.Debug("no note id in link", "href", href)
		return nil, false
	}

	title := ""
	if el, ok := browser.First(card, s.opts.Title); ok {
		title = util.TruncateRunes(util.CollapseSpace(el.Text()), TitleMaxRunes)
	}
	if title == "" {
		title = FallbackTitle(noteID)
	}

	publishTime := ""
	if el, ok := browser.First(card, s.opts.Time); ok {
		publishTime = util.CollapseSpace(el.Text())
	}

	return &model.Note{
		NoteID:      noteID,
		Platform:    model.PlatformXiaohongshu,
		Title:       title,
		PublishTime: publishTime,
		URL:         fullURL,
		Keyword:     keyword,
	}, true
}
