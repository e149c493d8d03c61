package browser

import (
	"Redwatch/internal/api/config"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Session 浏览器会话，仅暴露抓取流程需要的能力
type Session interface {
	Navigate(ctx context.Context, url string) error
	Snapshot(ctx context.Context) (ElementSource, error)
	ClickText(ctx context.Context, label string) error
	Scroll(ctx context.Context, deltaY float64) error
	Close() error
}

// Opener 创建浏览器会话
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

type ChromeOpener struct {
	cfg config.BrowserConfig
}

func NewChromeOpener(cfg config.BrowserConfig) *ChromeOpener {
	return &ChromeOpener{cfg: cfg}
}

func (s *ChromeOpener) Open(ctx context.Context) (Session, error) {
	return OpenChrome(ctx, s.cfg)
}

// ChromeSession 绑定持久化 profile 目录的 chromedp 会话，登录态随 profile 保留
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	navTimeout  time.Duration
	width       int
	height      int
}

// OpenChrome 以 UserDataDir 启动 Chrome，ctx 取消时浏览器随之退出
func OpenChrome(ctx context.Context, cfg config.BrowserConfig) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(cfg.UserDataDir),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", cfg.Headless),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", cfg.Locale),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		}),
	)

	startup := []chromedp.Action{chromedp.Navigate("about:blank")}
	if cfg.Timezone != "" {
		startup = append(startup, emulation.SetTimezoneOverride(cfg.Timezone))
	}
	if cfg.Locale != "" {
		startup = append(startup, emulation.SetLocaleOverride().WithLocale(cfg.Locale))
	}
	if err := chromedp.Run(browserCtx, startup...); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser (is Chrome installed?): %w", err)
	}

	log.InfoContext(ctx, "browser session opened", "user_data_dir", cfg.UserDataDir, "headless", cfg.Headless)
	return &ChromeSession{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		navTimeout:  cfg.NavTimeout,
		width:       cfg.WindowWidth,
		height:      cfg.WindowHeight,
	}, nil
}

// bind 派生出挂在浏览器上下文上的执行 ctx，同时响应调用方 ctx 的取消
func (s *ChromeSession) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate 打开页面并等待网络空闲（networkIdle 生命周期事件），超时返回 ErrNavigationTimeout
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.bind(ctx, s.navTimeout)
	defer cancel()

	idle := make(chan cdp.LoaderID, 16)
	listenCtx, stopListen := context.WithCancel(runCtx)
	defer stopListen()
	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	var loaderID cdp.LoaderID
	err := chromedp.Run(runCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, id, errText, _, err := page.Navigate(url).Do(ctx)
			if err != nil {
				return err
			}
			if errText != "" {
				return fmt.Errorf("page load error: %s", errText)
			}
			loaderID = id
			return nil
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return s.navError(ctx, runCtx, url, err)
	}

	if err = waitNetworkIdle(runCtx, idle, loaderID); err != nil {
		return s.navError(ctx, runCtx, url, err)
	}
	return nil
}

// waitNetworkIdle 等待属于 loaderID 的 networkIdle 事件，其他 loader（如上一个页面）的事件忽略
// 同文档跳转不产生新的 loader，此时 loaderID 为空，接受任意一次空闲
func waitNetworkIdle(ctx context.Context, idle <-chan cdp.LoaderID, loaderID cdp.LoaderID) error {
	for {
		select {
		case id := <-idle:
			if loaderID == "" || id == loaderID {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *ChromeSession) navError(ctx, runCtx context.Context, url string, err error) error {
	if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
	}
	return fmt.Errorf("navigate %s: %w", url, err)
}

func (s *ChromeSession) Snapshot(ctx context.Context) (ElementSource, error) {
	runCtx, cancel := s.bind(ctx, s.navTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("snapshot dom: %w", err)
	}
	return NewDocumentSource(html)
}

// ClickText 点击第一个文本恰为 label 且可点击的元素
func (s *ChromeSession) ClickText(ctx context.Context, label string) error {
	runCtx, cancel := s.bind(ctx, s.navTimeout)
	defer cancel()

	var nodes []*cdp.Node
	xpath := fmt.Sprintf(`//*[normalize-space(text())=%q]`, label)
	if err := chromedp.Run(runCtx, chromedp.Nodes(xpath, &nodes, chromedp.BySearch, chromedp.AtLeast(0))); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: text=%s", ErrElementNotFound, label)
	}

	var lastErr error
	for _, node := range nodes {
		if lastErr = chromedp.Run(runCtx, chromedp.MouseClickNode(node)); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("click text=%s: %w", label, lastErr)
}

// Scroll 在视口中心派发一次滚轮事件，用于触发懒加载
func (s *ChromeSession) Scroll(ctx context.Context, deltaY float64) error {
	runCtx, cancel := s.bind(ctx, s.navTimeout)
	defer cancel()

	x, y := float64(s.width)/2, float64(s.height)/2
	return chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return input.DispatchMouseEvent(input.MouseWheel, x, y).
			WithDeltaX(0).
			WithDeltaY(deltaY).
			Do(ctx)
	}))
}

// Close 关闭浏览器并释放 profile 目录
func (s *ChromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	return err
}
