// Package browsertest 提供内存版 browser.Session，页面内容由 HTML 片段给出
package browsertest

import (
	"Redwatch/internal/pkg/browser"
	"context"
	"sync"
)

// FakeSession 按 URL 返回预置 HTML 的会话
type FakeSession struct {
	mu sync.Mutex

	Pages    map[string]string
	NavErr   map[string]error
	ClickErr error
	// SnapshotHook 非空时接管快照内容，n 为第几次快照（从 1 开始）
	SnapshotHook func(n int, current string) string

	current   string
	snapshots int
	Visited   []string
	Clicked   []string
	Scrolled  int
	Closed    bool
}

func NewFakeSession(pages map[string]string) *FakeSession {
	return &FakeSession{Pages: pages, NavErr: map[string]error{}}
}

func (s *FakeSession) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Visited = append(s.Visited, url)
	s.current = s.Pages[url]
	return s.NavErr[url]
}

func (s *FakeSession) Snapshot(ctx context.Context) (browser.ElementSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.snapshots++
	html := s.current
	if s.SnapshotHook != nil {
		html = s.SnapshotHook(s.snapshots, s.current)
	}
	return browser.NewDocumentSource(html)
}

func (s *FakeSession) ClickText(_ context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clicked = append(s.Clicked, label)
	return s.ClickErr
}

func (s *FakeSession) Scroll(_ context.Context, _ float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Scrolled++
	return nil
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

func (s *FakeSession) Snapshots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots
}

// Opener 总是返回同一个会话
type Opener struct {
	Session browser.Session
	Err     error
	Opened  int
}

func (o *Opener) Open(context.Context) (browser.Session, error) {
	o.Opened++
	if o.Err != nil {
		return nil, o.Err
	}
	return o.Session, nil
}
