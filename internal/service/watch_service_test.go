package service

import (
	"Redwatch/internal/api/config"
	"Redwatch/internal/model"
	"Redwatch/internal/pkg/browser"
	"Redwatch/internal/pkg/browser/browsertest"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	homeURL       = "https://www.xiaohongshu.com"
	loggedInHome  = `<html><body><div class="header-user"><img class="avatar"/></div></body></html>`
	loggedOutHome = `<html><body><button>登录</button></body></html>`
)

// stubSearcher 按关键词返回固定结果
type stubSearcher struct {
	results map[string][]*model.Note
	errs    map[string]error
	panics  map[string]bool
	onCall  func(keyword string)
	calls   []string
}

func (s *stubSearcher) Search(_ context.Context, _ browser.Session, keyword string, _ int) ([]*model.Note, error) {
	s.calls = append(s.calls, keyword)
	if s.onCall != nil {
		s.onCall(keyword)
	}
	if s.panics[keyword] {
		panic("selector engine exploded")
	}
	var out []*model.Note
	for _, n := range s.results[keyword] {
		c := *n
		out = append(out, &c)
	}
	return out, s.errs[keyword]
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]*model.Note
}

func (r *recordingNotifier) Notify(_ context.Context, notes []*model.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notes)
}

type fixture struct {
	svc      WatchService
	gate     GateService
	session  *browsertest.FakeSession
	opener   *browsertest.Opener
	searcher *stubSearcher
	notifier *recordingNotifier
}

func newFixture(t *testing.T, home string, loginTimeout time.Duration) *fixture {
	t.Helper()
	sess := browsertest.NewFakeSession(map[string]string{homeURL: home})
	f := &fixture{
		gate:     testGate(t),
		session:  sess,
		opener:   &browsertest.Opener{Session: sess},
		searcher: &stubSearcher{},
		notifier: &recordingNotifier{},
	}
	login := browser.LoginOptions{
		HomeURL:      homeURL,
		PromptText:   "登录",
		LoggedIn:     browser.SelectorSet{`[class*="user"]`, `[class*="avatar"]`},
		Timeout:      loginTimeout,
		PollInterval: 5 * time.Millisecond,
	}
	f.svc = NewWatchService(config.WatchConfig{MaxPosts: 15}, login, f.opener, f.searcher, f.gate, f.notifier)
	return f
}

func TestRunOnce_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, loggedInHome, time.Second)
	f.searcher.results = map[string][]*model.Note{
		"a": {{NoteID: "1", Keyword: "a"}, {NoteID: "2", Keyword: "a"}},
		"b": {{NoteID: "1", Keyword: "b"}},
	}

	fresh := f.svc.RunOnce(ctx, []string{"a", "b"})

	require.Len(t, fresh, 2)
	assert.Equal(t, "1", fresh[0].NoteID)
	assert.Equal(t, "a", fresh[0].Keyword)
	assert.Equal(t, "2", fresh[1].NoteID)
	assert.Equal(t, []string{"a", "b"}, f.searcher.calls)

	rows, err := f.gate.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, []string{"1", "2"}, noteIDs(f.notifier.calls[0]))
	assert.True(t, f.session.Closed)
}

func TestRunOnce_NotifiesAtMostOncePerNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, loggedInHome, time.Second)
	f.searcher.results = map[string][]*model.Note{
		"a": {{NoteID: "1", Keyword: "a"}, {NoteID: "2", Keyword: "a"}},
	}

	first := f.svc.RunOnce(ctx, []string{"a"})
	second := f.svc.RunOnce(ctx, []string{"a"})

	assert.Len(t, first, 2)
	assert.Empty(t, second)

	notified := map[string]int{}
	for _, call := range f.notifier.calls {
		for _, n := range call {
			notified[n.NoteID]++
		}
	}
	assert.Equal(t, map[string]int{"1": 1, "2": 1}, notified)
}

func TestRunOnce_LoginTimeout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, loggedOutHome, 30*time.Millisecond)
	f.searcher.results = map[string][]*model.Note{"a": {{NoteID: "1", Keyword: "a"}}}

	fresh := f.svc.RunOnce(ctx, []string{"a"})

	assert.Empty(t, fresh)
	assert.Empty(t, f.searcher.calls)
	assert.Empty(t, f.notifier.calls)
	assert.True(t, f.session.Closed)

	rows, err := f.gate.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunOnce_OpenSessionFails(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)
	f.opener.Err = errors.New("chrome not found")

	fresh := f.svc.RunOnce(context.Background(), []string{"a"})

	assert.Empty(t, fresh)
	assert.Empty(t, f.searcher.calls)
}

func TestRunOnce_KeywordFailureIsContained(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)
	f.searcher.results = map[string][]*model.Note{
		"a": {{NoteID: "1", Keyword: "a"}},
		"b": {{NoteID: "2", Keyword: "b"}},
	}
	f.searcher.errs = map[string]error{"a": browser.ErrNavigationTimeout}

	fresh := f.svc.RunOnce(context.Background(), []string{"a", "b"})

	assert.Equal(t, []string{"1", "2"}, noteIDs(fresh))
}

func TestRunOnce_PanicStopsRunButKeepsAccumulated(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)
	f.searcher.results = map[string][]*model.Note{
		"a": {{NoteID: "1", Keyword: "a"}},
		"c": {{NoteID: "3", Keyword: "c"}},
	}
	f.searcher.panics = map[string]bool{"b": true}

	fresh := f.svc.RunOnce(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, []string{"1"}, noteIDs(fresh))
	assert.Equal(t, []string{"a", "b"}, f.searcher.calls)
	assert.Len(t, f.notifier.calls, 1)
}

func TestRunOnce_NothingScraped(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)

	fresh := f.svc.RunOnce(context.Background(), []string{"a"})

	assert.Empty(t, fresh)
	assert.Empty(t, f.notifier.calls)
}

func TestRunOnce_CancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t, loggedInHome, time.Second)
	f.searcher.results = map[string][]*model.Note{
		"a": {{NoteID: "1", Keyword: "a"}},
		"b": {{NoteID: "2", Keyword: "b"}},
	}
	f.searcher.onCall = func(keyword string) {
		if keyword == "a" {
			cancel()
		}
	}

	fresh := f.svc.RunOnce(ctx, []string{"a", "b"})

	assert.Equal(t, []string{"a"}, f.searcher.calls)
	assert.Equal(t, []string{"1"}, noteIDs(fresh))
	assert.True(t, f.session.Closed)
	require.Len(t, f.notifier.calls, 1)

	rows, err := f.gate.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type panicOpener struct{}

func (panicOpener) Open(context.Context) (browser.Session, error) {
	panic("devtools handshake exploded")
}

func TestRunOnce_OpenPanicIsContained(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)
	svc := NewWatchService(config.WatchConfig{MaxPosts: 15}, browser.LoginOptions{HomeURL: homeURL}, panicOpener{}, f.searcher, f.gate, f.notifier)

	var fresh []*model.Note
	assert.NotPanics(t, func() {
		fresh = svc.RunOnce(context.Background(), []string{"a"})
	})
	assert.Empty(t, fresh)
	assert.Empty(t, f.searcher.calls)
}

func TestRunOnce_LoginPanicClosesSession(t *testing.T) {
	f := newFixture(t, loggedInHome, time.Second)
	f.session.SnapshotHook = func(int, string) string {
		panic("renderer crashed")
	}

	var fresh []*model.Note
	assert.NotPanics(t, func() {
		fresh = f.svc.RunOnce(context.Background(), []string{"a"})
	})
	assert.Empty(t, fresh)
	assert.Empty(t, f.searcher.calls)
	assert.Empty(t, f.notifier.calls)
	assert.True(t, f.session.Closed)
}
