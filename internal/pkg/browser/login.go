package browser

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"
)

// LoginState 登录状态机
type LoginState int

const (
	StateUnknown LoginState = iota
	StateLoggedOut
	StateAwaitingLogin
	StateLoggedIn
)

func (s LoginState) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateAwaitingLogin:
		return "awaiting_login"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

type LoginOptions struct {
	HomeURL      string
	PromptText   string
	LoggedIn     SelectorSet
	Timeout      time.Duration
	PollInterval time.Duration
}

// DetectLoginState 依据快照判断当前是否需要登录
func DetectLoginState(src ElementSource, opts LoginOptions) LoginState {
	if len(src.FindText(opts.PromptText)) > 0 {
		return StateLoggedOut
	}
	return StateLoggedIn
}

// EnsureLoggedIn 打开首页检测登录态，未登录时阻塞等待人工在浏览器中完成登录
// 超时返回 ErrLoginTimeout，调用方应放弃本轮运行
func EnsureLoggedIn(ctx context.Context, sess Session, opts LoginOptions) error {
	state := StateUnknown
	if err := sess.Navigate(ctx, opts.HomeURL); err != nil {
		return fmt.Errorf("open home page: %w", err)
	}

	src, err := sess.Snapshot(ctx)
	if err != nil {
		return err
	}
	if state = DetectLoginState(src, opts); state == StateLoggedIn {
		log.InfoContext(ctx, "session already logged in")
		return nil
	}

	log.WarnContext(ctx, "session is logged out, please log in manually in the opened browser window",
		"timeout", opts.Timeout)
	state = StateAwaitingLogin

	err = AwaitCondition(ctx, func(ctx context.Context) (bool, error) {
		src, err := sess.Snapshot(ctx)
		if err != nil {
			log.DebugContext(ctx, "snapshot while awaiting login failed", "err", err)
			return false, nil
		}
		// 登录后页面仍可能出现“登录”字样（如登录设备管理），只看登录态元素
		return len(src.FindAll(opts.LoggedIn)) > 0, nil
	}, opts.Timeout, opts.PollInterval)

	switch {
	case err == nil:
		state = StateLoggedIn
		log.InfoContext(ctx, "login completed", "state", state)
		return nil
	case errors.Is(err, ErrWaitTimeout):
		log.ErrorContext(ctx, "login wait timed out", "state", state, "timeout", opts.Timeout)
		return ErrLoginTimeout
	default:
		return err
	}
}
