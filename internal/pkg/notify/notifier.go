package notify

import (
	"Redwatch/internal/model"
	"context"
	"fmt"
	log "log/slog"
)

// Notifier 汇总推送新帖子，永不向调用方返回错误
type Notifier interface {
	Notify(ctx context.Context, notes []*model.Note)
}

// MultiNotifier 按优先级依次尝试全部已启用通道，单个通道失败不影响其它通道
type MultiNotifier struct {
	channels []Channel
}

func NewMultiNotifier(channels ...Channel) *MultiNotifier {
	return &MultiNotifier{channels: channels}
}

func (s *MultiNotifier) Notify(ctx context.Context, notes []*model.Note) {
	if len(notes) == 0 {
		return
	}
	if len(s.channels) == 0 {
		log.WarnContext(ctx, "no notification channel configured, skipping", "notes", len(notes))
		return
	}

	title, body := BuildMessage(notes)
	for _, ch := range s.channels {
		if err := send(ctx, ch, title, body); err != nil {
			log.ErrorContext(ctx, "notification delivery failed", "channel", ch.Name(), "err", err)
			continue
		}
		log.InfoContext(ctx, "notification delivered", "channel", ch.Name(), "notes", len(notes))
	}
}

func send(ctx context.Context, ch Channel, title, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrDeliveryFailure, r)
		}
	}()
	return ch.Send(ctx, title, body)
}
