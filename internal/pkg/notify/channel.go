package notify

import (
	"context"
	"errors"
)

var ErrDeliveryFailure = errors.New("notification delivery failed")

// Channel 一个独立的推送通道
type Channel interface {
	Name() string
	Send(ctx context.Context, title, body string) error
}
