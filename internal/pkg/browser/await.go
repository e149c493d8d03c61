package browser

import (
	"context"
	"time"
)

// Condition 轮询判定函数
type Condition func(ctx context.Context) (bool, error)

// AwaitCondition 以 interval 轮询 cond，直到返回 true、出错或超时
// 超时返回 ErrWaitTimeout；上游 ctx 被取消时返回 ctx.Err()
func AwaitCondition(ctx context.Context, cond Condition, timeout, interval time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(waitCtx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrWaitTimeout
		case <-ticker.C:
		}
	}
}
