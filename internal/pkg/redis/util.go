package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// RunLock 基于 SET NX 的单实例运行锁，防止多个进程同时操作同一个浏览器 profile
type RunLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRunLock(rdb *redis.Client, key string, ttl time.Duration) *RunLock {
	return &RunLock{rdb: rdb, key: key, ttl: ttl}
}

// TryLock 尝试加锁，已被占用时返回 false
func (s *RunLock) TryLock(ctx context.Context, owner string) (bool, error) {
	return s.rdb.SetNX(ctx, s.key, owner, s.ttl).Result()
}

// UnLock 仅在锁仍属于 owner 时释放
func (s *RunLock) UnLock(ctx context.Context, owner string) error {
	return s.rdb.Eval(ctx, unlockScript, []string{s.key}, owner).Err()
}
