package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomDuration(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := RandomDuration(time.Second, 2*time.Second)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 2*time.Second)
	}
	assert.Equal(t, time.Second, RandomDuration(time.Second, time.Second))
	assert.Equal(t, 3*time.Second, RandomDuration(3*time.Second, time.Second))
}

func TestRandomSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := RandomSleep(ctx, time.Minute, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRandomSleep_Zero(t *testing.T) {
	assert.NoError(t, RandomSleep(context.Background(), 0, 0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("  abc  ", 10))
	assert.Equal(t, "微星笔", TruncateRunes("微星笔记本电脑", 3))
	assert.Equal(t, "", TruncateRunes("   ", 5))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpace(" a \n\t b   c "))
}
