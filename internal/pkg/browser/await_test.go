package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAwaitCondition_Satisfied(t *testing.T) {
	calls := 0
	err := AwaitCondition(context.Background(), func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	}, time.Second, time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestAwaitCondition_Timeout(t *testing.T) {
	err := AwaitCondition(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	}, 20*time.Millisecond, 5*time.Millisecond)

	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestAwaitCondition_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := AwaitCondition(ctx, func(context.Context) (bool, error) {
		return false, nil
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAwaitCondition_PredicateError(t *testing.T) {
	boom := errors.New("boom")
	err := AwaitCondition(context.Background(), func(context.Context) (bool, error) {
		return false, boom
	}, time.Second, time.Millisecond)

	assert.ErrorIs(t, err, boom)
}
