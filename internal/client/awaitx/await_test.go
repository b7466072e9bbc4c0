package awaitx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion_Success(t *testing.T) {
	c := New[string]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Succeed("wrld_1")
	}()

	got, err := c.Wait(context.Background(), nil, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "wrld_1", got)
}

func TestCompletion_Failure(t *testing.T) {
	c := New[string]()
	boom := errors.New("remote says no")

	go c.Fail(boom)

	got, err := c.Wait(context.Background(), nil, time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}

func TestCompletion_ExactlyOneOutcome(t *testing.T) {
	c := New[int]()

	c.Succeed(1)
	c.Fail(errors.New("late failure"))
	c.Succeed(2)

	got, err := c.Wait(context.Background(), nil, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "first outcome wins, later calls are ignored")
}

func TestCompletion_CancelledByToken(t *testing.T) {
	c := New[int]()

	var tripped atomic.Bool
	go func() {
		time.Sleep(5 * time.Millisecond)
		tripped.Store(true)
	}()

	_, err := c.Wait(context.Background(), tripped.Load, time.Millisecond)
	assert.ErrorIs(t, err, common.ErrCancelled)
}

func TestCompletion_ContextDeadline(t *testing.T) {
	c := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx, nil, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCompletion_OutcomeBeatsCancellation(t *testing.T) {
	c := New[int]()
	c.Succeed(7)

	// Token already tripped, but the recorded outcome is already available
	// and must be preferred over a poll-tick.
	got, err := c.Wait(context.Background(), func() bool { return true }, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
