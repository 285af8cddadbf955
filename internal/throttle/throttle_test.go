package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpacesRequests(t *testing.T) {
	limiter := New(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
	// first call is free, the next two wait one interval each
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestNewDisabled(t *testing.T) {
	limiter := New(0)
	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow())
	}
}

func TestWaitHonoursCancel(t *testing.T) {
	limiter := New(time.Hour)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, limiter.Wait(ctx))
}
