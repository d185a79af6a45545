package reqres

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_ObserveIgnoresSuccess(t *testing.T) {
	r := NewRateLimiter(5)
	assert.NoError(t, r.Observe(&http.Response{StatusCode: http.StatusOK}))
	assert.NoError(t, r.Observe(nil))
	assert.True(t, r.RetryAt().IsZero())
}

func TestRateLimiter_ObserveRetryAfter(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter(5)
	r.now = func() time.Time { return now }

	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set("Retry-After", "7")

	err := r.Observe(resp)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Equal(t, now.Add(7*time.Second), r.RetryAt())
}

func TestRateLimiter_ObserveDefaultBackoff(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiter(5)
	r.now = func() time.Time { return now }

	err := r.Observe(&http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}})
	require.Error(t, err)
	assert.Equal(t, now.Add(time.Second), r.RetryAt())
}

func TestRateLimiter_WaitRespectsContextDuringBackoff(t *testing.T) {
	r := NewRateLimiter(0)
	r.retryAt = time.Now().Add(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_BurstAllowsSearchFanOut(t *testing.T) {
	r := NewRateLimiter(1)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for i := 0; i < DefaultBurst; i++ {
		require.NoError(t, r.Wait(ctx))
	}
}
