package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"app/modules/clock"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: make(map[string]int64)}
}

func (m *memoryCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryCounter) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key], nil
}

func TestSlidingWindowAllowsUpToLimit(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(1_000_000, 0))
	limiter := SlidingWindowFactory(fixed, newMemoryCounter(), "rl")(3, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("request over limit should be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("rejected result should carry RetryAfter, got %v", res.RetryAfter)
	}
}

func TestSlidingWindowKeysAreIndependent(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(1_000_000, 0))
	limiter := SlidingWindowFactory(fixed, newMemoryCounter(), "rl")(1, time.Minute)

	ctx := context.Background()
	if res, _ := limiter.Allow(ctx, "client-a"); !res.Allowed {
		t.Fatal("first request for client-a should be allowed")
	}
	if res, _ := limiter.Allow(ctx, "client-a"); res.Allowed {
		t.Fatal("second request for client-a should be rejected")
	}
	if res, _ := limiter.Allow(ctx, "client-b"); !res.Allowed {
		t.Fatal("client-b should not be affected by client-a's usage")
	}
}

func TestSlidingWindowResetsAfterWindows(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(1_000_000, 0))
	limiter := SlidingWindowFactory(fixed, newMemoryCounter(), "rl")(2, time.Minute)

	ctx := context.Background()
	limiter.Allow(ctx, "client-a")
	limiter.Allow(ctx, "client-a")

	if res, _ := limiter.Allow(ctx, "client-a"); res.Allowed {
		t.Fatal("over limit, should be rejected")
	}

	// Two full windows later, the previous window no longer contributes.
	fixed.Advance(2 * time.Minute)

	res, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if !res.Allowed {
		t.Fatal("fresh window should allow again")
	}
}

func TestLocalLimiterAllowsUpToLimit(t *testing.T) {
	limiter := LocalFactory()(2, time.Minute)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	res, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("request over burst should be rejected")
	}
}
