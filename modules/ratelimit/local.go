// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ RateLimiter = (*LocalRateLimiter)(nil)

// LocalRateLimiter is an in-process token bucket limiter keyed per client.
// It is the fallback when no shared counter store (Redis) is available;
// limits then apply per instance, not across a fleet.
type LocalRateLimiter struct {
	mu      sync.Mutex
	buckets map[Key]*rate.Limiter

	limit  int64
	window time.Duration
}

func LocalFactory() LimiterFactory {
	return func(l int64, w time.Duration) RateLimiter {
		return &LocalRateLimiter{
			buckets: make(map[Key]*rate.Limiter),
			limit:   l,
			window:  w,
		}
	}
}

func (l *LocalRateLimiter) bucket(key Key) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		// Refill spread evenly over the window with a burst of the full limit.
		b = rate.NewLimiter(rate.Limit(float64(l.limit)/l.window.Seconds()), int(l.limit))
		l.buckets[key] = b
	}
	return b
}

// Allow implements RateLimiter.
func (l *LocalRateLimiter) Allow(_ context.Context, key Key) (Result, error) {
	b := l.bucket(key)

	allowed := b.Allow()
	remaining := int64(b.Tokens())
	remaining = max(remaining, 0)

	result := Result{
		Allowed:       allowed,
		Remaining:     remaining,
		Limit:         l.limit,
		Window:        l.window,
		WindowResetIn: l.window,
	}

	if !allowed {
		result.RetryAfter = l.window / time.Duration(max(l.limit, 1))
	}

	return result, nil
}
