// Package admission is the pre-request admission check: a per-caller token
// bucket plus a static block-list. It runs before any data access; a denial
// must cost nothing beyond the check itself.
package admission

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of an admission check. When denied, Blocked
// distinguishes a policy block from rate exhaustion; Remaining and
// ResetAfter describe the bucket state for logging and Retry-After.
type Decision struct {
	Allowed    bool
	Blocked    bool
	Remaining  int
	ResetAfter time.Duration
}

type Checker interface {
	Check(ctx context.Context, key string, cost int) Decision
}

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter is the default Checker: one token bucket per key, refilled at
// rate tokens/second up to burst.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
	blocked map[string]struct{}
	now     func() time.Time
}

func NewLimiter(rps, burst int, blockedKeys ...string) *Limiter {
	if burst < rps {
		burst = rps
	}
	bl := make(map[string]struct{}, len(blockedKeys))
	for _, k := range blockedKeys {
		bl[k] = struct{}{}
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		rate:    float64(rps),
		burst:   float64(burst),
		blocked: bl,
		now:     time.Now,
	}
}

func (l *Limiter) Check(_ context.Context, key string, cost int) Decision {
	if _, ok := l.blocked[key]; ok {
		return Decision{Allowed: false, Blocked: true}
	}
	if cost <= 0 {
		cost = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * l.rate
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
		b.last = now
	}

	if b.tokens >= float64(cost) {
		b.tokens -= float64(cost)
		return Decision{Allowed: true, Remaining: int(b.tokens)}
	}

	deficit := float64(cost) - b.tokens
	reset := time.Duration(deficit / l.rate * float64(time.Second))
	return Decision{Allowed: false, Remaining: int(b.tokens), ResetAfter: reset}
}
