package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterEnforcesBurst(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 2, time.Hour)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("expected first request allowed")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("expected second request within burst allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("expected third request rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Hour, 1, time.Hour)

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("expected first key allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("expected first key exhausted")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("expected second key unaffected")
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	ttl := time.Minute
	limiter := NewIPRateLimiter(1, time.Hour, 1, ttl).(*ipRateLimiter)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	limiter.Allow("10.0.0.1")

	current = current.Add(2 * ttl)
	limiter.Allow("10.0.0.2")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.clients["10.0.0.1"]; ok {
		t.Fatal("expected idle client swept")
	}
	if _, ok := limiter.clients["10.0.0.2"]; !ok {
		t.Fatal("expected active client retained")
	}
}
