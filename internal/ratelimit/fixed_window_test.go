package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiter(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	if !limiter.Allow("persona-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("persona-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("persona-1") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("persona-2") {
		t.Fatalf("other key should pass")
	}
}

func TestFixedWindowLimiterAllowWithinOverride(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 100, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	if !limiter.AllowWithin("persona-1", 1, time.Minute) {
		t.Fatalf("first request should pass")
	}
	if limiter.AllowWithin("persona-1", 1, time.Minute) {
		t.Fatalf("second request should be blocked by override limit")
	}
}

func TestFixedWindowLimiterFailsClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	redis.Close()
	if limiter.Allow("persona-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestFixedWindowLimiterRequiresRedisAddr(t *testing.T) {
	limiter, err := NewFixedWindowLimiter("", "", "test:ratelimit", 1, time.Second)
	if err == nil || limiter != nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
}

func TestFixedWindowLimiterRequiresPositiveLimit(t *testing.T) {
	if _, err := NewFixedWindowLimiter("localhost:6379", "", "test:ratelimit", 0, time.Second); err == nil {
		t.Fatalf("expected constructor error for zero limit")
	}
}
