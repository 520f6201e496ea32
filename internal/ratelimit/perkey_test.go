package ratelimit

import (
	"testing"
	"time"
)

func TestPerKeyLimiterAllow(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     3,
		RefillRate:    1.0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	// First 3 requests should be allowed
	for i := 0; i < 3; i++ {
		if !limiter.Allow("client1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 4th request should be denied
	if limiter.Allow("client1") {
		t.Error("4th request should be denied")
	}

	// Different client should still be allowed
	if !limiter.Allow("client2") {
		t.Error("Different client should be allowed")
	}
}

func TestPerKeyLimiterEmptyKey(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0.1,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	// Empty key should always be allowed
	for i := 0; i < 10; i++ {
		if !limiter.Allow("") {
			t.Error("Empty key should always be allowed")
		}
	}
}

func TestPerKeyLimiterOnDrop(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	drops := 0
	limiter.OnDrop(func() { drops++ })

	limiter.Allow("client1")
	limiter.Allow("client1")
	limiter.Allow("client1")

	if drops != 2 {
		t.Errorf("drop callback fired %d times, want 2", drops)
	}
}

func TestPerKeyLimiterCleanup(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     2,
		RefillRate:    100, // Refills instantly, so buckets look inactive
		CleanupPeriod: 10 * time.Millisecond,
	})
	defer limiter.Stop()

	limiter.Allow("client1")
	limiter.Allow("client2")
	if limiter.GetActiveCount() != 2 {
		t.Fatalf("GetActiveCount() = %d, want 2", limiter.GetActiveCount())
	}

	// Wait for refill + cleanup tick
	time.Sleep(100 * time.Millisecond)
	if limiter.GetActiveCount() != 0 {
		t.Errorf("GetActiveCount() after cleanup = %d, want 0", limiter.GetActiveCount())
	}
}

func TestPerKeyLimiterGetAvailable(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     5,
		RefillRate:    0,
		CleanupPeriod: 1 * time.Minute,
	})
	defer limiter.Stop()

	if got := limiter.GetAvailable("unknown"); got != 5 {
		t.Errorf("GetAvailable(unknown) = %v, want MaxTokens", got)
	}
	limiter.Allow("client1")
	if got := limiter.GetAvailable("client1"); got != 4 {
		t.Errorf("GetAvailable(client1) = %v, want 4", got)
	}
}

func TestPerKeyLimiterStopIdempotent(t *testing.T) {
	limiter := NewPerKeyLimiter(PerKeyLimiterConfig{
		MaxTokens:     1,
		RefillRate:    1,
		CleanupPeriod: 1 * time.Minute,
	})
	limiter.Stop()
	limiter.Stop() // Must not panic
}
