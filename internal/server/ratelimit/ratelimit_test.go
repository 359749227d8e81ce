package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, Rate: 1, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("127.0.0.1", "/extractions", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/extractions", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.Equal(t, clock.Now().Add(3*time.Second), info.ResetTime)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/extractions", "GET")
	assert.True(t, allowed, "one token refills per second")
}

func TestLimiter_SeparateClients(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, Rate: 1, Burst: 1})
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/extractions", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/extractions", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/extractions", "GET")
	assert.True(t, allowed, "each client has its own bucket")
	allowed, _ = l.Allow("10.0.0.1", "/jobs/validate-url", "GET")
	assert.True(t, allowed, "each endpoint has its own bucket")
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	cfg := &Config{
		Enabled:   true,
		Rate:      1,
		Burst:     1,
		Whitelist: map[string]bool{"10.0.0.1": true},
		Blacklist: map[string]bool{"10.0.0.2": true},
	}
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/extractions", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.2", "/extractions", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(&Config{Enabled: false})
	defer disabled.Stop()
	for i := 0; i < 5; i++ {
		allowed, _ := disabled.Allow("10.0.0.3", "/jobs/scrape", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := NewConfig(100, 100)
	cfg.CleanupInterval = 0
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/jobs/scrape", "POST")
		require.True(t, allowed, "request %d", i+1)
	}
	allowed, info := l.Allow("127.0.0.1", "/jobs/scrape", "POST")
	assert.False(t, allowed, "scrape burst is 5")
	assert.Equal(t, 5, info.Limit)
	assert.Equal(t, 2*time.Second, info.RetryAfter)

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, Rate: 1, Burst: 50})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("127.0.0.1", "/extractions", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, Rate: 1, Burst: 1, IdleTTL: time.Minute})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/extractions", "GET")
	}
	clock.Advance(30 * time.Second)
	l.Allow("10.0.0.0", "/extractions", "GET")

	clock.Advance(45 * time.Second)
	l.cleanupBuckets()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "10.0.0.0:/extractions:GET")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Rate: 1, Burst: 1, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	assert.True(t, l.config.Enabled)
	assert.Equal(t, DefaultRate, l.config.Rate)
	assert.Equal(t, DefaultBurst, l.config.Burst)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/jobs/scrape", Method: "POST", Limit: 1},
		{Path: "/jobs/", Method: "POST", Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: "/jobs/scrape", method: "POST", wantLimit: 1},
		{name: "prefix", path: "/jobs/extract", method: "POST", wantLimit: 2},
		{name: "method mismatch", path: "/jobs/scrape", method: "GET", wantNil: true},
		{name: "no match", path: "/resume/extract", method: "POST", wantNil: true},
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1, ,10.0.0.2 ")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")
	t.Setenv("RATE_LIMIT_CLEANUP_INTERVAL", "30s")

	cfg := LoadConfig(2, 4)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2.0, cfg.Rate)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, 30*time.Second, cfg.CleanupInterval)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig(2, 4).Enabled)
}
