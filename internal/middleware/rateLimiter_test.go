package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_EvictsIdleIPs(t *testing.T) {
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	first := l.GetLimiter("10.0.0.1")
	assert.Same(t, first, l.GetLimiter("10.0.0.1"), "same ip shares a bucket")
	l.GetLimiter("10.0.0.2")

	clock = clock.Add(l.idleTTL / 2)
	l.GetLimiter("10.0.0.2")

	clock = clock.Add(l.idleTTL / 2)
	l.GetLimiter("10.0.0.3")

	assert.NotContains(t, l.ips, "10.0.0.1", "idle for a full ttl")
	assert.Contains(t, l.ips, "10.0.0.2")
	assert.Contains(t, l.ips, "10.0.0.3")
	assert.NotSame(t, first, l.GetLimiter("10.0.0.1"), "evicted ip gets a fresh bucket")
}
