// Package ratelimit provides token-bucket rate limiting for the API
// endpoints. Each route class (crud, search, batch, meta) gets its own
// per-client-IP limiter, mirroring the per-route limits of the original
// fixture service.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Bucket is a single token bucket. It is safe for concurrent use.
type Bucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	rate       float64 // tokens per second
	lastUpdate time.Time
}

// NewBucket creates a token bucket refilling at rate tokens/second with the
// given burst capacity. The bucket starts full.
func NewBucket(rate float64, burst int) *Bucket {
	maxTokens := float64(burst)
	if maxTokens <= 0 {
		maxTokens = rate
	}
	return &Bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		rate:       rate,
		lastUpdate: time.Now(),
	}
}

// Allow tries to consume one token. Returns true if a token was available.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastUpdate).Seconds() * b.rate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// PerIPLimiter tracks one bucket per client IP, evicting idle entries.
type PerIPLimiter struct {
	mu       sync.Mutex
	rate     float64
	burst    int
	buckets  map[string]*ipBucket
	maxIdle  time.Duration
	lastScan time.Time
}

type ipBucket struct {
	bucket   *Bucket
	lastSeen time.Time
}

// NewPerMinute creates a per-IP limiter allowing n requests per minute,
// with a burst of the same size.
func NewPerMinute(n int) *PerIPLimiter {
	return &PerIPLimiter{
		rate:    float64(n) / 60,
		burst:   n,
		buckets: make(map[string]*ipBucket),
		maxIdle: 10 * time.Minute,
	}
}

// Allow reports whether the client identified by ip may proceed.
func (l *PerIPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	now := time.Now()
	if now.Sub(l.lastScan) > l.maxIdle {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > l.maxIdle {
				delete(l.buckets, k)
			}
		}
		l.lastScan = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{bucket: NewBucket(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.bucket.Allow()
}

// ClientIP extracts the client address from a request, preferring the
// first X-Forwarded-For entry when present.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
