// Package ratelimit counts requests per client in fixed windows.
package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Limiter allows at most limit requests per key in each window
type Limiter interface {
	Allow(key string) bool
	Stats() Stats
}

// Stats summarizes limiter activity since start
type Stats struct {
	Allowed    int64     `json:"allowed"`
	Rejected   int64     `json:"rejected"`
	Clients    int       `json:"clients"`
	LastAccess time.Time `json:"last_access"`
}

// WindowLimiter keeps one expiring counter per key
type WindowLimiter struct {
	counters *cache.Cache
	mu       sync.Mutex
	stats    Stats
	limit    int
	window   time.Duration
}

// NewLimiter creates a fixed-window limiter
func NewLimiter(limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		counters: cache.New(window, window*2),
		limit:    limit,
		window:   window,
	}
}

// Allow records a request for key and reports whether it is within the limit.
// The window starts at the key's first request.
func (l *WindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats.LastAccess = time.Now()

	count := 1
	if err := l.counters.Add(key, count, cache.DefaultExpiration); err != nil {
		count, err = l.counters.IncrementInt(key, 1)
		if err != nil {
			// expired between Add and IncrementInt
			count = 1
			l.counters.Set(key, count, cache.DefaultExpiration)
		}
	}

	if count > l.limit {
		l.stats.Rejected++
		return false
	}
	l.stats.Allowed++
	return true
}

// Stats returns a copy of the counters
func (l *WindowLimiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.stats
	s.Clients = l.counters.ItemCount()
	return s
}
