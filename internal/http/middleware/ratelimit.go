package middleware

import (
	"sync"
	"time"
)

// Limiter is a fixed-window rate limiter keyed by caller-chosen strings.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryLimiter keeps per-key windows in process memory. Used when Redis is
// not configured; windows reset on restart.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	nextSweep time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

const sweepInterval = time.Minute

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets:   make(map[string]*rateBucket),
		nextSweep: time.Now().Add(sweepInterval),
	}
}

func (l *MemoryLimiter) Allow(key string, limit int, window time.Duration) bool {
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if now.After(l.nextSweep) {
		l.sweep(now)
	}
	bucket, ok := l.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		l.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

// sweep drops buckets whose window has ended. Caller holds the lock.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, bucket := range l.buckets {
		if now.After(bucket.windowEnd) {
			delete(l.buckets, key)
		}
	}
	l.nextSweep = now.Add(sweepInterval)
}
