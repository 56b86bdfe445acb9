package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LocalLimiter is a per-process token bucket per client, used when Redis is not configured
type LocalLimiter struct {
	mu       sync.Mutex
	clients  map[string]*localClient
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastSweep time.Time
	now      func() time.Time
}

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter allows rpm requests per minute with a burst of rpm
func NewLocalLimiter(rpm int) *LocalLimiter {
	return &LocalLimiter{
		clients: make(map[string]*localClient),
		limit:   rate.Limit(float64(rpm) / 60),
		burst:   rpm,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, clientID string) (bool, int, error) {
	now := l.now()

	l.mu.Lock()
	l.sweep(now)
	c, ok := l.clients[clientID]
	if !ok {
		c = &localClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 60, nil
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0, nil
	}
	r.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds())), nil
}

// sweep drops clients idle longer than idleTTL; callers hold mu
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now
	for id, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.clients, id)
		}
	}
}
