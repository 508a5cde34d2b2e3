package auth

import (
	"strings"
	"sync"
	"time"
)

const (
	maxFailedLogins = 5
	throttleWindow  = 15 * time.Minute
)

type attempts struct {
	count int
	first time.Time
}

// LoginLimiter blocks an email after repeated failed sign-ins until the
// window that started with the first failure has passed.
type LoginLimiter struct {
	mu        sync.Mutex
	failures  map[string]*attempts
	lastSweep time.Time
	now       func() time.Time
}

func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		failures: make(map[string]*attempts),
		now:      time.Now,
	}
}

func (l *LoginLimiter) Allow(email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := strings.ToLower(email)
	a, ok := l.failures[key]
	if !ok {
		return nil
	}
	if l.now().Sub(a.first) >= throttleWindow {
		delete(l.failures, key)
		return nil
	}
	if a.count >= maxFailedLogins {
		return ErrTooManyRequests
	}

	return nil
}

func (l *LoginLimiter) Fail(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= throttleWindow {
		l.sweep(now)
	}

	key := strings.ToLower(email)
	a, ok := l.failures[key]
	if !ok || now.Sub(a.first) >= throttleWindow {
		l.failures[key] = &attempts{count: 1, first: now}
		return
	}
	a.count++
}

// sweep drops entries whose window has closed. Caller holds mu.
func (l *LoginLimiter) sweep(now time.Time) {
	for key, a := range l.failures {
		if now.Sub(a.first) >= throttleWindow {
			delete(l.failures, key)
		}
	}
	l.lastSweep = now
}

func (l *LoginLimiter) Reset(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, strings.ToLower(email))
}
