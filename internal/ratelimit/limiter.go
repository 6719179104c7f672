package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// SessionLimiter caps how fast a single form session may push events.
type SessionLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	EventsPerSecond float64
	BurstSize       int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		EventsPerSecond: 20,
		BurstSize:       40,
	}
}

func NewSessionLimiter(config RateLimitConfig) *SessionLimiter {
	return &SessionLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (s *SessionLimiter) GetLimiter(session string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[session]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, exists = s.limiters[session]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(s.defaults.EventsPerSecond), s.defaults.BurstSize)
	s.limiters[session] = limiter
	return limiter
}

// Allow reports whether session may apply one more event now.
func (s *SessionLimiter) Allow(session string) bool {
	if s.defaults.EventsPerSecond <= 0 {
		return true
	}
	return s.GetLimiter(session).Allow()
}

// Forget drops the limiter of a session that no longer exists.
func (s *SessionLimiter) Forget(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.limiters, session)
}

func (s *SessionLimiter) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}
