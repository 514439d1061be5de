package adapters

import (
	"sync"
	"time"
)

type RateLimiter struct {
	Capacity      float64
	FillRate      float64
	CurrentTokens float64
	LastUpdate    time.Time
	mutx          sync.Mutex
}

// SenderRateLimiter keeps one token bucket per LINE user ID. Webhook
// traffic all arrives from the platform's servers, so limiting by client
// IP would throttle every user at once.
type SenderRateLimiter struct {
	limiter map[string]*RateLimiter
	mutx    sync.Mutex
}

func NewRateLimiter(capacity, fillrate float64) *RateLimiter {
	return &RateLimiter{
		Capacity:      capacity,
		FillRate:      fillrate,
		CurrentTokens: capacity,
		LastUpdate:    time.Now(),
	}
}

func NewSenderLimiter() *SenderRateLimiter {
	return &SenderRateLimiter{
		limiter: make(map[string]*RateLimiter),
	}
}

func (r *RateLimiter) RefillBucket() {
	now := time.Now()
	elapsedTime := now.Sub(r.LastUpdate).Seconds()
	TokensToAdd := elapsedTime * r.FillRate

	r.CurrentTokens += TokensToAdd
	if r.CurrentTokens > r.Capacity {
		r.CurrentTokens = r.Capacity
	}

	r.LastUpdate = now
}

func (r *RateLimiter) AllowRequest() bool {
	r.mutx.Lock()
	defer r.mutx.Unlock()

	r.RefillBucket()

	// A fractional refill must not admit; a request costs one whole token.
	if r.CurrentTokens >= 1 {
		r.CurrentTokens -= 1
		return true
	}

	return false
}

func (s *SenderRateLimiter) RequestRateLimiter(userID string, capacity, fillrate float64) *RateLimiter {
	s.mutx.Lock()
	defer s.mutx.Unlock()

	limiter, exist := s.limiter[userID]
	if !exist {
		limiter = NewRateLimiter(capacity, fillrate)
		s.limiter[userID] = limiter
	}

	return limiter
}
