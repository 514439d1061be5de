package queue

import (
	"math/rand"
	"time"
)

// CalculateBackoffDelay returns a jittered exponential delay for the given
// retry attempt, capped so a stuck upstream never parks a worker for long.
func CalculateBackoffDelay(retry int) time.Duration {
	baseDelay := time.Second * 2
	maxDelay := time.Minute * 2

	expDelay := baseDelay * time.Duration(1<<retry)
	if expDelay > maxDelay {
		expDelay = maxDelay
	}

	return time.Duration(rand.Int63n(int64(expDelay)))
}
