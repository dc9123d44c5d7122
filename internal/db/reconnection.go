package db

import (
	"time"

	"github.com/coptic/envgen/internal/logger"
)

// ReconnectionState tracks connection retry attempts
type ReconnectionState struct {
	Attempt     int           // Retries used so far
	LastAttempt time.Time     // Timestamp of last attempt
	NextDelay   time.Duration // Delay until next attempt
	MaxAttempts int           // Maximum retries before giving up
}

// NewReconnectionState creates a new reconnection state
func NewReconnectionState(maxAttempts int) *ReconnectionState {
	return &ReconnectionState{
		MaxAttempts: maxAttempts,
		NextDelay:   time.Second,
	}
}

// CalculateNextDelay calculates the next delay using exponential backoff
// Sequence: 1s, 2s, 4s, 8s, 16s, capped at 30s
func (r *ReconnectionState) CalculateNextDelay() time.Duration {
	if r.Attempt <= 0 {
		return time.Second
	}
	if r.Attempt > 5 {
		return 30 * time.Second
	}
	delay := time.Duration(1<<uint(r.Attempt-1)) * time.Second
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}

// NextAttempt prepares for the next attempt and reports whether it is allowed
func (r *ReconnectionState) NextAttempt() bool {
	if r.Attempt >= r.MaxAttempts {
		return false
	}
	r.Attempt++
	r.LastAttempt = time.Now()
	r.NextDelay = r.CalculateNextDelay()

	logger.Debug("Preparing reconnection attempt",
		"attempt", r.Attempt,
		"max_attempts", r.MaxAttempts,
		"next_delay", r.NextDelay,
	)

	return true
}
