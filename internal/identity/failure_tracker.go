package identity

import (
	"sync"
	"time"
)

// FailureRecord represents a single failed login attempt
type FailureRecord struct {
	Email     string
	RemoteIP  string
	Timestamp time.Time
}

// FailureTracker tracks failed login attempts for admin accounts
type FailureTracker interface {
	// RecordFailure records a failed attempt and returns the failure count
	// for the email within the time window
	RecordFailure(email string, remoteIP string, timestamp time.Time) int
	// ShouldLockOut returns true if the failure count exceeds the lockout threshold
	ShouldLockOut(failureCount int) bool
}

// LockoutSettings holds configuration for temporary login lockouts
type LockoutSettings struct {
	Threshold  int           // Number of failures that trigger a lockout (0 to disable)
	TimeWindow time.Duration // Time window for counting failures
}

// nopFailureTracker is a no-operation implementation
type nopFailureTracker struct{}

var NopFailureTracker FailureTracker = &nopFailureTracker{}

func (n *nopFailureTracker) RecordFailure(email string, remoteIP string, timestamp time.Time) int {
	return 0
}

func (n *nopFailureTracker) ShouldLockOut(failureCount int) bool {
	return false
}

// memoryFailureTracker implements FailureTracker using in-memory storage
type memoryFailureTracker struct {
	settings      LockoutSettings
	failures      []FailureRecord
	failuresMutex sync.Mutex
}

// NewMemoryFailureTracker creates a new in-memory failure tracker
func NewMemoryFailureTracker(settings LockoutSettings) FailureTracker {
	return &memoryFailureTracker{
		settings: settings,
		failures: make([]FailureRecord, 0),
	}
}

func (t *memoryFailureTracker) ShouldLockOut(failureCount int) bool {
	return t.settings.Threshold > 0 && failureCount >= t.settings.Threshold
}

func (t *memoryFailureTracker) RecordFailure(email string, remoteIP string, timestamp time.Time) int {
	t.failuresMutex.Lock()
	defer t.failuresMutex.Unlock()

	t.failures = append(t.failures, FailureRecord{
		Email:     email,
		RemoteIP:  remoteIP,
		Timestamp: timestamp,
	})

	// Drop records outside the time window
	cutoff := timestamp.Add(-t.settings.TimeWindow)
	valid := make([]FailureRecord, 0, len(t.failures))
	count := 0
	for _, failure := range t.failures {
		if failure.Timestamp.Before(cutoff) {
			continue
		}
		valid = append(valid, failure)
		if failure.Email == email {
			count++
		}
	}
	t.failures = valid

	return count
}
