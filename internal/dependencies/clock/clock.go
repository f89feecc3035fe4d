package clock

import "time"

// Clock provides the current time and can be mocked for testing
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock in UTC
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current UTC time truncated to milliseconds
// so that persisted round timestamps survive a JSON round-trip unchanged
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
