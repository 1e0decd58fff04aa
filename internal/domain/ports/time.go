package ports

import "time"

// Clock abstracts the wall clock so generated documents are reproducible in tests
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock implements Clock using the time package
type SystemClock struct{}

// NewSystemClock creates a clock backed by time.Now
func NewSystemClock() Clock {
	return SystemClock{}
}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// Since returns the duration between the fixed instant and t
func (c FixedClock) Since(t time.Time) time.Duration {
	return c.At.Sub(t)
}
