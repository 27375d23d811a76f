// Package clock abstracts wall-clock time so batch timestamps are testable.
package clock

import "time"

// Clock supplies the current time. Operations that stamp rows or audit
// records take a Clock so tests can pin the timestamp.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current wall-clock time, truncated to whole seconds to
// match the display precision of persisted timestamps.
func (System) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// Fixed is a Clock that always returns the same instant. Intended for tests.
type Fixed struct {
	T time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return f.T
}
