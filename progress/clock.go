package progress

import "time"

// Clock provides time operations that can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// RealClock uses the standard time package.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }
