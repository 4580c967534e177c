package shared

import "time"

// Clock abstracts the current time so timestamps can be pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// Now returns the current system time in UTC
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock returns a fixed, manually advanced time
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock starting at the given time.
// A zero start time is replaced with the current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{CurrentTime: start}
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the mock clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}
