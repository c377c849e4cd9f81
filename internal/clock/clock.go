// Package clock provides time abstraction for testing and production use.
// Schedule lookups default to "today", so deterministic tests and replay
// runs need a controllable time source.
package clock

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// ServiceDateLayout is the wire format for service dates.
const ServiceDateLayout = "2006-01-02"

// Clock provides an abstraction for time operations.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// NowUnixMilli returns the current time as Unix milliseconds
	NowUnixMilli() int64
}

// ServiceDate returns the service date for the clock's current time.
func ServiceDate(c Clock) string {
	return c.Now().Format(ServiceDateLayout)
}

// RealClock implements Clock using actual system time.
// This is the default implementation for production use.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NowUnixMilli returns the current time as Unix milliseconds.
func (RealClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// MockClock implements Clock and provides a controllable, thread-safe time for tests.
// Use NewMockClock to create instances.
type MockClock struct {
	currentTime time.Time
	mu          sync.Mutex
}

// NewMockClock creates a new MockClock set to the specified time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mock clock's current time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// NowUnixMilli returns the mock clock's current time as Unix milliseconds.
func (m *MockClock) NowUnixMilli() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime.UnixMilli()
}

// Set changes the mock clock's current time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the mock clock by the specified duration.
// Use positive durations to move forward, negative to move backward.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// EnvironmentClock implements Clock using a time read from an environment
// variable, falling back to system time. It pins "today" for replaying a
// feed against a known service date.
type EnvironmentClock struct {
	envVar   string
	location *time.Location
}

// NewEnvironmentClock creates an EnvironmentClock reading the given
// variable. A nil location defaults to time.Local.
func NewEnvironmentClock(envVar string, location *time.Location) *EnvironmentClock {
	if location == nil {
		location = time.Local
	}
	return &EnvironmentClock{envVar: envVar, location: location}
}

// Now returns the override time when the variable is set and parseable,
// otherwise the system time. The variable is re-read on every call.
func (e *EnvironmentClock) Now() time.Time {
	if t, err := e.syncFromEnvVar(); err == nil {
		return t
	}
	return time.Now()
}

// NowUnixMilli returns the current time as Unix milliseconds.
func (e *EnvironmentClock) NowUnixMilli() int64 {
	return e.Now().UnixMilli()
}

func (e *EnvironmentClock) syncFromEnvVar() (time.Time, error) {
	if e.envVar == "" {
		return time.Time{}, errors.New("environment variable name not configured")
	}
	timeStr := os.Getenv(e.envVar)
	if timeStr == "" {
		return time.Time{}, errors.New("environment variable is empty: " + e.envVar)
	}
	return e.parseTime(timeStr)
}

// parseTime accepts RFC3339, a datetime without zone, or a bare service
// date, the latter two interpreted in the configured location.
func (e *EnvironmentClock) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		ServiceDateLayout,
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, s, e.location); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time %q: expected RFC3339, YYYY-MM-DD HH:MM:SS, YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DD", s)
}
