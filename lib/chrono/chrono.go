package chrono

import (
	"time"
)

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	Location() *time.Location
}

// Standard is the implementation of API backed by the system clock.
type Standard struct {
	location *time.Location
}

// NewStandard creates a Standard clock pinned to the named location, an
// empty name defaults to America/New_York since the schedule publishes
// dates in eastern time.
func NewStandard(location string) (Standard, error) {
	if location == "" {
		location = "America/New_York"
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return Standard{}, err
	}
	return Standard{location: loc}, nil
}

func (s Standard) Now() time.Time {
	return time.Now().In(s.Location())
}

func (s Standard) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// Fixed is an API that always reports the same instant, useful for tests
// and for "as of" invocations from the CLI.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Location() *time.Location {
	return f.At.Location()
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
