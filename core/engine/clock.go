// Package engine - Clock abstraction
// "Now" is always an explicit dependency. Nothing in the core reads the
// system clock implicitly, so concurrent callers with different
// reference times never interfere and tests inject fixed dates.
package engine

import "time"

// Clock supplies the reference time for period resolution.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real system time.
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now implements Clock
func (c FixedClock) Now() time.Time {
	return c.At
}
