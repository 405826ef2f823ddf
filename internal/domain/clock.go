package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps reports and run timings so tests can pin them.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for report stamping. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}
