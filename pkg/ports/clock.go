package ports

import "time"

// Clock abstracts wall-clock reads so the swipe coincidence window can be
// tested deterministically. The reducer reads time only at swipe receipt.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
