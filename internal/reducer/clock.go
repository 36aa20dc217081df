package reducer

import "time"

// systemClock is the default wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
